// Command kvs-client is a scaffold for a future client of kvs-server.
// No wire protocol exists yet (see DESIGN.md), so every subcommand
// fails with an explicit "not implemented" error rather than silently
// acting on the local filesystem.
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

const defaultAddr = "127.0.0.1:4000"

func main() {
	addr := flag.String("addr", defaultAddr, "server address IP:PORT")
	flag.Parse()

	if err := run(*addr, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr string, args []string) error {
	if len(args) == 0 {
		return errors.New("Usage: kvs-client [--addr IP:PORT] <set|get|rm> ...")
	}
	switch args[0] {
	case "set", "get", "rm":
		return fmt.Errorf("not implemented: no server transport (would dial %s)", addr)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}
