// Command kvs is a minimal CLI front-end over the kvs engine: set, get,
// rm, export, and import, operating on the current working directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/kvs"
	flag "github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Stdout, os.Args[1:]))
}

func run(out io.Writer, args []string) int {
	if len(args) == 0 {
		fprintln(out, "Usage: kvs <set|get|rm|export|import> ...")
		return 1
	}

	switch args[0] {
	case "set":
		return cmdSet(out, args[1:])
	case "get":
		return cmdGet(out, args[1:])
	case "rm":
		return cmdRm(out, args[1:])
	case "export":
		return cmdExport(out, args[1:])
	case "import":
		return cmdImport(out, args[1:])
	case "-V", "--version":
		fprintln(out, "kvs", version)
		return 0
	default:
		fprintln(out, "error: unknown command:", args[0])
		return 1
	}
}

const version = "0.1.0"

func openHere(out io.Writer) (*kvs.Store, bool) {
	dir, err := os.Getwd()
	if err != nil {
		fprintln(out, "error:", err)
		return nil, false
	}
	store, err := kvs.Open(dir, kvs.Config{})
	if err != nil {
		fprintln(out, "error:", err)
		return nil, false
	}
	return store, true
}

func cmdSet(out io.Writer, args []string) int {
	flagSet := flag.NewFlagSet("set", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	rest := flagSet.Args()
	if len(rest) != 2 {
		fprintln(out, "Usage: kvs set <key> <value>")
		return 1
	}

	store, ok := openHere(out)
	if !ok {
		return 1
	}
	defer store.Close()

	if err := store.Set(rest[0], rest[1]); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	return 0
}

func cmdGet(out io.Writer, args []string) int {
	flagSet := flag.NewFlagSet("get", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		fprintln(out, "Usage: kvs get <key>")
		return 1
	}

	store, ok := openHere(out)
	if !ok {
		return 1
	}
	defer store.Close()

	value, found, err := store.Get(rest[0])
	if err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	if !found {
		fprintln(out, "Key not found")
		return 0
	}
	fprintln(out, value)
	return 0
}

func cmdRm(out io.Writer, args []string) int {
	flagSet := flag.NewFlagSet("rm", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		fprintln(out, "Usage: kvs rm <key>")
		return 1
	}

	store, ok := openHere(out)
	if !ok {
		return 1
	}
	defer store.Close()

	if err := store.Remove(rest[0]); err != nil {
		if errors.Is(err, kvs.ErrKeyNotFound) {
			fprintln(out, "Key not found")
		} else {
			fprintln(out, "error:", err)
		}
		return 1
	}
	return 0
}

func cmdExport(out io.Writer, args []string) int {
	flagSet := flag.NewFlagSet("export", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		fprintln(out, "Usage: kvs export <file>")
		return 1
	}

	store, ok := openHere(out)
	if !ok {
		return 1
	}
	defer store.Close()

	f, err := os.Create(rest[0])
	if err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	defer f.Close()

	if err := store.Export(f); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	return 0
}

func cmdImport(out io.Writer, args []string) int {
	flagSet := flag.NewFlagSet("import", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		fprintln(out, "Usage: kvs import <file>")
		return 1
	}

	store, ok := openHere(out)
	if !ok {
		return 1
	}
	defer store.Close()

	f, err := os.Open(rest[0])
	if err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	defer f.Close()

	n, err := store.Import(f)
	if err != nil {
		fprintln(out, "error:", err)
		return 1
	}
	fprintln(out, n, "keys imported")
	return 0
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
