// Command kvs-server is a scaffold for a future networked kvs backend.
// It validates flags, opens the store, and records the engine marker —
// but does not listen on addr: spec.md §1 states plainly that
// networking is out of scope for this version.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpl-au/kvs"
	flag "github.com/spf13/pflag"
)

const defaultAddr = "127.0.0.1:4000"

func main() {
	addr := flag.String("addr", defaultAddr, "listening address IP:PORT (unused, see DESIGN.md)")
	engine := flag.String("engine", "", "storage engine name (kvs)")
	flag.Parse()

	if err := run(*addr, *engine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr, requestedEngine string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	current, err := kvs.ReadEngineMarker(dir)
	if err != nil {
		return err
	}

	engine := requestedEngine
	if engine == "" {
		engine = current
	}
	if engine == "" {
		engine = "kvs"
	}
	if current != "" && engine != current {
		return fmt.Errorf("wrong engine: directory was created with %q, requested %q", current, engine)
	}
	if engine != "kvs" {
		return fmt.Errorf("unsupported engine: %q", engine)
	}

	store, err := kvs.Open(dir, kvs.Config{})
	if err != nil {
		return err
	}
	defer store.Close()

	slog.Info("kvs-server: engine ready, listener not implemented", "addr", addr, "engine", engine)
	return errors.New("not implemented: networking is out of scope for this version")
}
