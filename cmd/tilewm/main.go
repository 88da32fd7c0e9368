// Command tilewm is a dynamic tiling window manager for X11: the sole
// client permitted to redirect substructure events on the root window, it
// arranges, decorates, and focuses every other top-level window on the
// display.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mistwood/tilewm/internal/config"
	"github.com/mistwood/tilewm/internal/wm"
	"github.com/mistwood/tilewm/internal/x11"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: tilewm [-v]\n")
}

func main() {
	if len(os.Args) > 1 {
		if len(os.Args) != 2 || os.Args[1] != "-v" {
			usage()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "tilewm-%s, see LICENSE for details\n", wm.Version)
		os.Exit(1)
	}

	checkLocale()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	conn, err := x11.Open()
	if err != nil {
		log.Error("cannot start", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	cursors, err := x11.LoadCursors(conn)
	if err != nil {
		log.Error("cannot load cursors", "err", err)
		os.Exit(1)
	}
	atoms := x11.InternAtoms(conn)

	cfg, err := config.Load(os.Getenv("TILEWM_CONFIG"))
	if err != nil {
		log.Error("cannot load config", "err", err)
		os.Exit(1)
	}

	manager := wm.New(conn, atoms, cursors, cfg, log)
	if err := manager.Setup(); err != nil {
		log.Error("setup failed", "err", err)
		os.Exit(1)
	}
	manager.Scan()
	manager.Run()
}

// checkLocale warns, rather than fails, when the environment's locale looks
// unsupported — this process has no C locale machinery to shape text
// through, but the warning is kept as an operator signal since multi-byte
// window titles still pass through here unexamined.
func checkLocale() {
	for _, key := range []string{"LC_CTYPE", "LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return
		}
	}
	fmt.Fprintln(os.Stderr, "warning: no locale support, defaulting to C")
}
