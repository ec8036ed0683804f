package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"taskdeck/internal/app"
	"taskdeck/internal/cli"
	"taskdeck/internal/storage"
	"taskdeck/internal/storage/file"
	"taskdeck/internal/storage/memory"
)

func main() {
	cfg := ParseFlags()

	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if cfg.Debug {
		logOpts = append(logOpts, lgr.Debug)
	}
	lgr.Setup(logOpts...)

	if cfg.NoColor {
		color.NoColor = true
	}

	var store storage.Store
	if cfg.Memory {
		store = memory.New()
	} else {
		store = file.New(cfg.DataFile)
	}

	// A data file that exists but cannot be read or parsed aborts
	// startup; a single failed operation later does not.
	if err := store.Load(); err != nil {
		lgr.Fatalf("[ERROR] cannot load tasks: %v", err)
	}

	c := cli.New(app.New(store), os.Stdin, os.Stdout)
	c.AssumeYes = cfg.Yes
	if err := c.Run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
