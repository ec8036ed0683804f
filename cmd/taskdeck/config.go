package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"taskdeck/version"
)

const envPrefix = "TASKDECK_"

// Config holds the runtime settings. Precedence, lowest to highest:
// defaults, TOML config file, environment, flags.
type Config struct {
	Debug    bool   `toml:"debug"`
	DataFile string `toml:"data_file"`
	NoColor  bool   `toml:"no_color"`

	Memory bool `toml:"-"`
	Yes    bool `toml:"-"`
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskdeck")
}

// ParseFlags builds the Config from defaults, config file, environment
// and command line, and handles -version.
func ParseFlags() Config {
	cfg := Config{
		DataFile: filepath.Join(defaultDir(), "tasks.json"),
	}

	printVersion := flag.Bool("version", false, "Show version.")
	configFile := flag.String("config", filepath.Join(defaultDir(), "config.toml"), "Path to TOML config file.")
	dataFile := flag.String("file", cfg.DataFile, "Path to the tasks data file.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	noColor := flag.Bool("no-color", false, "Disable colored output.")
	memory := flag.Bool("memory", false, "Keep tasks in memory only, nothing is persisted.")
	yes := flag.Bool("yes", false, "Skip confirmation prompts.")
	flag.Parse()

	if *printVersion {
		fmt.Fprintln(os.Stdout, version.String())
		os.Exit(0)
	}

	// Config file, if present. A missing file is fine, a broken one is not.
	if data, err := os.ReadFile(*configFile); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "cannot parse config %s: %v\n", *configFile, err)
			os.Exit(1)
		}
	}

	// Environment.
	if v := os.Getenv(envPrefix + "FILE"); v != "" {
		cfg.DataFile = v
	}
	if os.Getenv(envPrefix+"DEBUG") != "" {
		cfg.Debug = true
	}
	if os.Getenv(envPrefix+"NO_COLOR") != "" {
		cfg.NoColor = true
	}

	// Flags the user actually set win over everything.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.DataFile = *dataFile
		case "debug":
			cfg.Debug = *debug
		case "no-color":
			cfg.NoColor = *noColor
		}
	})
	cfg.Memory = *memory
	cfg.Yes = *yes

	return cfg
}
