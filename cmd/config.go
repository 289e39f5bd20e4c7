package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tonhe/flo/internal/config"
	"github.com/tonhe/flo/tui/styles"
)

const configUsage = "Usage: flo config <path|theme|identity|history>"

func configCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, configUsage)
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		configPath()
	case "theme":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: flo config theme NAME")
			os.Exit(1)
		}
		configSetTheme(args[1])
	case "identity":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: flo config identity NAME")
			os.Exit(1)
		}
		configSetIdentity(args[1])
	case "history":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: flo config history SAMPLES")
			os.Exit(1)
		}
		configSetHistory(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, configUsage)
		os.Exit(1)
	}
}

func configPath() {
	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(dir)
}

func configSetTheme(name string) {
	// Validate the theme name exists
	if styles.GetThemeByName(name) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'flo themes' to see available themes.")
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	cfg.Theme = name
	saveConfig(cfg)

	fmt.Printf("Default theme set to %q.\n", name)
}

func configSetIdentity(name string) {
	cfg := loadOrDefaultConfig()
	cfg.DefaultIdentity = name
	saveConfig(cfg)

	fmt.Printf("Default identity set to %q.\n", name)
}

func configSetHistory(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %q is not a number\n", arg)
		os.Exit(1)
	}
	cfg := loadOrDefaultConfig()
	cfg.MaxHistory = n
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saveConfig(cfg)

	fmt.Printf("Default history set to %d samples (%s at %s polling).\n",
		n, time.Duration(n)*cfg.PollInterval, cfg.PollInterval)
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

// loadOrDefaultConfig loads the config from disk, falling back to defaults.
func loadOrDefaultConfig() *config.Config {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}
