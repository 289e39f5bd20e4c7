package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "flo"

// baseDir resolves a per-user directory: winEnv (falling back to
// %USERPROFILE%\winFallback...) on Windows, xdgEnv (falling back to
// ~/unixFallback...) elsewhere.
func baseDir(winEnv string, winFallback []string, xdgEnv string, unixFallback []string) (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv(winEnv); dir != "" {
			return filepath.Join(dir, appName), nil
		}
		parts := append([]string{os.Getenv("USERPROFILE")}, winFallback...)
		return filepath.Join(append(parts, appName)...), nil
	}
	if dir := os.Getenv(xdgEnv); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, unixFallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/flo (~/.config/flo) or %APPDATA%\flo.
func GetConfigDir() (string, error) {
	return baseDir("APPDATA", []string{"AppData", "Roaming"}, "XDG_CONFIG_HOME", []string{".config"})
}

// GetDataDir returns $XDG_DATA_HOME/flo (~/.local/share/flo) or %LOCALAPPDATA%\flo.
func GetDataDir() (string, error) {
	return baseDir("LOCALAPPDATA", []string{"AppData", "Local"}, "XDG_DATA_HOME", []string{".local", "share"})
}

// GetConfigPath returns the path of config.toml.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetDashboardsDir returns the directory holding dashboard TOML files.
func GetDashboardsDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dashboards"), nil
}

// GetVaultPath returns the path of the encrypted credential vault.
func GetVaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.enc"), nil
}

// EnsureDirs creates the config, data and dashboards directories.
func EnsureDirs() error {
	for _, fn := range []func() (string, error){GetConfigDir, GetDataDir, GetDashboardsDir} {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
