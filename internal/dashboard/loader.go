package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// LoadDashboard reads the TOML file at path, applies the package defaults
// and validates the result.
func LoadDashboard(path string) (*Dashboard, error) {
	return LoadDashboardWithDefaults(path, DefaultInterval, DefaultMaxHistory)
}

// LoadDashboardWithDefaults is LoadDashboard with caller-supplied fallbacks
// for interval and max_history, typically taken from the global config.
func LoadDashboardWithDefaults(path string, interval time.Duration, maxHistory int) (*Dashboard, error) {
	var dash Dashboard
	md, err := toml.DecodeFile(path, &dash)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown keys %v", path, undecoded)
	}
	if dash.IntervalStr != "" {
		d, err := time.ParseDuration(dash.IntervalStr)
		if err != nil {
			return nil, fmt.Errorf("%s: interval: %w", path, err)
		}
		dash.Interval = d
	}
	if dash.Name == "" {
		dash.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	dash.ApplyDefaults(interval, maxHistory)
	if err := dash.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &dash, nil
}

// SaveDashboard writes a Dashboard to a TOML file at path.
func SaveDashboard(dash *Dashboard, path string) error {
	dash.IntervalStr = dash.Interval.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(dash)
}

// ListDashboards returns the sorted base names of the .toml files in dir.
func ListDashboards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".toml" {
			names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve maps a dashboard name to its file in dir.
func Resolve(dir, name string) string {
	if filepath.Ext(name) == ".toml" {
		return name
	}
	return filepath.Join(dir, name+".toml")
}
