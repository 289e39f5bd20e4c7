package dashboard

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied to fields a dashboard file leaves out.
const (
	DefaultInterval   = 10 * time.Second
	DefaultMaxHistory = 360
	DefaultPort       = 161
)

// Dashboard represents a complete dashboard configuration loaded from TOML.
type Dashboard struct {
	Name            string        `toml:"name"`
	DefaultIdentity string        `toml:"default_identity"`
	IntervalStr     string        `toml:"interval"`
	Interval        time.Duration `toml:"-"`
	// MaxHistory is the number of rate samples kept per interface.
	MaxHistory int     `toml:"max_history"`
	Groups     []Group `toml:"groups"`
}

// Group represents a named collection of monitoring targets.
type Group struct {
	Name    string   `toml:"name"`
	Targets []Target `toml:"targets"`
}

// Target represents a single SNMP device to monitor.
type Target struct {
	Host       string   `toml:"host"`
	Label      string   `toml:"label"`
	Identity   string   `toml:"identity"`
	Port       int      `toml:"port"`
	Interfaces []string `toml:"interfaces"`
}

// ApplyDefaults fills unset interval, history depth, ports and per-target
// credentials. interval and maxHistory are used when the file sets neither;
// non-positive values fall back to the package defaults.
func (d *Dashboard) ApplyDefaults(interval time.Duration, maxHistory int) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	if d.Interval == 0 {
		d.Interval = interval
	}
	if d.MaxHistory == 0 {
		d.MaxHistory = maxHistory
	}
	for i := range d.Groups {
		for j := range d.Groups[i].Targets {
			t := &d.Groups[i].Targets[j]
			if t.Port == 0 {
				t.Port = DefaultPort
			}
			if t.Identity == "" {
				t.Identity = d.DefaultIdentity
			}
			if t.Label == "" {
				t.Label = t.Host
			}
		}
	}
}

// Validate reports configuration that the poller cannot run.
func (d *Dashboard) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("dashboard name is required"))
	}
	if d.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", d.Interval))
	}
	if d.MaxHistory <= 0 {
		errs = append(errs, fmt.Errorf("max_history must be greater than zero, got %d", d.MaxHistory))
	}
	seen := make(map[string]bool)
	for _, g := range d.Groups {
		for _, t := range g.Targets {
			if t.Host == "" {
				errs = append(errs, fmt.Errorf("group %q: target without host", g.Name))
				continue
			}
			if seen[t.Host] {
				errs = append(errs, fmt.Errorf("host %s listed more than once", t.Host))
			}
			seen[t.Host] = true
			if len(t.Interfaces) == 0 {
				errs = append(errs, fmt.Errorf("host %s: no interfaces listed", t.Host))
			}
		}
	}
	return errors.Join(errs...)
}

// InterfaceCount returns the number of interfaces across all targets.
func (d *Dashboard) InterfaceCount() int {
	n := 0
	for _, g := range d.Groups {
		for _, t := range g.Targets {
			n += len(t.Interfaces)
		}
	}
	return n
}
