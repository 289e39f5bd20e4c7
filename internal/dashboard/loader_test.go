package dashboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testDashboardTOML = `
name = "Test Dashboard"
default_identity = "test-v2c"
interval = "10s"
max_history = 360

[[groups]]
name = "Core"

[[groups.targets]]
host = "10.0.1.1"
label = "rtr-1"
identity = "test-v2c"
interfaces = ["Gi0/0", "Gi0/1"]

[[groups]]
name = "Branch"

[[groups.targets]]
host = "10.1.1.1"
label = "branch-1"
identity = "branch-ro"
port = 1161
interfaces = ["Eth1"]
`

func TestLoadDashboard(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.toml")
	os.WriteFile(path, []byte(testDashboardTOML), 0644)

	dash, err := LoadDashboard(path)
	if err != nil {
		t.Fatalf("LoadDashboard() error: %v", err)
	}
	if dash.Name != "Test Dashboard" {
		t.Errorf("expected name 'Test Dashboard', got %q", dash.Name)
	}
	if dash.Interval != 10*time.Second {
		t.Errorf("expected interval 10s, got %v", dash.Interval)
	}
	if len(dash.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(dash.Groups))
	}
	if len(dash.Groups[0].Targets) != 1 {
		t.Errorf("expected 1 target in group 0, got %d", len(dash.Groups[0].Targets))
	}
	if dash.Groups[1].Targets[0].Port != 1161 {
		t.Errorf("expected port 1161, got %d", dash.Groups[1].Targets[0].Port)
	}
	if dash.MaxHistory != 360 {
		t.Errorf("expected max_history 360, got %d", dash.MaxHistory)
	}
	if got := dash.InterfaceCount(); got != 3 {
		t.Errorf("expected 3 interfaces, got %d", got)
	}
}

func TestLoadDashboardDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edge.toml")
	os.WriteFile(path, []byte(`
default_identity = "ro"

[[groups]]
name = "Edge"

[[groups.targets]]
host = "192.0.2.1"
interfaces = ["xe-0/0/0"]
`), 0644)

	dash, err := LoadDashboardWithDefaults(path, 30*time.Second, 120)
	if err != nil {
		t.Fatalf("LoadDashboardWithDefaults() error: %v", err)
	}
	if dash.Name != "edge" {
		t.Errorf("expected name from file name, got %q", dash.Name)
	}
	if dash.Interval != 30*time.Second || dash.MaxHistory != 120 {
		t.Errorf("expected fallbacks 30s/120, got %v/%d", dash.Interval, dash.MaxHistory)
	}
	tgt := dash.Groups[0].Targets[0]
	if tgt.Port != 161 || tgt.Identity != "ro" || tgt.Label != "192.0.2.1" {
		t.Errorf("target defaults not applied: %+v", tgt)
	}
}

func TestLoadDashboardInvalid(t *testing.T) {
	tests := map[string]string{
		"negative history": "name = \"x\"\nmax_history = -5\n",
		"bad interval":     "name = \"x\"\ninterval = \"fast\"\n",
		"unknown key":      "name = \"x\"\nhistory_depth = 10\n",
		"no interfaces":    "name = \"x\"\n[[groups]]\nname = \"g\"\n[[groups.targets]]\nhost = \"h\"\n",
	}
	for name, body := range tests {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte(body), 0644)
		if _, err := LoadDashboard(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveDashboard(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.toml")

	dash := &Dashboard{
		Name:            "Saved Dashboard",
		DefaultIdentity: "prod-v3",
		Interval:        5 * time.Second,
		MaxHistory:      720,
		Groups: []Group{
			{Name: "Test", Targets: []Target{
				{Host: "1.2.3.4", Label: "test", Identity: "prod-v3", Interfaces: []string{"Eth0"}},
			}},
		},
	}
	if err := SaveDashboard(dash, path); err != nil {
		t.Fatalf("SaveDashboard() error: %v", err)
	}

	loaded, err := LoadDashboard(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if loaded.Name != "Saved Dashboard" {
		t.Errorf("expected 'Saved Dashboard', got %q", loaded.Name)
	}
}

func TestListDashboards(t *testing.T) {
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "a.toml"), []byte(testDashboardTOML), 0644)
	os.WriteFile(filepath.Join(tmp, "b.toml"), []byte(testDashboardTOML), 0644)
	os.WriteFile(filepath.Join(tmp, "not-toml.txt"), []byte("ignore"), 0644)

	names, err := ListDashboards(tmp)
	if err != nil {
		t.Fatalf("ListDashboards() error: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}
	if got := Resolve(tmp, "a"); got != filepath.Join(tmp, "a.toml") {
		t.Errorf("Resolve() = %q", got)
	}
}
