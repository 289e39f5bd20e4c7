package cmd

import (
	"testing"

	"github.com/tonhe/flo/internal/dashboard"
)

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		arg      string
		wantHost string
		wantPort int
	}{
		{"10.0.0.1", "10.0.0.1", dashboard.DefaultPort},
		{"10.0.0.1:1161", "10.0.0.1", 1161},
		{"switch.lab", "switch.lab", dashboard.DefaultPort},
		{"[2001:db8::1]:162", "2001:db8::1", 162},
		{"[2001:db8::1]", "2001:db8::1", dashboard.DefaultPort},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			host, port, err := splitTarget(tt.arg)
			if err != nil {
				t.Fatalf("splitTarget(%q) error: %v", tt.arg, err)
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("splitTarget(%q) = %s, %d, want %s, %d", tt.arg, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestSplitTargetBadPort(t *testing.T) {
	for _, arg := range []string{"10.0.0.1:snmp", "10.0.0.1:0", "10.0.0.1:70000"} {
		if _, _, err := splitTarget(arg); err == nil {
			t.Errorf("splitTarget(%q) expected error", arg)
		}
	}
}
