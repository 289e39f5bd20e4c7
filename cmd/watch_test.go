package cmd

import (
	"testing"

	"github.com/tonhe/flo/internal/engine"
)

func TestCountReachedUsesPollCount(t *testing.T) {
	tests := []struct {
		name  string
		polls int
		count int
		want  bool
	}{
		{"unlimited", 50, 0, false},
		{"before", 2, 3, false},
		{"exact", 3, 3, true},
		{"skipped past", 5, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &engine.DashboardSnapshot{PollCount: tt.polls}
			if got := countReached(snap, tt.count); got != tt.want {
				t.Errorf("countReached(%d polls, %d) = %v, want %v", tt.polls, tt.count, got, tt.want)
			}
		})
	}
}
