package styles

import (
	"testing"
)

func TestGetThemeByName(t *testing.T) {
	theme := GetThemeByName("solarized-dark")
	if theme == nil {
		t.Fatal("GetThemeByName('solarized-dark') returned nil")
	}
	if theme.Name != "Solarized Dark" {
		t.Errorf("expected name 'Solarized Dark', got %q", theme.Name)
	}
}

func TestGetThemeByNameMissing(t *testing.T) {
	theme := GetThemeByName("nonexistent")
	if theme != nil {
		t.Error("expected nil for nonexistent theme")
	}
}

func TestListThemes(t *testing.T) {
	themes := ListThemes()
	if len(themes) < 20 {
		t.Errorf("expected at least 20 themes, got %d", len(themes))
	}
}

func TestThemeCount(t *testing.T) {
	count := GetThemeCount()
	if count < 20 {
		t.Errorf("expected at least 20 themes, got %d", count)
	}
}

func TestGetThemeByIndex(t *testing.T) {
	theme := GetThemeByIndex(0)
	if theme == nil {
		t.Fatal("GetThemeByIndex(0) returned nil")
	}
}

func TestNextThemeWraps(t *testing.T) {
	slugs := ListThemes()
	if got := NextTheme(slugs[0]); got != slugs[1] {
		t.Errorf("NextTheme(%q) = %q, want %q", slugs[0], got, slugs[1])
	}
	if got := NextTheme(slugs[len(slugs)-1]); got != slugs[0] {
		t.Errorf("expected wrap to %q, got %q", slugs[0], got)
	}
	if got := NextTheme("nonexistent"); got != slugs[0] {
		t.Errorf("expected first theme for unknown slug, got %q", got)
	}
}

func TestThemeSlugsHaveNames(t *testing.T) {
	for _, slug := range ListThemes() {
		if GetThemeByName(slug).Name == "" {
			t.Errorf("theme %q has no display name", slug)
		}
	}
}
