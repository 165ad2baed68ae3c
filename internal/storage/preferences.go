package storage

import (
	"fmt"

	"go-calculator/internal/mode"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// GetTheme returns the stored theme, dark when unset or unrecognised.
func GetTheme(kv KV) (Theme, error) {
	raw, ok, err := kv.Get(KeyTheme)
	if err != nil {
		return "", fmt.Errorf("reading theme: %w", err)
	}
	t, perr := ParseTheme(raw)
	if !ok || perr != nil {
		return ThemeDark, nil
	}
	return t, nil
}

func SetTheme(kv KV, t Theme) error {
	return kv.Set(KeyTheme, string(t))
}

// GetLastMode returns the mode the user last selected, basic by default.
func GetLastMode(kv KV) (mode.Mode, error) {
	raw, ok, err := kv.Get(KeyLastMode)
	if err != nil {
		return "", fmt.Errorf("reading last mode: %w", err)
	}
	m, perr := mode.Parse(raw)
	if !ok || perr != nil {
		return mode.Basic, nil
	}
	return m, nil
}

func SetLastMode(kv KV, m mode.Mode) error {
	return kv.Set(KeyLastMode, string(m))
}
