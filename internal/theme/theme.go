package theme

import (
	"fmt"
	"strings"
)

// Theme is the rider's colour scheme preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// DefaultTheme applies when nothing has been persisted yet
	DefaultTheme = Dark
)

// ParseTheme parses "light" or "dark", case-insensitively
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string {
	return string(t)
}
