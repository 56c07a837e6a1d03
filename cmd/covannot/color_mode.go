package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on":
		return colorModeOn, nil
	case "off":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// shouldColor resolves auto against the destination: only a terminal gets
// escapes, and NO_COLOR disables them.
func shouldColor(mode colorMode, out io.Writer) bool {
	switch mode {
	case colorModeOn:
		return true
	case colorModeOff:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}
