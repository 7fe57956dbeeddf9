package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func readSwitchMode(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

func (m switchMode) resolve(w io.Writer) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// colorEnabledFor is the auto rule for colored output on w.
func colorEnabledFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return modeAuto.resolve(w)
}
