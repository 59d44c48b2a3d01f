package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff     Level = iota
	LevelPass          // driver + pass boundaries
	LevelFile          // per-file events
	LevelHandler       // everything
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelPass:
		return "pass"
	case LevelFile:
		return "file"
	case LevelHandler:
		return "handler"
	default:
		return "unknown"
	}
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "pass":
		return LevelPass, nil
	case "file":
		return LevelFile, nil
	case "handler":
		return LevelHandler, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|pass|file|handler)", s)
	}
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPass:
		return scope <= ScopePass
	case LevelFile:
		return scope <= ScopeFile
	case LevelHandler:
		return true
	}
	return false
}
