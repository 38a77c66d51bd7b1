package settings

import (
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// Level is a QR error correction level. Higher levels survive more damage
// at the cost of data capacity.
type Level string

const (
	LevelL Level = "L" // ~7% recovery
	LevelM Level = "M" // ~15%
	LevelQ Level = "Q" // ~25%
	LevelH Level = "H" // ~30%
)

// Levels lists every level from lowest to highest.
var Levels = []Level{LevelL, LevelM, LevelQ, LevelH}

// ParseLevel normalizes s ("h", " Q ") to a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", validation.New("error_correction", "must be one of L, M, Q, H")
	}
	return l, nil
}

// Valid reports whether l is one of the four levels.
func (l Level) Valid() bool {
	switch l {
	case LevelL, LevelM, LevelQ, LevelH:
		return true
	}
	return false
}

func (l Level) String() string { return string(l) }
