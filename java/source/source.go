// Package source describes Java language levels and the language features
// each level allows.
package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
)

// Level is a Java language level, numbered by feature release (8, 9, ..., 17).
type Level int

const (
	JDK1_4 Level = 4
	JDK5   Level = 5
	JDK6   Level = 6
	JDK7   Level = 7
	JDK8   Level = 8
	JDK9   Level = 9
	JDK10  Level = 10
	JDK11  Level = 11
	JDK12  Level = 12
	JDK13  Level = 13
	JDK14  Level = 14
	JDK15  Level = 15
	JDK16  Level = 16
	JDK17  Level = 17

	// MinLevel and MaxLevel bound the supported range.
	MinLevel = JDK7
	MaxLevel = JDK17

	DefaultLevel = MaxLevel
)

// ErrUnknownLevel is returned for a level outside the supported range.
var ErrUnknownLevel = errors.New("unknown source level")

// ParseLevel accepts "8", "1.8", "17" or "17.0". Legacy "1.x" names map
// to x.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	v, err := version.NewVersion(s)
	if err != nil {
		return 0, fmt.Errorf("parse source level %q: %w", s, err)
	}
	seg := v.Segments()
	n := seg[0]
	if n == 1 && len(seg) > 1 {
		n = seg[1]
	}
	lvl := Level(n)
	if lvl < MinLevel || lvl > MaxLevel {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLevel, s)
	}
	return lvl, nil
}

func (l Level) String() string {
	if l < JDK9 {
		return "1." + strconv.Itoa(int(l))
	}
	return strconv.Itoa(int(l))
}

// Name returns the level the way diagnostics spell it ("8", "17").
func (l Level) Name() string {
	return strconv.Itoa(int(l))
}
