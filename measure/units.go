package measure

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for CSS-style lengths.
// quill works in screen pixels; em/ex lengths are relative to a font context.

// Unit represents the original unit of a length value as written in CSS.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitPX               // CSS pixels
	UnitEM               // multiples of the font size
	UnitEX               // multiples of the font x-height
	UnitPT               // typographic points (1pt = 4/3 px)
)

// Conversion constants between pt and px (CSS reference pixel).
const (
	PtToPx = 4.0 / 3.0
	PxToPt = 1.0 / PtToPx
)

// UnitToString returns the CSS suffix for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitEM:
		return "em"
	case UnitEX:
		return "ex"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// Px resolves this length to pixels. em is the font size in px and ex the
// font's x-height in px; both only matter for relative units.
func (l Length) Px(em, ex float64) float64 {
	switch l.Unit {
	case UnitEM:
		return l.Value * em
	case UnitEX:
		return l.Value * ex
	case UnitPT:
		return l.Value * PtToPx
	default:
		// UnitPX and unit-less values pass through unchanged.
		return l.Value
	}
}

// ParseLength parses a CSS length string preserving its unit.
// Returns false for empty or malformed input.
func ParseLength(value string) (Length, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"em", UnitEM}, {"ex", UnitEX}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// ParseFontSize resolves a CSS font-size to pixels. em sizes scale by basePx;
// a bare number counts as px. Returns false when the value cannot be parsed.
func ParseFontSize(value string, basePx float64) (float64, bool) {
	l, ok := ParseLength(value)
	if !ok {
		return 0, false
	}
	if l.Unit == UnitEX {
		// ex font sizes need a resolved font to measure against; treat as
		// em/2, the CSS fallback ratio.
		return l.Value * basePx / 2, true
	}
	return l.Px(basePx, 0), true
}
