package gosketch

import (
	"fmt"
	"strings"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack  = Color{ARGB: "FF000000"}
	ColorWhite  = Color{ARGB: "FFFFFFFF"}
	ColorRed    = Color{ARGB: "FFFF0000"}
	ColorGreen  = Color{ARGB: "FF00FF00"}
	ColorBlue   = Color{ARGB: "FF0000FF"}
	ColorYellow = Color{ARGB: "FFFFFF00"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return Color{ARGB: "FF000000"} // fallback to black
	}
	return Color{ARGB: argb}
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 {
	return parseHexByte(c.ARGB, 2)
}

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 {
	return parseHexByte(c.ARGB, 4)
}

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 {
	return parseHexByte(c.ARGB, 6)
}

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 {
	return parseHexByte(c.ARGB, 0)
}

// RGBHex returns the color as a "#rrggbb" string for SVG attributes.
func (c Color) RGBHex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.GetRed(), c.GetGreen(), c.GetBlue())
}

// Opacity returns the alpha component as a 0..1 fraction.
func (c Color) Opacity() float64 {
	return float64(c.GetAlpha()) / 255
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// LineCap selects the stroke end-cap shape.
type LineCap string

const (
	LineCapButt   LineCap = "butt"
	LineCapRound  LineCap = "round"
	LineCapSquare LineCap = "square"
)

// LineJoin selects the stroke corner shape.
type LineJoin string

const (
	LineJoinMiter LineJoin = "miter"
	LineJoinRound LineJoin = "round"
	LineJoinBevel LineJoin = "bevel"
)

// FillRule selects how self-overlapping outlines are filled.
type FillRule string

const (
	FillRuleWinding FillRule = "winding"
	FillRuleEvenOdd FillRule = "evenodd"
)

// Style describes how an element outline is stroked and filled.
type Style struct {
	LineWidth   float64
	LineCap     LineCap
	LineJoin    LineJoin
	StrokeColor Color
	FillColor   Color
	Filled      bool
	FillRule    FillRule
	Dashes      []float64 // on/off run lengths in pixels; empty means solid
	DashOffset  float64
	Eraser      bool // stroke with the background color instead
}

// DefaultStyle returns a 1px solid black stroke with round caps and
// joins and no fill.
func DefaultStyle() Style {
	return Style{
		LineWidth:   1,
		LineCap:     LineCapRound,
		LineJoin:    LineJoinRound,
		StrokeColor: ColorBlack,
		FillColor:   ColorBlack,
		FillRule:    FillRuleWinding,
	}
}

// DashActive reports whether the dash pattern applies: both run lengths
// must be positive.
func (s Style) DashActive() bool {
	return len(s.Dashes) >= 2 && s.Dashes[0] > 0 && s.Dashes[1] > 0
}

// Font weights as used in CSS and the persisted record format.
const (
	FontWeightNormal = 400
	FontWeightBold   = 700
)

// TextAttributes carries the text payload and font of a text element.
type TextAttributes struct {
	Content    string
	Cursor     int // rune offset of the edit caret; -1 means end
	FontFamily string
	Weight     int // 400 normal, 700 bold
	Italic     bool
	Stretch    string
	Variant    string
	RightAlign bool
	Color      Color
}

// Bold reports whether the text weight is at least bold.
func (t TextAttributes) Bold() bool {
	return t.Weight >= FontWeightBold
}
