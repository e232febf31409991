package gosketch

import "math"

// Canvas pixels are rendered at this density, making one pixel one
// typographic point.
const DefaultDPI = 72

// PixelsToPoints converts canvas pixels to typographic points at the
// given density.
func PixelsToPoints(px, dpi float64) float64 {
	return px * 72 / dpi
}

// PointsToPixels converts typographic points to canvas pixels at the
// given density.
func PointsToPixels(pt, dpi float64) float64 {
	return pt * dpi / 72
}

// MillimetersToPixels converts millimeters to canvas pixels at the
// given density.
func MillimetersToPixels(mm, dpi float64) float64 {
	return mm * dpi / 25.4
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// round2 rounds to 2 decimal places, the precision used by the markup
// and record emitters.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
