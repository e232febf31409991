package gosketch

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/srwiley/rasterx"
)

// Thin and zero-width strokes are hit-tested with this minimum width so
// they remain pickable.
const hitStrokeWidth = 25.0

var defaultFonts = sync.OnceValue(func() *FontCache {
	return NewFontCache()
})

// Contains reports whether the canvas point (x, y) hits the element.
// The point is mapped back through the transformation stack, then tested
// against the raw geometry: text by glyph fill containment, every other
// shape by re-stroking with an enlarged line width (and the fill, when
// the element is filled).
func (e *Element) Contains(x, y float64) bool {
	if !e.Renderable() {
		return false
	}
	p := e.Matrix().Invert().TransformPoint(Pt(x, y))
	if e.Shape == ShapeText {
		return e.textContains(p)
	}

	raw := e.RawPath()
	if raw.IsEmpty() {
		return false
	}
	// Shift the geometry so the query point lands on the single test
	// pixel, then rasterize into it.
	shifted := raw.Transform(Translate(0.5-p.X, 0.5-p.Y))

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	scanner := rasterx.NewScannerGV(1, 1, img, img.Bounds())
	dasher := rasterx.NewDasher(1, 1, scanner)
	width := math.Max(e.Style.LineWidth, hitStrokeWidth)
	dasher.SetStroke(floatToFixed(width), floatToFixed(4),
		capFunc(e.Style.LineCap), nil, nil, joinMode(e.Style.LineJoin), nil, 0)
	shifted.AddTo(dasher)
	dasher.SetColor(color.Black)
	dasher.Draw()
	if img.RGBAAt(0, 0).A > 0 {
		return true
	}

	if !e.Style.Filled {
		return false
	}
	img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	scanner = rasterx.NewScannerGV(1, 1, img, img.Bounds())
	filler := &rasterx.NewDasher(1, 1, scanner).Filler
	filler.SetWinding(e.Style.FillRule != FillRuleEvenOdd)
	shifted.AddTo(filler)
	filler.SetColor(color.Black)
	filler.Draw()
	return img.RGBAAt(0, 0).A > 0
}

// textContains tests a point, already in the element's raw coordinate
// space, against the laid-out glyphs.
func (e *Element) textContains(p Point) bool {
	if e.Text == nil || len(e.Points) < 2 || e.Text.Content == "" {
		return false
	}
	size := e.FontSize()
	if size <= 0 {
		return false
	}
	fc := defaultFonts()
	face := textRenderFace(fc, e.Text, size)
	width := fixedToFloat(font.MeasureString(textMeasureFace(fc, e.Text, size), e.Text.Content))
	origin := e.textOrigin(width)
	local := p.Sub(origin)

	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	height := ascent + fixedToFloat(metrics.Descent)
	if local.X < 0 || local.Y < 0 || local.X >= width || local.Y >= height {
		return false
	}

	w := int(math.Ceil(width)) + 2
	h := int(math.Ceil(height)) + 2
	mask := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: floatToFixed(ascent)},
	}
	d.DrawString(e.Text.Content)
	return mask.RGBAAt(int(local.X), int(local.Y)).A > 0
}
