package gosketch

import "math"

// ShapeKind identifies the geometry of a drawn element.
type ShapeKind int

const (
	ShapeFreehand ShapeKind = iota
	ShapeLine
	ShapeEllipse
	ShapeRectangle
	ShapeText
	ShapePolygon
	ShapePolyline
)

// String returns a lowercase name for the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeFreehand:
		return "freehand"
	case ShapeLine:
		return "line"
	case ShapeEllipse:
		return "ellipse"
	case ShapeRectangle:
		return "rectangle"
	case ShapeText:
		return "text"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// Element is one drawable shape: its kind, style, ordered points and
// transformation stack. Point semantics are shape-dependent: Line holds
// 2 endpoints or 3/4 Bézier control points, Ellipse holds center and
// radius point plus an optional ratio point, Rectangle and Text hold two
// opposite corners, the remaining kinds hold polyline vertices.
type Element struct {
	Shape           ShapeKind
	Style           Style
	Text            *TextAttributes
	Points          []Point
	Transformations []*Transformation

	// LineIndex groups consecutive text lines; it offsets the rotation
	// center so grouped lines rotate about a shared point.
	LineIndex int

	// ShowSymmetry is set while a Reflection or Inversion gesture is in
	// progress so the renderer can draw the mirror line or center.
	ShowSymmetry bool

	originalCenter *Point
	textWidth      float64
	textWidthFor   string
	textWidthValid bool

	// Gesture state owned by the builders.
	activeTransformation *Transformation
	liveRotation         *Transformation
	liveStart            *Point
}

// NewElement creates an empty element of the given kind.
func NewElement(shape ShapeKind, style Style) *Element {
	e := &Element{Shape: shape, Style: style}
	if shape == ShapeText {
		e.Text = &TextAttributes{
			Cursor:     -1,
			FontFamily: "sans-serif",
			Weight:     FontWeightNormal,
			Color:      style.StrokeColor,
		}
	}
	return e
}

// Renderable reports whether the element has enough points to produce
// any geometry. In-progress gestures routinely hold fewer; the emitters
// treat such elements as producing nothing.
func (e *Element) Renderable() bool {
	switch e.Shape {
	case ShapeFreehand:
		return len(e.Points) >= 1
	default:
		return len(e.Points) >= 2
	}
}

// FontSize returns the text pixel height derived from the vertical
// extent between the two text points.
func (e *Element) FontSize() float64 {
	if e.Shape != ShapeText || len(e.Points) < 2 {
		return 0
	}
	return math.Abs(e.Points[1].Y - e.Points[0].Y)
}

// OriginalCenter returns the pivot point of the raw, untransformed
// geometry. It is computed once and cached; the builders invalidate it
// whenever they mutate points.
func (e *Element) OriginalCenter() Point {
	if e.originalCenter != nil {
		return *e.originalCenter
	}
	c := e.computeOriginalCenter()
	e.originalCenter = &c
	return c
}

func (e *Element) computeOriginalCenter() Point {
	pts := e.Points
	switch {
	case len(pts) == 0:
		return Point{}
	case e.Shape == ShapeEllipse:
		return pts[0]
	case e.Shape == ShapeLine && len(pts) == 4:
		return CurveCenter(pts[0], pts[1], pts[2], pts[3])
	case e.Shape == ShapeLine && len(pts) == 3:
		return CurveCenter(pts[0], pts[0], pts[1], pts[2])
	case e.Shape == ShapeText:
		return Point{X: pts[0].X, Y: pts[0].Y - float64(e.LineIndex)*e.FontSize()}
	case len(pts) >= 3:
		return Centroid(pts)
	default:
		return NaiveCenter(pts)
	}
}

// invalidateCenter drops the cached original center and every cached
// transformed center derived from it.
func (e *Element) invalidateCenter() {
	e.originalCenter = nil
	e.invalidateTransformedCenters(-1)
}

// invalidateTransformedCenters drops cached transformed centers of every
// record after index changed. A record's cache depends only on records
// earlier in the stack.
func (e *Element) invalidateTransformedCenters(changed int) {
	for i, t := range e.Transformations {
		if i > changed {
			t.cachedCenter = nil
		}
	}
}

// transformedCenter returns the pivot point after folding in every
// transformation strictly before index upTo, newest-first. Only records
// that relocate the center contribute; Rotation and Scale/Stretch pivot
// about it and leave it in place. The result is cached on the record at
// index upTo.
func (e *Element) transformedCenter(upTo int) Point {
	if upTo > len(e.Transformations) {
		upTo = len(e.Transformations)
	}
	var rec *Transformation
	if upTo >= 0 && upTo < len(e.Transformations) {
		rec = e.Transformations[upTo]
		if rec.cachedCenter != nil {
			return *rec.cachedCenter
		}
	}
	m := Identity()
	for i := upTo - 1; i >= 0; i-- {
		t := e.Transformations[i]
		if t.movesCenter() {
			m = m.Multiply(t.matrixAbout(Point{}))
		}
	}
	c := m.TransformPoint(e.OriginalCenter())
	if rec != nil {
		rec.cachedCenter = &c
	}
	return c
}

// Matrix returns the element's effective affine map: the stack is
// iterated from the most recently pushed record to the oldest and each
// record's block is folded in on the right, so the oldest record acts
// first on the raw geometry.
func (e *Element) Matrix() Matrix {
	m := Identity()
	for i := len(e.Transformations) - 1; i >= 0; i-- {
		t := e.Transformations[i]
		m = m.Multiply(t.matrixAbout(e.transformedCenter(i)))
	}
	return m
}

// SetTextWidth caches the measured pixel width of the rendered text. The
// renderer computes it during layout; the markup emitter reuses it. The
// measured content is recorded alongside so the cache cannot serve a
// width measured for a different string.
func (e *Element) SetTextWidth(w float64) {
	e.textWidth = w
	e.textWidthValid = true
	if e.Text != nil {
		e.textWidthFor = e.Text.Content
	}
}

// TextWidth returns the cached measured text width and whether it is
// current for the element's present content.
func (e *Element) TextWidth() (float64, bool) {
	if !e.textWidthValid || e.Text == nil || e.textWidthFor != e.Text.Content {
		return 0, false
	}
	return e.textWidth, true
}

// invalidateTextWidth marks the cached text width stale.
func (e *Element) invalidateTextWidth() {
	e.textWidthValid = false
}
