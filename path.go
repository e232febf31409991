package gosketch

import (
	"github.com/srwiley/rasterx"
)

// PathElement is one verb of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at P.
type MoveTo struct {
	P Point
}

// LineTo draws a straight segment to P.
type LineTo struct {
	P Point
}

// QuadTo draws a quadratic Bézier segment via Control to P.
type QuadTo struct {
	Control Point
	P       Point
}

// CubicTo draws a cubic Bézier segment via Control1 and Control2 to P.
type CubicTo struct {
	Control1 Point
	Control2 Point
	P        Point
}

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// Path is an ordered list of path construction verbs.
type Path struct {
	elements []PathElement
}

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Elements returns the path's verbs in order.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{P: pt})
}

// LineTo adds a straight segment.
func (p *Path) LineTo(pt Point) {
	p.elements = append(p.elements, LineTo{P: pt})
}

// QuadTo adds a quadratic Bézier segment.
func (p *Path) QuadTo(c, pt Point) {
	p.elements = append(p.elements, QuadTo{Control: c, P: pt})
}

// CubicTo adds a cubic Bézier segment.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, P: pt})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
}

// Transform returns a copy of the path with every coordinate mapped
// through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, el := range p.elements {
		switch v := el.(type) {
		case MoveTo:
			out.MoveTo(m.TransformPoint(v.P))
		case LineTo:
			out.LineTo(m.TransformPoint(v.P))
		case QuadTo:
			out.QuadTo(m.TransformPoint(v.Control), m.TransformPoint(v.P))
		case CubicTo:
			out.CubicTo(m.TransformPoint(v.Control1), m.TransformPoint(v.Control2), m.TransformPoint(v.P))
		case Close:
			out.Close()
		}
	}
	return out
}

// AddTo replays the path into a rasterx adder.
func (p *Path) AddTo(adder rasterx.Adder) {
	open := false
	for _, el := range p.elements {
		switch v := el.(type) {
		case MoveTo:
			if open {
				adder.Stop(false)
			}
			adder.Start(rasterx.ToFixedP(v.P.X, v.P.Y))
			open = true
		case LineTo:
			adder.Line(rasterx.ToFixedP(v.P.X, v.P.Y))
		case QuadTo:
			adder.QuadBezier(rasterx.ToFixedP(v.Control.X, v.Control.Y), rasterx.ToFixedP(v.P.X, v.P.Y))
		case CubicTo:
			adder.CubeBezier(rasterx.ToFixedP(v.Control1.X, v.Control1.Y),
				rasterx.ToFixedP(v.Control2.X, v.Control2.Y), rasterx.ToFixedP(v.P.X, v.P.Y))
		case Close:
			adder.Stop(true)
			open = false
		}
	}
	if open {
		adder.Stop(false)
	}
}

// Bézier circle approximation constant.
const ellipseKappa = 0.5522847498307936

// appendEllipse adds an axis-aligned ellipse centered at c with radii
// rx, ry as four cubic segments.
func (p *Path) appendEllipse(c Point, rx, ry float64) {
	kx := rx * ellipseKappa
	ky := ry * ellipseKappa
	p.MoveTo(Pt(c.X+rx, c.Y))
	p.CubicTo(Pt(c.X+rx, c.Y+ky), Pt(c.X+kx, c.Y+ry), Pt(c.X, c.Y+ry))
	p.CubicTo(Pt(c.X-kx, c.Y+ry), Pt(c.X-rx, c.Y+ky), Pt(c.X-rx, c.Y))
	p.CubicTo(Pt(c.X-rx, c.Y-ky), Pt(c.X-kx, c.Y-ry), Pt(c.X, c.Y-ry))
	p.CubicTo(Pt(c.X+kx, c.Y-ry), Pt(c.X+rx, c.Y-ky), Pt(c.X+rx, c.Y))
	p.Close()
}

// EllipseRadii returns the horizontal and vertical radii of an Ellipse
// element. A third point stretches the base radius horizontally by the
// ratio of its distance from the center to the base radius.
func (e *Element) EllipseRadii() (rx, ry float64) {
	if len(e.Points) < 2 {
		return 0, 0
	}
	r := e.Points[0].Distance(e.Points[1])
	if len(e.Points) >= 3 && r > 0 {
		ratio := e.Points[0].Distance(e.Points[2]) / r
		return r * ratio, r
	}
	return r, r
}

// RawPath builds the untransformed geometric path of the element. Text
// produces no path (glyphs are laid out by the renderer); an element
// with too few points produces an empty path.
func (e *Element) RawPath() *Path {
	p := &Path{}
	pts := e.Points
	if !e.Renderable() || e.Shape == ShapeText {
		return p
	}
	switch e.Shape {
	case ShapeFreehand:
		p.MoveTo(pts[0])
		if len(pts) == 1 {
			p.LineTo(pts[0])
		}
		for _, pt := range pts[1:] {
			p.LineTo(pt)
		}
	case ShapeLine:
		p.MoveTo(pts[0])
		switch len(pts) {
		case 2:
			p.LineTo(pts[1])
		case 3:
			p.CubicTo(pts[1], pts[1], pts[2])
		default:
			p.CubicTo(pts[1], pts[2], pts[3])
		}
	case ShapeEllipse:
		rx, ry := e.EllipseRadii()
		if rx == 0 || ry == 0 {
			return &Path{}
		}
		p.appendEllipse(pts[0], rx, ry)
	case ShapeRectangle:
		a, b := pts[0], pts[1]
		p.MoveTo(a)
		p.LineTo(Pt(b.X, a.Y))
		p.LineTo(b)
		p.LineTo(Pt(a.X, b.Y))
		p.Close()
	case ShapePolygon:
		p.MoveTo(pts[0])
		for _, pt := range pts[1:] {
			p.LineTo(pt)
		}
		p.Close()
	case ShapePolyline:
		p.MoveTo(pts[0])
		for _, pt := range pts[1:] {
			p.LineTo(pt)
		}
	}
	return p
}

// TransformedPath builds the element's path with its transformation
// stack applied.
func (e *Element) TransformedPath() *Path {
	raw := e.RawPath()
	if raw.IsEmpty() {
		return raw
	}
	m := e.Matrix()
	if m.IsIdentity() {
		return raw
	}
	return raw.Transform(m)
}

// SymmetryPath returns the dashed mirror-line (or inversion-center
// cross) indicator for an in-progress Reflection or Inversion gesture,
// or an empty path when none applies.
func (e *Element) SymmetryPath() *Path {
	p := &Path{}
	if !e.ShowSymmetry {
		return p
	}
	t := e.activeTransformation
	if t == nil {
		return p
	}
	switch t.Kind {
	case TransformReflection:
		if t.start.Distance(t.end) < minReflectionLineLength {
			return p
		}
		// Extend the line well past the drag in both directions.
		d := t.end.Sub(t.start)
		l := d.Length()
		d = d.Mul(1000 / l)
		p.MoveTo(t.start.Sub(d))
		p.LineTo(t.start.Add(d))
	case TransformInversion:
		c := Pt(t.SlideX, t.SlideY)
		const arm = 8
		p.MoveTo(Pt(c.X-arm, c.Y))
		p.LineTo(Pt(c.X+arm, c.Y))
		p.MoveTo(Pt(c.X, c.Y-arm))
		p.LineTo(Pt(c.X, c.Y+arm))
	}
	return p
}
