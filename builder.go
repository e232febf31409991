package gosketch

import (
	"math"
	"slices"
)

// Points closer than this are treated as a single click rather than a
// drag, and polygon vertices this close are not split into a new edge.
const minDrawingSize = 3.0

// StartDrawing begins a point-acquisition gesture with the first pointer
// sample. Polygon and Polyline push a duplicate vertex so there is
// always a live last vertex to drag.
func (e *Element) StartDrawing(x, y float64) {
	p := Pt(x, y)
	e.Points = append(e.Points[:0], p)
	if e.Shape == ShapePolygon || e.Shape == ShapePolyline {
		e.Points = append(e.Points, p)
	}
	e.invalidateCenter()
	e.invalidateTextWidth()
}

// UpdateDrawing feeds one pointer-move sample to the drawing gesture.
// Live-transform mode is enabled automatically once the element already
// carries a transformation; use UpdateDrawingLive to force it.
func (e *Element) UpdateDrawing(x, y float64) {
	e.UpdateDrawingLive(x, y, len(e.Transformations) > 0)
}

// UpdateDrawingLive feeds one pointer-move sample with an explicit
// live-transform mode. In live mode a drag manipulates the element
// through its transformation stack (smoothing for Freehand, a live
// rotation for Rectangle, Ellipse, Polygon and Polyline, repositioning
// for Text) instead of editing raw points.
func (e *Element) UpdateDrawingLive(x, y float64, live bool) {
	p := Pt(x, y)
	if n := len(e.Points); n > 0 && e.Points[n-1] == p {
		return
	}
	switch e.Shape {
	case ShapeFreehand:
		e.Points = append(e.Points, p)
		if live {
			if i := len(e.Points) - 1; i >= 2 {
				e.Points[i-1] = e.Points[i-2].Midpoint(e.Points[i])
			}
		}
	case ShapeRectangle, ShapePolygon, ShapePolyline:
		if live {
			e.updateLiveRotation(p)
			return
		}
		if e.Shape == ShapeRectangle {
			e.setPoint(1, p)
		} else {
			e.setPoint(len(e.Points)-1, p)
		}
	case ShapeEllipse:
		if live {
			e.setPoint(2, p)
			e.invalidateCenter()
			e.updateLiveRotation(p)
			return
		}
		e.setPoint(1, p)
	case ShapeText:
		if live && len(e.Points) >= 2 {
			delta := p.Sub(e.Points[1])
			e.Points[0] = e.Points[0].Add(delta)
			e.Points[1] = p
			break
		}
		e.setPoint(1, p)
	default:
		e.setPoint(1, p)
	}
	e.invalidateCenter()
	e.invalidateTextWidth()
}

// setPoint relocates the point at index i, growing the slice by one when
// i is the next free slot.
func (e *Element) setPoint(i int, p Point) {
	if i == len(e.Points) {
		e.Points = append(e.Points, p)
		return
	}
	if i >= 0 && i < len(e.Points) {
		e.Points[i] = p
	}
}

// updateLiveRotation drives the rotation record at stack index 0 from a
// drag, pivoting about the element's original center. The record is
// created on the first sample of the drag.
func (e *Element) updateLiveRotation(p Point) {
	if e.liveStart == nil {
		start := p
		e.liveStart = &start
	}
	if e.liveRotation == nil {
		e.liveRotation = newTransformation(TransformRotation, *e.liveStart)
		e.Transformations = append([]*Transformation{e.liveRotation}, e.Transformations...)
		e.invalidateTransformedCenters(-1)
	}
	e.liveRotation.Angle = SignedAngle(e.OriginalCenter(), *e.liveStart, p)
	e.invalidateTransformedCenters(0)
}

// AddVertex starts a new Polygon/Polyline edge by duplicating the last
// vertex, unless the previous edge is still shorter than the minimum
// drawing size.
func (e *Element) AddVertex() {
	if e.Shape != ShapePolygon && e.Shape != ShapePolyline {
		return
	}
	n := len(e.Points)
	if n >= 2 && Near(e.Points[n-1], e.Points[n-2], minDrawingSize) {
		return
	}
	if n > 0 {
		e.Points = append(e.Points, e.Points[n-1])
		e.invalidateCenter()
	}
}

// StopDrawing ends the drawing gesture. A drag so short that the final
// two points nearly coincide is treated as a click and the trailing
// point is dropped; a live rotation below the minimum angle is removed.
func (e *Element) StopDrawing() {
	n := len(e.Points)
	if e.Shape != ShapeFreehand && n >= 2 && Near(e.Points[n-1], e.Points[n-2], minDrawingSize) {
		e.Points = e.Points[:n-1]
		e.invalidateCenter()
		e.invalidateTextWidth()
	}
	if e.liveRotation != nil && math.Abs(e.liveRotation.Angle) < minRotationAngle {
		if i := slices.Index(e.Transformations, e.liveRotation); i >= 0 {
			e.Transformations = slices.Delete(e.Transformations, i, i+1)
			e.invalidateTransformedCenters(-1)
		}
	}
	if e.liveRotation != nil {
		e.liveRotation.commit()
	}
	e.liveRotation = nil
	e.liveStart = nil
}

// StartTransformation pushes a new transformation record of the given
// kind and makes it the gesture target. Reflection and Inversion also
// turn on the symmetry-element display.
func (e *Element) StartTransformation(kind TransformKind, x, y float64) {
	t := newTransformation(kind, Pt(x, y))
	e.Transformations = append(e.Transformations, t)
	e.activeTransformation = t
	if kind == TransformReflection || kind == TransformInversion {
		e.ShowSymmetry = true
	}
}

// UpdateTransformation recomputes the active record's parameters from
// the current pointer position. It is a no-op when no transformation
// gesture is in progress.
func (e *Element) UpdateTransformation(x, y float64) {
	t := e.activeTransformation
	if t == nil {
		return
	}
	i := slices.Index(e.Transformations, t)
	if i < 0 {
		return
	}
	t.update(e.transformedCenter(i), Pt(x, y))
	e.invalidateTransformedCenters(i)
}

// StopTransformation finalizes the active record, discarding it when the
// committed transform is a no-op within tolerance.
func (e *Element) StopTransformation() {
	t := e.activeTransformation
	e.activeTransformation = nil
	e.ShowSymmetry = false
	if t == nil {
		return
	}
	i := slices.Index(e.Transformations, t)
	if i < 0 {
		return
	}
	if t.isDiscardable() {
		e.Transformations = slices.Delete(e.Transformations, i, i+1)
		e.invalidateTransformedCenters(i - 1)
		return
	}
	t.commit()
}
