package gosketch

import "math"

// Point represents a 2D point or vector in canvas pixels.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Near reports whether a and b are strictly closer than threshold.
func Near(a, b Point, threshold float64) bool {
	return a.Distance(b) < threshold
}

// NaiveCenter returns the arithmetic mean of the points. It is the
// fallback center for fewer than 3 points and for degenerate polygons.
func NaiveCenter(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// Centroid returns the shoelace-formula centroid of the polygon described
// by points. If the signed area cancels to zero (degenerate or
// self-intersecting outline), it falls back to NaiveCenter.
func Centroid(points []Point) Point {
	n := len(points)
	if n < 3 {
		return NaiveCenter(points)
	}
	var area, cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := points[i].X*points[j].Y - points[j].X*points[i].Y
		area += cross
		cx += (points[i].X + points[j].X) * cross
		cy += (points[i].Y + points[j].Y) * cross
	}
	if area == 0 {
		return NaiveCenter(points)
	}
	area /= 2
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// CurveCenter returns a notable point of the cubic Bézier curve with
// anchor p0, controls p1, p2 and end p3. When p0 == p1 (the 3-point line
// encoding, with p0 doubling as anchor and first control) the curve is
// evaluated at t=2/3; otherwise at t=1/2.
//
// This is the actual curve point only when the curve is symmetric about
// that parameter; otherwise it is an approximation usable as a rotation
// center, nothing more.
func CurveCenter(p0, p1, p2, p3 Point) Point {
	t := 0.5
	if p0 == p1 {
		t = 2.0 / 3.0
	}
	it := 1 - t
	a := it * it * it
	b := 3 * it * it * t
	c := 3 * it * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// SignedAngle returns the rotation angle about center that carries ref
// onto the ray from center toward target, in the clockwise-positive
// (y-down) convention of Rotate. The magnitude comes from the
// dot-product cosine formula, clamped to [-1,1] before acos so that
// floating-point overshoot at 0° or 180° cannot produce NaN. The sign
// encodes which side of the center-ref line the target falls on.
func SignedAngle(center, ref, target Point) float64 {
	u := ref.Sub(center)
	v := target.Sub(center)
	lu := u.Length()
	lv := v.Length()
	if lu == 0 || lv == 0 {
		return 0
	}
	cos := u.Dot(v) / (lu * lv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	angle := math.Acos(cos)

	if ref.X == center.X {
		if target.X > center.X {
			angle = -angle
		}
		return angle
	}
	// y of the center-ref line at target.X; screen coordinates, larger y
	// is below. A target below the line is reached clockwise from ref.
	lineY := center.Y + (target.X-center.X)*(ref.Y-center.Y)/(ref.X-center.X)
	if target.Y < lineY {
		angle = -angle
	}
	if ref.X < center.X {
		angle = -angle
	}
	return angle
}
