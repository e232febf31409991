package gosketch

import (
	"encoding/json"
	"math"
)

// TransformKind identifies the variant of a Transformation record.
type TransformKind int

const (
	TransformTranslation TransformKind = iota
	TransformRotation
	TransformScale
	TransformStretch
	TransformReflection
	TransformInversion
)

// String returns the persisted name of the transformation kind.
func (k TransformKind) String() string {
	switch k {
	case TransformTranslation:
		return "translation"
	case TransformRotation:
		return "rotation"
	case TransformScale:
		return "scale"
	case TransformStretch:
		return "stretch"
	case TransformReflection:
		return "reflection"
	case TransformInversion:
		return "inversion"
	default:
		return "unknown"
	}
}

// Interaction tolerances, in pixels and radians.
const (
	stretchTolerance        = math.Pi / 8
	reflectionTolerance     = 5.0
	minReflectionLineLength = 10.0
	minTranslationDistance  = 1.0
	minRotationAngle        = math.Pi / 1000
)

// Transformation is one record of an element's transformation stack.
// Depending on Kind only a subset of the parameter fields is meaningful:
// Translation uses the slide, Rotation the angle, Scale/Stretch the
// scales (plus the axis angle for an oblique stretch), Reflection and
// Inversion all of them.
type Transformation struct {
	Kind   TransformKind `json:"kind"`
	Angle  float64       `json:"angle,omitempty"`
	ScaleX float64       `json:"scaleX"`
	ScaleY float64       `json:"scaleY"`
	SlideX float64       `json:"slideX,omitempty"`
	SlideY float64       `json:"slideY,omitempty"`

	// Gesture state, only set between begin and end.
	start  Point
	end    Point
	active bool

	// Transformed center of the element as of just before this record,
	// cached by Element.transformedCenter.
	cachedCenter *Point
}

// UnmarshalJSON decodes a persisted record, defaulting absent scale
// fields to 1 so legacy records stay neutral.
func (t *Transformation) UnmarshalJSON(data []byte) error {
	type plain Transformation
	aux := (*plain)(t)
	aux.ScaleX, aux.ScaleY = 1, 1
	return json.Unmarshal(data, aux)
}

// newTransformation returns a neutral record of the given kind with its
// gesture anchored at start. Inversion derives its full parameter set
// from the start point alone, so it is initialized here as well.
func newTransformation(kind TransformKind, start Point) *Transformation {
	t := &Transformation{
		Kind:   kind,
		ScaleX: 1,
		ScaleY: 1,
		start:  start,
		end:    start,
		active: true,
	}
	if kind == TransformInversion {
		t.setInversion(start)
	}
	return t
}

// update recomputes the record's parameters from the current pointer
// position. center is the transformed center of the element as of just
// before this record. Calling update twice with the same point yields
// the same parameters. Committed records ignore further updates.
func (t *Transformation) update(center, p Point) {
	if !t.active {
		return
	}
	t.end = p
	switch t.Kind {
	case TransformTranslation:
		t.SlideX = p.X - t.start.X
		t.SlideY = p.Y - t.start.Y
	case TransformRotation:
		t.Angle = SignedAngle(center, t.start, p)
	case TransformScale:
		s := gestureScale(center, t.start, p)
		t.ScaleX = s
		t.ScaleY = s
	case TransformStretch:
		t.updateStretch(center, p)
	case TransformReflection:
		t.updateReflection(p)
	case TransformInversion:
		t.setInversion(p)
	}
}

// gestureScale is the ratio of the pointer's distance from center to the
// gesture start's distance from center. A degenerate start (on the
// center) yields scale 1.
func gestureScale(center, start, p Point) float64 {
	d0 := center.Distance(start)
	if d0 == 0 {
		return 1
	}
	return center.Distance(p) / d0
}

// updateStretch classifies the gesture axis from where the gesture
// started relative to the center. Starts near the vertical through the
// center stretch vertically, starts near the horizontal stretch
// horizontally, anything else scales both axes along the start axis.
func (t *Transformation) updateStretch(center, p Point) {
	startAngle := math.Atan2(t.start.Y-center.Y, t.start.X-center.X)
	s := gestureScale(center, t.start, p)
	switch {
	case math.Abs(math.Sin(startAngle)) >= math.Sin(math.Pi/2-stretchTolerance):
		t.ScaleX, t.ScaleY, t.Angle = 1, s, 0
	case math.Abs(math.Cos(startAngle)) >= math.Cos(stretchTolerance):
		t.ScaleX, t.ScaleY, t.Angle = s, 1, 0
	default:
		t.ScaleX, t.ScaleY, t.Angle = s, s, startAngle
	}
}

// updateReflection derives the mirror line from the drag. Short drags
// keep the record neutral so the element does not snap before the user
// has committed to a direction.
func (t *Transformation) updateReflection(p Point) {
	dx := p.X - t.start.X
	dy := p.Y - t.start.Y
	if t.start.Distance(p) < minReflectionLineLength {
		t.Angle = 0
		t.ScaleX, t.ScaleY = 1, 1
		t.SlideX, t.SlideY = 0, 0
		return
	}
	t.SlideX, t.SlideY = t.start.X, t.start.Y
	switch {
	case math.Abs(dy) <= reflectionTolerance && math.Abs(dy) < math.Abs(dx):
		// Horizontal mirror line through start.y.
		t.Angle = math.Pi
		t.ScaleX, t.ScaleY = 1, -1
	case math.Abs(dx) <= reflectionTolerance && math.Abs(dx) < math.Abs(dy):
		// Vertical mirror line through start.x.
		t.Angle = math.Pi
		t.ScaleX, t.ScaleY = -1, 1
	default:
		t.Angle = math.Atan(dy / dx)
		t.ScaleX, t.ScaleY = 1, -1
	}
}

// setInversion centers the point symmetry on p. The angle matches the
// mirror-line encoding even though a scale of (-1,-1) makes any
// rotation about the center a no-op.
func (t *Transformation) setInversion(p Point) {
	t.SlideX, t.SlideY = p.X, p.Y
	t.ScaleX, t.ScaleY = -1, -1
	if p.X == 0 {
		t.Angle = math.Pi / 2
	} else {
		t.Angle = math.Atan(p.Y / p.X)
	}
}

// isDiscardable reports whether the committed record is a no-op within
// tolerance and should be popped instead of kept.
func (t *Transformation) isDiscardable() bool {
	switch t.Kind {
	case TransformTranslation:
		return math.Hypot(t.SlideX, t.SlideY) < minTranslationDistance
	case TransformRotation:
		return math.Abs(t.Angle) < minRotationAngle
	case TransformReflection:
		return t.start.Distance(t.end) < minReflectionLineLength
	default:
		return false
	}
}

// commit clears the transient gesture state.
func (t *Transformation) commit() {
	t.start = Point{}
	t.end = Point{}
	t.active = false
}

// matrixAbout returns the affine block of this record, given the
// transformed center of the element as of just before the record.
// Rotation and Scale/Stretch pivot about that center; Reflection and
// Inversion pivot about their own slide point.
func (t *Transformation) matrixAbout(center Point) Matrix {
	switch t.Kind {
	case TransformTranslation:
		return Translate(t.SlideX, t.SlideY)
	case TransformRotation:
		return RotateAbout(t.Angle, center)
	case TransformScale, TransformStretch:
		return Translate(center.X, center.Y).
			Multiply(Rotate(t.Angle)).
			Multiply(Scale(t.ScaleX, t.ScaleY)).
			Multiply(Rotate(-t.Angle)).
			Multiply(Translate(-center.X, -center.Y))
	case TransformReflection, TransformInversion:
		return Translate(t.SlideX, t.SlideY).
			Multiply(Rotate(t.Angle)).
			Multiply(Scale(t.ScaleX, t.ScaleY)).
			Multiply(Rotate(-t.Angle)).
			Multiply(Translate(-t.SlideX, -t.SlideY))
	default:
		return Identity()
	}
}

// movesCenter reports whether the record relocates the element's pivot
// point. Rotation and Scale/Stretch are defined to pivot about the
// center and leave it in place.
func (t *Transformation) movesCenter() bool {
	switch t.Kind {
	case TransformTranslation, TransformReflection, TransformInversion:
		return true
	default:
		return false
	}
}
