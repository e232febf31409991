package gosketch

import (
	"math"
	"testing"
)

// rectElement returns a finished rectangle used as a transformation
// target in gesture tests.
func rectElement(t *testing.T) *Element {
	t.Helper()
	e := NewElement(ShapeRectangle, DefaultStyle())
	e.Points = []Point{{0, 0}, {10, 10}}
	return e
}

func TestTranslationGesture(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformTranslation, 1, 1)
	e.UpdateTransformation(6, 4)
	e.StopTransformation()

	if len(e.Transformations) != 1 {
		t.Fatalf("got %d transformations, want 1", len(e.Transformations))
	}
	tr := e.Transformations[0]
	floatsNear(t, tr.SlideX, 5, floatTolerance)
	floatsNear(t, tr.SlideY, 3, floatTolerance)
	pointsNear(t, tr.matrixAbout(Point{}).TransformPoint(Pt(0, 0)), Pt(5, 3), floatTolerance)
}

func TestTranslationBelowMinimumIsDiscarded(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformTranslation, 1, 1)
	e.UpdateTransformation(1.5, 1)
	e.StopTransformation()

	if len(e.Transformations) != 0 {
		t.Fatalf("0.5px translation should be discarded, stack has %d records", len(e.Transformations))
	}
}

func TestRotationBelowMinimumIsDiscarded(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformRotation, 20, 5)
	e.Transformations[0].Angle = 0.0001
	e.StopTransformation()

	if len(e.Transformations) != 0 {
		t.Fatalf("0.0001 rad rotation should be discarded, stack has %d records", len(e.Transformations))
	}
}

func TestRotationGesturePivotsAboutCenter(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformRotation, 20, 5)
	e.UpdateTransformation(5, 20)
	e.StopTransformation()

	if len(e.Transformations) != 1 {
		t.Fatalf("got %d transformations, want 1", len(e.Transformations))
	}
	tr := e.Transformations[0]
	floatsNear(t, math.Abs(tr.Angle), math.Pi/2, 1e-9)
	// The pivot stays put.
	pointsNear(t, e.Matrix().TransformPoint(Pt(5, 5)), Pt(5, 5), 1e-9)
}

func TestUpdateIsIdempotent(t *testing.T) {
	for _, kind := range []TransformKind{
		TransformTranslation, TransformRotation, TransformScale,
		TransformStretch, TransformReflection, TransformInversion,
	} {
		e := rectElement(t)
		e.StartTransformation(kind, 15, 5)
		e.UpdateTransformation(25, 9)
		first := *e.Transformations[0]
		e.UpdateTransformation(25, 9)
		second := *e.Transformations[0]
		if first.Angle != second.Angle ||
			first.ScaleX != second.ScaleX || first.ScaleY != second.ScaleY ||
			first.SlideX != second.SlideX || first.SlideY != second.SlideY {
			t.Errorf("%v: repeated update changed parameters: %+v vs %+v", kind, first, second)
		}
	}
}

func TestScaleGesture(t *testing.T) {
	e := rectElement(t)
	// Center is (5,5); start 5px right of it, drag to 10px right.
	e.StartTransformation(TransformScale, 10, 5)
	e.UpdateTransformation(15, 5)
	e.StopTransformation()

	tr := e.Transformations[0]
	floatsNear(t, tr.ScaleX, 2, floatTolerance)
	floatsNear(t, tr.ScaleY, 2, floatTolerance)
}

func TestScaleGestureDegenerateStart(t *testing.T) {
	e := rectElement(t)
	// Starting on the center would divide by zero; scale defaults to 1.
	e.StartTransformation(TransformScale, 5, 5)
	e.UpdateTransformation(9, 9)
	tr := e.Transformations[0]
	floatsNear(t, tr.ScaleX, 1, floatTolerance)
	floatsNear(t, tr.ScaleY, 1, floatTolerance)
}

func TestStretchHorizontal(t *testing.T) {
	e := rectElement(t)
	// Start directly right of the center: horizontal axis.
	e.StartTransformation(TransformStretch, 10, 5)
	e.UpdateTransformation(20, 5)
	tr := e.Transformations[0]
	floatsNear(t, tr.ScaleX, 3, floatTolerance)
	floatsNear(t, tr.ScaleY, 1, floatTolerance)
	floatsNear(t, tr.Angle, 0, floatTolerance)
}

func TestStretchVertical(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformStretch, 5, 10)
	e.UpdateTransformation(5, 15)
	tr := e.Transformations[0]
	floatsNear(t, tr.ScaleX, 1, floatTolerance)
	floatsNear(t, tr.ScaleY, 2, floatTolerance)
}

func TestStretchObliqueRecordsAxisAngle(t *testing.T) {
	e := rectElement(t)
	// 45 degrees from the center: neither horizontal nor vertical.
	e.StartTransformation(TransformStretch, 10, 10)
	e.UpdateTransformation(15, 15)
	tr := e.Transformations[0]
	if tr.Angle == 0 {
		t.Error("oblique stretch should record the axis angle")
	}
	floatsNear(t, tr.ScaleX, tr.ScaleY, floatTolerance)
}

func TestCommittedRecordIgnoresUpdates(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformTranslation, 0, 0)
	e.UpdateTransformation(30, 40)
	e.StopTransformation()

	tr := e.Transformations[0]
	before := *tr
	tr.update(Pt(5, 5), Pt(100, 100))
	if tr.SlideX != before.SlideX || tr.SlideY != before.SlideY {
		t.Errorf("committed record changed: %+v vs %+v", *tr, before)
	}
}

func TestReflectionHorizontalMirror(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformReflection, 0, 0)
	e.UpdateTransformation(10, 0)

	tr := e.Transformations[len(e.Transformations)-1]
	floatsNear(t, tr.ScaleX, 1, floatTolerance)
	floatsNear(t, tr.ScaleY, -1, floatTolerance)
	floatsNear(t, tr.SlideY, 0, floatTolerance)
	floatsNear(t, tr.Angle, math.Pi, floatTolerance)

	// The composite mirrors across y=0.
	m := tr.matrixAbout(Point{})
	pointsNear(t, m.TransformPoint(Pt(3, 4)), Pt(3, -4), 1e-9)
}

func TestReflectionVerticalMirror(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformReflection, 5, 0)
	e.UpdateTransformation(5, 20)

	tr := e.Transformations[len(e.Transformations)-1]
	floatsNear(t, tr.ScaleX, -1, floatTolerance)
	floatsNear(t, tr.ScaleY, 1, floatTolerance)
	m := tr.matrixAbout(Point{})
	pointsNear(t, m.TransformPoint(Pt(8, 3)), Pt(2, 3), 1e-9)
}

func TestReflectionObliqueMirror(t *testing.T) {
	e := rectElement(t)
	// Mirror line through the origin with slope 1.
	e.StartTransformation(TransformReflection, 0, 0)
	e.UpdateTransformation(20, 20)

	tr := e.Transformations[len(e.Transformations)-1]
	m := tr.matrixAbout(Point{})
	pointsNear(t, m.TransformPoint(Pt(5, 0)), Pt(0, 5), 1e-9)
	pointsNear(t, m.TransformPoint(Pt(3, 3)), Pt(3, 3), 1e-9)
}

func TestReflectionShortDragStaysNeutral(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformReflection, 0, 0)
	e.UpdateTransformation(4, 3)

	tr := e.Transformations[len(e.Transformations)-1]
	if !tr.matrixAbout(Point{}).IsIdentity() {
		t.Error("drag below the minimum mirror length should not reflect yet")
	}
}

func TestReflectionShortDragIsDiscarded(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformReflection, 0, 0)
	e.UpdateTransformation(4, 3)
	e.StopTransformation()

	if len(e.Transformations) != 0 {
		t.Fatalf("short reflection should be discarded, stack has %d records", len(e.Transformations))
	}
}

func TestInversionFollowsPointer(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformInversion, 5, 5)

	// A single click already defines the full transform.
	tr := e.Transformations[len(e.Transformations)-1]
	floatsNear(t, tr.ScaleX, -1, floatTolerance)
	floatsNear(t, tr.ScaleY, -1, floatTolerance)
	m := tr.matrixAbout(Point{})
	pointsNear(t, m.TransformPoint(Pt(8, 9)), Pt(2, 1), 1e-9)

	// Moving the pointer moves the symmetry center with it.
	e.UpdateTransformation(10, 10)
	m = tr.matrixAbout(Point{})
	pointsNear(t, m.TransformPoint(Pt(8, 9)), Pt(12, 11), 1e-9)
	e.StopTransformation()
	if len(e.Transformations) != 1 {
		t.Fatalf("inversion should always commit, stack has %d records", len(e.Transformations))
	}
}

func TestSymmetryFlagLifecycle(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformReflection, 0, 0)
	if !e.ShowSymmetry {
		t.Error("reflection gesture should show the symmetry element")
	}
	e.UpdateTransformation(30, 0)
	e.StopTransformation()
	if e.ShowSymmetry {
		t.Error("symmetry display should be cleared when the gesture ends")
	}
}

func TestChainedTransformsUseTransformedCenter(t *testing.T) {
	e := rectElement(t)
	// Move the element, then rotate: the rotation must pivot about the
	// translated center (105, 5), not the original (5, 5).
	e.StartTransformation(TransformTranslation, 0, 0)
	e.UpdateTransformation(100, 0)
	e.StopTransformation()

	e.StartTransformation(TransformRotation, 120, 5)
	e.UpdateTransformation(105, 20)
	e.StopTransformation()

	pointsNear(t, e.Matrix().TransformPoint(Pt(5, 5)), Pt(105, 5), 1e-9)
}

func TestTransformedCenterInvalidation(t *testing.T) {
	e := rectElement(t)
	e.StartTransformation(TransformTranslation, 0, 0)
	e.UpdateTransformation(50, 0)
	e.StopTransformation()

	center := e.transformedCenter(1)
	pointsNear(t, center, Pt(55, 5), floatTolerance)

	// Changing the earlier record must invalidate the cached center.
	e.Transformations[0].SlideX = 20
	e.invalidateTransformedCenters(0)
	pointsNear(t, e.transformedCenter(1), Pt(25, 5), floatTolerance)
}
