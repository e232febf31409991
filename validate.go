package gosketch

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the element for structural issues and returns an error
// describing all problems found, or nil if the element is valid. A
// finished element is expected to satisfy the per-shape point minimums;
// in-progress gestures routinely violate them and should not be
// validated until the gesture ends.
func (e *Element) Validate() error {
	var errs []string

	if e.Shape < ShapeFreehand || e.Shape > ShapePolyline {
		errs = append(errs, fmt.Sprintf("unknown shape kind %d", int(e.Shape)))
	}
	if !e.Renderable() {
		errs = append(errs, fmt.Sprintf("%s needs at least %d points, has %d",
			e.Shape, minPoints(e.Shape), len(e.Points)))
	}
	if e.Shape == ShapeLine && len(e.Points) > 4 {
		errs = append(errs, fmt.Sprintf("line has %d points, at most 4 allowed", len(e.Points)))
	}
	if e.Shape == ShapeEllipse && len(e.Points) > 3 {
		errs = append(errs, fmt.Sprintf("ellipse has %d points, at most 3 allowed", len(e.Points)))
	}
	if e.Style.LineWidth < 0 {
		errs = append(errs, "line width is negative")
	}
	if !isValidARGB(e.Style.StrokeColor.ARGB) {
		errs = append(errs, fmt.Sprintf("invalid stroke color %q", e.Style.StrokeColor.ARGB))
	}
	for _, d := range e.Style.Dashes {
		if d < 0 {
			errs = append(errs, "dash run length is negative")
			break
		}
	}
	if e.Shape == ShapeText && e.Text == nil {
		errs = append(errs, "text element has no text attributes")
	}

	for i, t := range e.Transformations {
		prefix := fmt.Sprintf("transformation %d", i)
		if t == nil {
			errs = append(errs, prefix+": record is nil")
			continue
		}
		for _, te := range validateTransformation(t) {
			errs = append(errs, prefix+": "+te)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateTransformation(t *Transformation) []string {
	var errs []string
	if t.Kind < TransformTranslation || t.Kind > TransformInversion {
		errs = append(errs, fmt.Sprintf("unknown kind %d", int(t.Kind)))
		return errs
	}
	switch t.Kind {
	case TransformReflection, TransformInversion:
		if math.Abs(t.ScaleX) != 1 || math.Abs(t.ScaleY) != 1 {
			errs = append(errs, fmt.Sprintf("%s scale must be +-1, got (%v, %v)",
				t.Kind, t.ScaleX, t.ScaleY))
		}
	case TransformScale, TransformStretch:
		if t.ScaleX == 0 || t.ScaleY == 0 {
			errs = append(errs, fmt.Sprintf("%s scale must be nonzero", t.Kind))
		}
	}
	return errs
}

// minPoints returns the minimum point count for a finished element of
// the given shape.
func minPoints(k ShapeKind) int {
	if k == ShapeFreehand {
		return 1
	}
	return 2
}
