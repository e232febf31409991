package gosketch

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Record is the persisted form of one element, exchanged with the
// persistence collaborator as JSON.
type Record struct {
	Shape            int               `json:"shape"`
	Color            string            `json:"color"`
	Line             *LineRecord       `json:"line,omitempty"`
	Dash             *DashRecord       `json:"dash,omitempty"`
	Fill             bool              `json:"fill,omitempty"`
	FillRule         string            `json:"fillRule,omitempty"`
	Eraser           bool              `json:"eraser,omitempty"`
	Transformations  []*Transformation `json:"transformations,omitempty"`
	Text             string            `json:"text,omitempty"`
	LineIndex        int               `json:"lineIndex,omitempty"`
	TextRightAligned bool              `json:"textRightAligned,omitempty"`
	Font             *FontRecord       `json:"font,omitempty"`
	Points           [][2]float64      `json:"points"`

	// Transform is the legacy single combined transform of old records.
	// It is upgraded into the transformation list on intake and never
	// written back.
	Transform *legacyTransform `json:"transform,omitempty"`
}

// LineRecord carries the stroke settings of a record.
type LineRecord struct {
	LineCap   string  `json:"lineCap,omitempty"`
	LineJoin  string  `json:"lineJoin,omitempty"`
	LineWidth float64 `json:"lineWidth"`
}

// DashRecord carries the dash settings of a record. The pattern is
// inactive unless both run lengths are positive.
type DashRecord struct {
	Active bool       `json:"active"`
	Array  [2]float64 `json:"array"`
	Offset float64    `json:"offset,omitempty"`
}

// FontRecord carries the font descriptor of a text record. Legacy
// records encode the weight as 0/1 instead of 400/700.
type FontRecord struct {
	Family  string `json:"family"`
	Weight  int    `json:"weight"`
	Style   string `json:"style,omitempty"`
	Stretch string `json:"stretch,omitempty"`
	Variant string `json:"variant,omitempty"`
}

type legacyTransform struct {
	Center     [2]float64 `json:"center"`
	Angle      float64    `json:"angle"`
	StartAngle float64    `json:"startAngle"`
	Ratio      float64    `json:"ratio"`
}

// ToRecord exports the element as a persistable record. Point
// coordinates are rounded to 2 decimal places.
func (e *Element) ToRecord() *Record {
	rec := &Record{
		Shape: int(e.Shape),
		Color: e.Style.StrokeColor.ARGB,
		Line: &LineRecord{
			LineCap:   string(e.Style.LineCap),
			LineJoin:  string(e.Style.LineJoin),
			LineWidth: e.Style.LineWidth,
		},
		Fill:            e.Style.Filled,
		Eraser:          e.Style.Eraser,
		Transformations: e.Transformations,
		LineIndex:       e.LineIndex,
	}
	if e.Style.FillRule != "" {
		rec.FillRule = string(e.Style.FillRule)
	}
	if e.Style.DashActive() {
		rec.Dash = &DashRecord{
			Active: true,
			Array:  [2]float64{e.Style.Dashes[0], e.Style.Dashes[1]},
			Offset: e.Style.DashOffset,
		}
	}
	if e.Text != nil {
		rec.Text = e.Text.Content
		rec.TextRightAligned = e.Text.RightAlign
		rec.Font = &FontRecord{
			Family:  e.Text.FontFamily,
			Weight:  e.Text.Weight,
			Stretch: e.Text.Stretch,
			Variant: e.Text.Variant,
		}
		if e.Text.Italic {
			rec.Font.Style = "italic"
		}
	}
	rec.Points = make([][2]float64, len(e.Points))
	for i, p := range e.Points {
		rec.Points[i] = [2]float64{round2(p.X), round2(p.Y)}
	}
	return rec
}

// FromRecord constructs an element from a persisted record, applying the
// backward-compatibility upgrades: a missing fill rule defaults to
// winding, a missing transformation list to empty, legacy 0/1 font
// weights are remapped to 400/700, and a legacy combined transform is
// translated into an equivalent Rotation record (plus a synthesized
// ellipse ratio point) and dropped.
func FromRecord(rec *Record) (*Element, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil record")
	}
	if rec.Shape < int(ShapeFreehand) || rec.Shape > int(ShapePolyline) {
		return nil, fmt.Errorf("unknown shape code %d", rec.Shape)
	}

	style := DefaultStyle()
	style.StrokeColor = NewColor(rec.Color)
	style.FillColor = style.StrokeColor
	style.Filled = rec.Fill
	style.Eraser = rec.Eraser
	if rec.FillRule == string(FillRuleEvenOdd) {
		style.FillRule = FillRuleEvenOdd
	} else {
		style.FillRule = FillRuleWinding
	}
	if rec.Line != nil {
		style.LineWidth = rec.Line.LineWidth
		if rec.Line.LineCap != "" {
			style.LineCap = LineCap(rec.Line.LineCap)
		}
		if rec.Line.LineJoin != "" {
			style.LineJoin = LineJoin(rec.Line.LineJoin)
		}
	}
	if rec.Dash != nil && rec.Dash.Active && rec.Dash.Array[0] > 0 && rec.Dash.Array[1] > 0 {
		style.Dashes = []float64{rec.Dash.Array[0], rec.Dash.Array[1]}
		style.DashOffset = rec.Dash.Offset
	}

	e := NewElement(ShapeKind(rec.Shape), style)
	e.LineIndex = rec.LineIndex
	e.Points = make([]Point, len(rec.Points))
	for i, p := range rec.Points {
		e.Points[i] = Pt(p[0], p[1])
	}
	e.Transformations = rec.Transformations
	if e.Transformations == nil {
		e.Transformations = []*Transformation{}
	}

	if e.Shape == ShapeText {
		e.Text.Content = rec.Text
		e.Text.RightAlign = rec.TextRightAligned
		if rec.Font != nil {
			applyFontRecord(e.Text, rec.Font)
		}
	}

	if rec.Transform != nil {
		upgradeLegacyTransform(e, rec.Transform)
	}
	return e, nil
}

// applyFontRecord copies the font descriptor onto the text attributes,
// ignoring unsupported values per attribute.
func applyFontRecord(t *TextAttributes, f *FontRecord) {
	if f.Family != "" {
		t.FontFamily = f.Family
	}
	switch f.Weight {
	case 0:
		t.Weight = FontWeightNormal
	case 1:
		t.Weight = FontWeightBold
	default:
		if f.Weight >= 100 && f.Weight <= 900 {
			t.Weight = f.Weight
		} else {
			log().Debug("ignoring unsupported font weight", "weight", f.Weight)
		}
	}
	switch f.Style {
	case "italic", "oblique":
		t.Italic = true
	case "", "normal":
		t.Italic = false
	default:
		log().Debug("ignoring unsupported font style", "style", f.Style)
	}
	t.Stretch = f.Stretch
	t.Variant = f.Variant
}

// upgradeLegacyTransform converts the old combined transform into a
// Rotation record. An ellipse with a non-1 ratio additionally gets a
// synthesized third point producing the same radius ratio.
func upgradeLegacyTransform(e *Element, lt *legacyTransform) {
	log().Debug("upgrading legacy transform", "shape", e.Shape,
		"angle", lt.Angle, "startAngle", lt.StartAngle, "ratio", lt.Ratio)
	angle := lt.Angle + lt.StartAngle
	if math.Abs(angle) >= minRotationAngle {
		rot := &Transformation{Kind: TransformRotation, Angle: angle, ScaleX: 1, ScaleY: 1}
		e.Transformations = append(e.Transformations, rot)
	}
	if e.Shape == ShapeEllipse && lt.Ratio != 0 && lt.Ratio != 1 && len(e.Points) == 2 {
		c := e.Points[0]
		r := c.Distance(e.Points[1])
		e.Points = append(e.Points, Pt(c.X, c.Y+r*lt.Ratio))
		e.invalidateCenter()
	}
}

// EncodeRecords writes the elements as a JSON array of records.
func EncodeRecords(w io.Writer, elements []*Element) error {
	recs := make([]*Record, len(elements))
	for i, e := range elements {
		recs[i] = e.ToRecord()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// DecodeRecords reads a JSON array of records and constructs elements
// from it. Malformed records abort the whole decode.
func DecodeRecords(r io.Reader) ([]*Element, error) {
	var recs []*Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	elements := make([]*Element, 0, len(recs))
	for i, rec := range recs {
		e, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		elements = append(elements, e)
	}
	return elements, nil
}
