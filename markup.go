package gosketch

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// MarkupOptions configures SVG export.
type MarkupOptions struct {
	// BackgroundColor substitutes the stroke and fill color of eraser
	// elements. Default: white.
	BackgroundColor Color
	// FontCache is used to remeasure stale text widths. If nil a shared
	// default cache is used.
	FontCache *FontCache
}

// DefaultMarkupOptions returns default export options.
func DefaultMarkupOptions() *MarkupOptions {
	return &MarkupOptions{BackgroundColor: ColorWhite}
}

// Markup serializes the element to an SVG fragment describing the same
// geometry as the rendered path. Elements without enough points produce
// an empty string.
func (e *Element) Markup(opts *MarkupOptions) string {
	if opts == nil {
		opts = DefaultMarkupOptions()
	}
	if !e.Renderable() {
		return ""
	}
	if e.Shape == ShapeText {
		return e.textMarkup(opts)
	}

	var b strings.Builder
	pts := e.Points
	switch e.Shape {
	case ShapeFreehand, ShapePolyline:
		fmt.Fprintf(&b, `<polyline points="%s"`, pointList(pts))
	case ShapePolygon:
		fmt.Fprintf(&b, `<polygon points="%s"`, pointList(pts))
	case ShapeLine:
		switch len(pts) {
		case 2:
			fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s"`,
				num(pts[0].X), num(pts[0].Y), num(pts[1].X), num(pts[1].Y))
		case 3:
			fmt.Fprintf(&b, `<path d="M %s %s C %s %s, %s %s, %s %s"`,
				num(pts[0].X), num(pts[0].Y),
				num(pts[1].X), num(pts[1].Y),
				num(pts[1].X), num(pts[1].Y),
				num(pts[2].X), num(pts[2].Y))
		default:
			fmt.Fprintf(&b, `<path d="M %s %s C %s %s, %s %s, %s %s"`,
				num(pts[0].X), num(pts[0].Y),
				num(pts[1].X), num(pts[1].Y),
				num(pts[2].X), num(pts[2].Y),
				num(pts[3].X), num(pts[3].Y))
		}
	case ShapeEllipse:
		rx, ry := e.EllipseRadii()
		if rx == 0 || ry == 0 {
			return ""
		}
		if rx == ry {
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s"`,
				num(pts[0].X), num(pts[0].Y), num(rx))
		} else {
			fmt.Fprintf(&b, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s"`,
				num(pts[0].X), num(pts[0].Y), num(rx), num(ry))
		}
	case ShapeRectangle:
		x := math.Min(pts[0].X, pts[1].X)
		y := math.Min(pts[0].Y, pts[1].Y)
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s"`,
			num(x), num(y),
			num(math.Abs(pts[1].X-pts[0].X)), num(math.Abs(pts[1].Y-pts[0].Y)))
	default:
		return ""
	}

	e.writeStrokeAttrs(&b, opts)
	e.writeFillAttrs(&b, opts)
	e.writeTransformAttr(&b)
	b.WriteString("/>")
	return b.String()
}

// textMarkup serializes a text element. The cached text width positions
// right-aligned text; it is remeasured when stale.
func (e *Element) textMarkup(opts *MarkupOptions) string {
	size := e.FontSize()
	if e.Text == nil || size <= 0 || e.Text.Content == "" {
		return ""
	}
	width, ok := e.TextWidth()
	if !ok {
		fc := opts.FontCache
		if fc == nil {
			fc = defaultFonts()
		}
		width = fixedToFloat(font.MeasureString(textMeasureFace(fc, e.Text, size), e.Text.Content))
		e.SetTextWidth(width)
	}
	origin := e.textOrigin(width)

	var b strings.Builder
	fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="%s" font-family="%s" dominant-baseline="text-before-edge"`,
		num(origin.X), num(origin.Y), num(size), xmlEscape(e.Text.FontFamily))
	if e.Text.Weight != FontWeightNormal {
		fmt.Fprintf(&b, ` font-weight="%d"`, e.Text.Weight)
	}
	if e.Text.Italic {
		b.WriteString(` font-style="italic"`)
	}
	col := e.Text.Color
	if e.Style.Eraser {
		col = opts.BackgroundColor
	}
	fmt.Fprintf(&b, ` fill="%s"`, col.RGBHex())
	if op := col.Opacity(); op < 1 {
		fmt.Fprintf(&b, ` fill-opacity="%s"`, num(op))
	}
	e.writeTransformAttr(&b)
	fmt.Fprintf(&b, ">%s</text>", xmlEscape(e.Text.Content))
	return b.String()
}

func (e *Element) writeStrokeAttrs(b *strings.Builder, opts *MarkupOptions) {
	col := e.Style.StrokeColor
	if e.Style.Eraser {
		col = opts.BackgroundColor
	}
	fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, col.RGBHex(), num(e.Style.LineWidth))
	if op := col.Opacity(); op < 1 {
		fmt.Fprintf(b, ` stroke-opacity="%s"`, num(op))
	}
	if e.Style.LineCap != "" {
		fmt.Fprintf(b, ` stroke-linecap="%s"`, e.Style.LineCap)
	}
	// A straight 2-point line has no corners to join.
	straightLine := e.Shape == ShapeLine && len(e.Points) == 2
	if e.Style.LineJoin != "" && !straightLine {
		fmt.Fprintf(b, ` stroke-linejoin="%s"`, e.Style.LineJoin)
	}
	if e.Style.DashActive() {
		fmt.Fprintf(b, ` stroke-dasharray="%s %s"`, num(e.Style.Dashes[0]), num(e.Style.Dashes[1]))
		if e.Style.DashOffset != 0 {
			fmt.Fprintf(b, ` stroke-dashoffset="%s"`, num(e.Style.DashOffset))
		}
	}
}

func (e *Element) writeFillAttrs(b *strings.Builder, opts *MarkupOptions) {
	if !e.Style.Filled {
		b.WriteString(` fill="none"`)
		return
	}
	col := e.Style.FillColor
	if e.Style.Eraser {
		col = opts.BackgroundColor
	}
	fmt.Fprintf(b, ` fill="%s"`, col.RGBHex())
	if op := col.Opacity(); op < 1 {
		fmt.Fprintf(b, ` fill-opacity="%s"`, num(op))
	}
	rule := "nonzero"
	if e.Style.FillRule == FillRuleEvenOdd {
		rule = "evenodd"
	}
	fmt.Fprintf(b, ` fill-rule="%s"`, rule)
}

// writeTransformAttr emits the transformation stack as an SVG transform
// list, newest record first. SVG applies list entries left to right, so
// the oldest record acts closest to the raw geometry, matching the
// render path.
func (e *Element) writeTransformAttr(b *strings.Builder) {
	if len(e.Transformations) == 0 {
		return
	}
	var parts []string
	for i := len(e.Transformations) - 1; i >= 0; i-- {
		t := e.Transformations[i]
		c := e.transformedCenter(i)
		switch t.Kind {
		case TransformTranslation:
			parts = append(parts, fmt.Sprintf("translate(%s %s)", num(t.SlideX), num(t.SlideY)))
		case TransformRotation:
			parts = append(parts, fmt.Sprintf("rotate(%s %s %s)", num(Degrees(t.Angle)), num(c.X), num(c.Y)))
		case TransformScale, TransformStretch:
			parts = append(parts, pivotedScale(t, c.X, c.Y))
		case TransformReflection, TransformInversion:
			parts = append(parts, pivotedScale(t, t.SlideX, t.SlideY))
		}
	}
	fmt.Fprintf(b, ` transform="%s"`, strings.Join(parts, " "))
}

// pivotedScale emits translate·rotate·scale·rotate⁻¹·translate⁻¹ about
// the given pivot.
func pivotedScale(t *Transformation, px, py float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "translate(%s %s)", num(px), num(py))
	if t.Angle != 0 {
		fmt.Fprintf(&sb, " rotate(%s)", num(Degrees(t.Angle)))
	}
	fmt.Fprintf(&sb, " scale(%s %s)", num(t.ScaleX), num(t.ScaleY))
	if t.Angle != 0 {
		fmt.Fprintf(&sb, " rotate(%s)", num(Degrees(-t.Angle)))
	}
	fmt.Fprintf(&sb, " translate(%s %s)", num(-px), num(-py))
	return sb.String()
}

// SVGDocument wraps the elements' markup fragments in a complete SVG
// document with a background rectangle.
func SVGDocument(width, height int, opts *MarkupOptions, elements ...*Element) string {
	if opts == nil {
		opts = DefaultMarkupOptions()
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="%s" width="%d" height="%d" viewBox="0 0 %d %d">`,
		svgNamespace, width, height, width, height)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		width, height, opts.BackgroundColor.RGBHex())
	b.WriteString("\n")
	for _, e := range elements {
		if frag := e.Markup(opts); frag != "" {
			b.WriteString(frag)
			b.WriteString("\n")
		}
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// num formats a coordinate rounded to 2 decimal places with no trailing
// zeros.
func num(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

// pointList formats a polyline/polygon points attribute.
func pointList(pts []Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s,%s", num(p.X), num(p.Y))
	}
	return b.String()
}

// xmlEscape escapes special XML characters using the standard library.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
