package gosketch

import (
	"image"
	"image/color"
	"testing"
)

// finishedElement builds an element from final points, bypassing the
// pointer protocol.
func finishedElement(t *testing.T, shape ShapeKind, points ...Point) *Element {
	t.Helper()
	e := NewElement(shape, DefaultStyle())
	e.Points = points
	return e
}

func pixelAt(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func isWhite(c color.RGBA) bool {
	return c.R == 255 && c.G == 255 && c.B == 255
}

func TestContainsDefiningPoints(t *testing.T) {
	rect := finishedElement(t, ShapeRectangle, Pt(20, 20), Pt(80, 60))
	circle := finishedElement(t, ShapeEllipse, Pt(50, 50), Pt(60, 50))
	line := finishedElement(t, ShapeLine, Pt(10, 10), Pt(90, 50))

	tri := finishedElement(t, ShapePolygon, Pt(10, 10), Pt(90, 10), Pt(50, 70))
	tri.Style.Filled = true

	cases := []struct {
		name string
		e    *Element
		p    Point
	}{
		{"rectangle first corner", rect, Pt(20, 20)},
		{"rectangle second corner", rect, Pt(80, 60)},
		{"circle center", circle, Pt(50, 50)},
		{"circle radius point", circle, Pt(60, 50)},
		{"line midpoint", line, Pt(50, 30)},
		{"filled polygon centroid", tri, tri.OriginalCenter()},
	}
	for _, tc := range cases {
		if !tc.e.Contains(tc.p.X, tc.p.Y) {
			t.Errorf("%s: (%g, %g) not contained", tc.name, tc.p.X, tc.p.Y)
		}
	}
}

func TestContainsMissesFarPoint(t *testing.T) {
	rect := finishedElement(t, ShapeRectangle, Pt(20, 20), Pt(80, 60))
	if rect.Contains(300, 300) {
		t.Error("far point reported as contained")
	}
}

func TestContainsInteriorOnlyWhenFilled(t *testing.T) {
	rect := finishedElement(t, ShapeRectangle, Pt(0, 0), Pt(100, 100))
	if rect.Contains(50, 50) {
		t.Error("outline-only rectangle must not contain its deep interior")
	}
	rect.Style.Filled = true
	if !rect.Contains(50, 50) {
		t.Error("filled rectangle must contain its interior")
	}
}

func TestContainsRespectsTransformStack(t *testing.T) {
	rect := finishedElement(t, ShapeRectangle, Pt(0, 0), Pt(10, 10))
	rect.Transformations = []*Transformation{
		{Kind: TransformTranslation, ScaleX: 1, ScaleY: 1, SlideX: 100, SlideY: 100},
	}
	if !rect.Contains(105, 105) {
		t.Error("translated rectangle missing at its new position")
	}
	if rect.Contains(5, 5) {
		t.Error("translated rectangle still hit at its raw position")
	}
}

func TestContainsTextGlyphs(t *testing.T) {
	e := finishedElement(t, ShapeText, Pt(10, 10), Pt(110, 40))
	e.Text.Content = "Hi"
	if e.Contains(500, 500) {
		t.Error("point far outside the text box reported as contained")
	}

	e.Text.Content = ""
	if e.Contains(11, 11) {
		t.Error("empty text must not be hittable")
	}
}

func TestRenderStrokePaintsEdge(t *testing.T) {
	e := finishedElement(t, ShapeRectangle, Pt(10, 10), Pt(50, 50))
	e.Style.LineWidth = 3

	r := NewRenderer(&RenderOptions{Width: 100, Height: 100})
	r.RenderElement(e)

	if isWhite(pixelAt(t, r.Image(), 30, 10)) {
		t.Error("top edge not stroked")
	}
	if !isWhite(pixelAt(t, r.Image(), 30, 30)) {
		t.Error("interior of an outline-only rectangle was painted")
	}
	if !isWhite(pixelAt(t, r.Image(), 90, 90)) {
		t.Error("canvas painted outside the element")
	}
}

func TestRenderFillPaintsInterior(t *testing.T) {
	e := finishedElement(t, ShapePolygon, Pt(10, 10), Pt(90, 10), Pt(50, 70))
	e.Style.Filled = true
	e.Style.FillColor = ColorRed

	r := NewRenderer(&RenderOptions{Width: 100, Height: 100})
	r.RenderElement(e)

	c := pixelAt(t, r.Image(), 50, 30)
	if c.R != 255 || c.G == 255 {
		t.Errorf("centroid pixel = %+v, want red fill", c)
	}
}

func TestRenderEraserPaintsBackground(t *testing.T) {
	ink := finishedElement(t, ShapeRectangle, Pt(20, 20), Pt(60, 60))
	ink.Style.Filled = true

	eraser := finishedElement(t, ShapeRectangle, Pt(20, 20), Pt(60, 60))
	eraser.Style.Filled = true
	eraser.Style.Eraser = true

	r := NewRenderer(&RenderOptions{Width: 100, Height: 100})
	r.RenderElement(ink)
	if isWhite(pixelAt(t, r.Image(), 40, 40)) {
		t.Fatal("ink rectangle did not paint")
	}
	r.RenderElement(eraser)
	if !isWhite(pixelAt(t, r.Image(), 40, 40)) {
		t.Error("eraser did not restore the background")
	}
}

func TestRenderKeepsSubPixelDashRuns(t *testing.T) {
	e := finishedElement(t, ShapeLine, Pt(10, 50), Pt(190, 50))
	e.Style.LineWidth = 2
	e.Style.LineCap = LineCapButt
	e.Style.Dashes = []float64{0.5, 6}

	r := NewRenderer(&RenderOptions{Width: 200, Height: 100})
	r.RenderElement(e)

	// Pattern period 6.5px starting at x=10: ink near [10, 10.5], gap
	// through [10.5, 16.5].
	if isWhite(pixelAt(t, r.Image(), 10, 50)) {
		t.Error("dash run not painted")
	}
	if !isWhite(pixelAt(t, r.Image(), 13, 50)) {
		t.Error("dash gap painted, sub-pixel pattern was dropped")
	}
}

func TestRenderTransformedElement(t *testing.T) {
	e := finishedElement(t, ShapeRectangle, Pt(0, 0), Pt(20, 20))
	e.Transformations = []*Transformation{
		{Kind: TransformTranslation, ScaleX: 1, ScaleY: 1, SlideX: 50, SlideY: 50},
	}

	r := NewRenderer(&RenderOptions{Width: 100, Height: 100})
	r.RenderElement(e)

	if isWhite(pixelAt(t, r.Image(), 60, 50)) {
		t.Error("translated edge not stroked")
	}
	if !isWhite(pixelAt(t, r.Image(), 10, 0)) {
		t.Error("raw position stroked despite translation")
	}
}

func TestRenderScaleThickensStroke(t *testing.T) {
	e := finishedElement(t, ShapeLine, Pt(10, 50), Pt(90, 50))
	e.Style.LineWidth = 2
	e.Transformations = []*Transformation{
		{Kind: TransformScale, ScaleX: 1, ScaleY: 1, Angle: 0},
	}
	e.Transformations[0].ScaleX = 3
	e.Transformations[0].ScaleY = 3

	r := NewRenderer(&RenderOptions{Width: 300, Height: 300})
	r.RenderElement(e)

	// Scale factor 3 pivots about (50, 50), so the line stays at y=50
	// and the stroke grows to 6 pixels.
	if isWhite(pixelAt(t, r.Image(), 150, 48)) {
		t.Error("scaled stroke thinner than expected")
	}
}

func TestRenderTextProducesInk(t *testing.T) {
	e := finishedElement(t, ShapeText, Pt(10, 10), Pt(110, 40))
	e.Text.Content = "Hello"

	r := NewRenderer(&RenderOptions{Width: 200, Height: 100})
	r.RenderElement(e)

	inked := false
	for y := 0; y < 100 && !inked; y++ {
		for x := 0; x < 200; x++ {
			if !isWhite(pixelAt(t, r.Image(), x, y)) {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("text element rendered no pixels")
	}
}

func TestRendererBackgroundColor(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	r := NewRenderer(&RenderOptions{Width: 10, Height: 10, BackgroundColor: &bg})
	if got := pixelAt(t, r.Image(), 5, 5); got != bg {
		t.Errorf("background pixel = %+v, want %+v", got, bg)
	}
}

func TestRenderSkipsUnfinishedElements(t *testing.T) {
	e := finishedElement(t, ShapeRectangle, Pt(10, 10))
	r := NewRenderer(&RenderOptions{Width: 50, Height: 50})
	r.RenderElement(e)
	if !isWhite(pixelAt(t, r.Image(), 10, 10)) {
		t.Error("single-point rectangle should render nothing")
	}
}
