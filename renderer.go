package gosketch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/srwiley/rasterx"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures canvas rendering.
type RenderOptions struct {
	// Width and Height are the canvas size in pixels.
	// Defaults: 960x720.
	Width  int
	Height int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor fills the canvas and substitutes the stroke color
	// of eraser elements. Nil means white.
	BackgroundColor *color.RGBA
	// ShowTextBounds draws the bounding rectangle of text elements.
	ShowTextBounds bool
	// ShowTextCursor draws the edit caret of text elements.
	ShowTextCursor bool
	// FontDirs specifies additional directories to search for
	// TrueType/OpenType fonts. System font directories are always
	// searched automatically.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across
	// multiple renderers. If nil, a new FontCache is created using
	// FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Height:      720,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// Renderer rasterizes elements onto an RGBA canvas.
type Renderer struct {
	img        *image.RGBA
	opts       *RenderOptions
	fonts      *FontCache
	background color.RGBA
}

// NewRenderer creates a renderer with a canvas filled with the
// background color.
func NewRenderer(opts *RenderOptions) *Renderer {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	}
	fonts := opts.FontCache
	if fonts == nil {
		fonts = NewFontCache(opts.FontDirs...)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Renderer{img: img, opts: opts, fonts: fonts, background: bg}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.img
}

// Render rasterizes the elements in order.
func (r *Renderer) Render(elements ...*Element) {
	for _, e := range elements {
		r.RenderElement(e)
	}
}

// RenderElement rasterizes one element, applying its transformation
// stack. Elements without enough points render nothing.
func (r *Renderer) RenderElement(e *Element) {
	if e.Shape == ShapeText {
		r.renderText(e)
	} else {
		r.renderPath(e)
	}
	if sym := e.SymmetryPath(); !sym.IsEmpty() {
		r.strokePath(sym, color.RGBA{R: 128, G: 128, B: 128, A: 255},
			1, LineCapButt, LineJoinMiter, []float64{4, 4}, 0)
	}
}

func (r *Renderer) renderPath(e *Element) {
	raw := e.RawPath()
	if raw.IsEmpty() {
		return
	}
	m := e.Matrix()
	path := raw.Transform(m)

	strokeColor := argbToRGBA(e.Style.StrokeColor)
	fillColor := argbToRGBA(e.Style.FillColor)
	if e.Style.Eraser {
		strokeColor = r.background
		fillColor = r.background
	}

	if e.Style.Filled {
		r.fillPath(path, fillColor, e.Style.FillRule != FillRuleEvenOdd)
	}

	sc := m.AverageScale()
	width := e.Style.LineWidth * sc
	var dashes []float64
	offset := 0.0
	if e.Style.DashActive() {
		dashes = slices.Clone(e.Style.Dashes)
		for i := range dashes {
			dashes[i] *= sc
			// A zero run under a degenerate scale would stall the dasher.
			if dashes[i] < minDashRun {
				dashes[i] = minDashRun
			}
		}
		offset = e.Style.DashOffset * sc
	}
	r.strokePath(path, strokeColor, width, e.Style.LineCap, e.Style.LineJoin, dashes, offset)
}

// Dash runs are clamped to this floor so a near-singular transform
// cannot scale them to zero.
const minDashRun = 0.01

// strokePath rasterizes the outline of an already-transformed path.
func (r *Renderer) strokePath(p *Path, col color.RGBA, width float64, lineCap LineCap, join LineJoin, dashes []float64, dashOffset float64) {
	if p.IsEmpty() || width <= 0 {
		return
	}
	w, h := r.img.Bounds().Dx(), r.img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, r.img, r.img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.SetStroke(floatToFixed(width), floatToFixed(4),
		capFunc(lineCap), nil, nil, joinMode(join), dashes, dashOffset)
	p.AddTo(dasher)
	dasher.SetColor(col)
	dasher.Draw()
	dasher.Clear()
}

// fillPath rasterizes the interior of an already-transformed path.
func (r *Renderer) fillPath(p *Path, col color.RGBA, winding bool) {
	if p.IsEmpty() {
		return
	}
	w, h := r.img.Bounds().Dx(), r.img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, r.img, r.img.Bounds())
	filler := &rasterx.NewDasher(w, h, scanner).Filler
	filler.SetWinding(winding)
	p.AddTo(filler)
	filler.SetColor(col)
	filler.Draw()
	filler.Clear()
}

func capFunc(c LineCap) rasterx.CapFunc {
	switch c {
	case LineCapRound:
		return rasterx.RoundCap
	case LineCapSquare:
		return rasterx.SquareCap
	default:
		return rasterx.ButtCap
	}
}

func joinMode(j LineJoin) rasterx.JoinMode {
	switch j {
	case LineJoinRound:
		return rasterx.Round
	case LineJoinBevel:
		return rasterx.Bevel
	default:
		return rasterx.Miter
	}
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func argbToRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: c.GetRed(),
		G: c.GetGreen(),
		B: c.GetBlue(),
		A: c.GetAlpha(),
	}
}

// textRenderFace returns a render face for the font attributes, falling
// back through the generic sans-serif candidates and finally a fixed
// bitmap face so text always renders.
func textRenderFace(fc *FontCache, t *TextAttributes, size float64) font.Face {
	if face := fc.GetFace(t.FontFamily, size, t.Bold(), t.Italic); face != nil {
		return face
	}
	if face := fc.GetFace("sans-serif", size, t.Bold(), t.Italic); face != nil {
		return face
	}
	log().Warn("no scalable font found, using bitmap fallback", "family", t.FontFamily)
	return basicfont.Face7x13
}

func textMeasureFace(fc *FontCache, t *TextAttributes, size float64) font.Face {
	if face := fc.GetMeasureFace(t.FontFamily, size, t.Bold(), t.Italic); face != nil {
		return face
	}
	if face := fc.GetMeasureFace("sans-serif", size, t.Bold(), t.Italic); face != nil {
		return face
	}
	log().Debug("no scalable font found, measuring with bitmap fallback", "family", t.FontFamily)
	return basicfont.Face7x13
}

// MeasureText computes and caches the pixel width of the element's text
// at its current font size. The markup emitter calls this when the
// cached width is stale.
func (r *Renderer) MeasureText(e *Element) float64 {
	if e.Shape != ShapeText || e.Text == nil {
		return 0
	}
	size := e.FontSize()
	if size <= 0 {
		return 0
	}
	w := fixedToFloat(font.MeasureString(textMeasureFace(r.fonts, e.Text, size), e.Text.Content))
	e.SetTextWidth(w)
	return w
}

// textOrigin returns the user-space top-left corner of the laid-out
// text. Right-aligned text hangs left of its anchor.
func (e *Element) textOrigin(width float64) Point {
	p := e.Points[0]
	if e.Text.RightAlign {
		p.X -= width
	}
	return p
}

func (r *Renderer) renderText(e *Element) {
	if e.Text == nil || len(e.Points) < 2 {
		return
	}
	size := e.FontSize()
	if size <= 0 || e.Text.Content == "" {
		return
	}
	face := textRenderFace(r.fonts, e.Text, size)
	width := r.MeasureText(e)
	origin := e.textOrigin(width)
	m := e.Matrix()

	col := argbToRGBA(e.Text.Color)
	if e.Style.Eraser {
		col = r.background
	}
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)

	if m.IsIdentity() {
		d := font.Drawer{
			Dst:  r.img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.Point26_6{X: floatToFixed(origin.X), Y: floatToFixed(origin.Y + ascent)},
		}
		d.DrawString(e.Text.Content)
	} else {
		r.drawTransformedText(e.Text.Content, face, col, origin, width, size, ascent, m)
	}

	r.renderTextDecorations(e, origin, width, size, m)
}

// drawTransformedText lays the string out on an offscreen image and
// composites it through the element matrix with bilinear filtering.
func (r *Renderer) drawTransformedText(s string, face font.Face, col color.RGBA, origin Point, width, height, ascent float64, m Matrix) {
	descent := height - ascent
	if descent < 0 {
		descent = 0
	}
	w := int(math.Ceil(width)) + 2
	h := int(math.Ceil(ascent+descent)) + 2
	if w <= 2 || h <= 2 {
		return
	}
	off := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  off,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: floatToFixed(ascent)},
	}
	d.DrawString(s)

	full := m.Multiply(Translate(origin.X, origin.Y))
	xdraw.BiLinear.Transform(r.img,
		f64.Aff3{full.A, full.B, full.C, full.D, full.E, full.F},
		off, off.Bounds(), xdraw.Over, nil)
}

// renderTextDecorations draws the optional caret and bounding rectangle
// in user space, transformed like the glyphs.
func (r *Renderer) renderTextDecorations(e *Element, origin Point, width, size float64, m Matrix) {
	if r.opts.ShowTextBounds {
		p := &Path{}
		p.MoveTo(origin)
		p.LineTo(Pt(origin.X+width, origin.Y))
		p.LineTo(Pt(origin.X+width, origin.Y+size))
		p.LineTo(Pt(origin.X, origin.Y+size))
		p.Close()
		r.strokePath(p.Transform(m), color.RGBA{R: 128, G: 128, B: 128, A: 255},
			1, LineCapButt, LineJoinMiter, []float64{2, 2}, 0)
	}
	if r.opts.ShowTextCursor {
		face := textMeasureFace(r.fonts, e.Text, size)
		runes := []rune(e.Text.Content)
		cur := e.Text.Cursor
		if cur < 0 || cur > len(runes) {
			cur = len(runes)
		}
		cx := origin.X + fixedToFloat(font.MeasureString(face, string(runes[:cur])))
		p := &Path{}
		p.MoveTo(Pt(cx, origin.Y))
		p.LineTo(Pt(cx, origin.Y+size))
		r.strokePath(p.Transform(m), argbToRGBA(e.Text.Color),
			1, LineCapButt, LineJoinMiter, nil, 0)
	}
}

// SaveImage writes the canvas to disk in the configured format, creating
// parent directories as needed.
func (r *Renderer) SaveImage(path string) error {
	return saveImage(r.img, path, r.opts)
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, img)
	}
}
