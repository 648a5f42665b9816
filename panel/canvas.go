package panel

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/iw2rmb/inkwell/editor"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Options size the canvas and its faces. Zero values take the panel defaults.
type Options struct {
	Width  int
	Height int
	// BodySize is the editor text size in points (at 72 DPI, so pixels).
	BodySize   float64
	TitleSize  float64
	StatusSize float64
	// CursorWidth is the width of the insertion bar in pixels.
	CursorWidth int
}

// DefaultOptions matches the 400x300 panel.
func DefaultOptions() Options {
	return Options{
		Width:       400,
		Height:      300,
		BodySize:    20,
		TitleSize:   24,
		StatusSize:  14,
		CursorWidth: 2,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.BodySize <= 0 {
		o.BodySize = def.BodySize
	}
	if o.TitleSize <= 0 {
		o.TitleSize = def.TitleSize
	}
	if o.StatusSize <= 0 {
		o.StatusSize = def.StatusSize
	}
	if o.CursorWidth <= 0 {
		o.CursorWidth = def.CursorWidth
	}
	return o
}

// Canvas implements editor.Canvas in pixels.
type Canvas struct {
	img    *image.Gray
	frame  *image.Gray
	faces  map[editor.Face]font.Face
	cursor int
	driver Driver

	full    int
	partial int
}

var _ editor.Canvas = (*Canvas)(nil)

// NewCanvas returns a white canvas that commits to driver.
func NewCanvas(opts Options, driver Driver) *Canvas {
	opts = opts.withDefaults()
	bounds := image.Rect(0, 0, opts.Width, opts.Height)
	c := &Canvas{
		img:    image.NewGray(bounds),
		frame:  image.NewGray(bounds),
		cursor: opts.CursorWidth,
		driver: driver,
		faces: map[editor.Face]font.Face{
			editor.FaceBody:   newFace(goregular.TTF, opts.BodySize),
			editor.FaceTitle:  newFace(gobold.TTF, opts.TitleSize),
			editor.FaceStatus: newFace(goregular.TTF, opts.StatusSize),
		},
	}
	c.Clear(bounds)
	return c
}

// newFace falls back to the fixed 7x13 face when the font cannot be loaded.
func newFace(ttf []byte, size float64) font.Face {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func (c *Canvas) face(f editor.Face) font.Face {
	if face, ok := c.faces[f]; ok {
		return face
	}
	return c.faces[editor.FaceBody]
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// LineHeight is the body face line height in pixels.
func (c *Canvas) LineHeight() int {
	return c.face(editor.FaceBody).Metrics().Height.Ceil()
}

// MeasureWidth returns the advance of text in whole pixels, rounded.
func (c *Canvas) MeasureWidth(text string, f editor.Face) int {
	if text == "" {
		return 0
	}
	adv := font.MeasureString(c.face(f), text)
	return max(0, adv.Round())
}

func (c *Canvas) Clear(r image.Rectangle) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.White, image.Point{}, draw.Src)
}

// DrawText draws text with its line box at (x, y).
func (c *Canvas) DrawText(x, y int, text string, f editor.Face) {
	if text == "" {
		return
	}
	face := c.face(f)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func (c *Canvas) DrawCursor(x, y, height int) {
	r := image.Rect(x, y, x+c.cursor, y+height)
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.Black, image.Point{}, draw.Src)
}

// Commit thresholds the drawing into a black and white frame and sends it
// to the driver.
func (c *Canvas) Commit(full bool) error {
	threshold(c.frame, c.img)
	if full {
		c.full++
	} else {
		c.partial++
	}
	if c.driver == nil {
		return nil
	}
	if full {
		return c.driver.Full(c.frame)
	}
	return c.driver.Partial(c.frame)
}

// Frame is the last committed black and white frame.
func (c *Canvas) Frame() *image.Gray { return c.frame }

// Commits reports how many full and partial refreshes were committed.
func (c *Canvas) Commits() (full, partial int) { return c.full, c.partial }

// threshold writes src into dst as pure black and white. Antialiased edges
// darker than mid-gray become ink.
func threshold(dst, src *image.Gray) {
	for i, v := range src.Pix {
		if v < 0x80 {
			dst.Pix[i] = 0
		} else {
			dst.Pix[i] = 0xff
		}
	}
}

// Ink reports whether the committed frame has ink at (x, y).
func (c *Canvas) Ink(x, y int) bool {
	return c.frame.GrayAt(x, y) == color.Gray{Y: 0}
}
