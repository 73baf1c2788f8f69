package fractal

import (
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Pixmap is an RGBA pixel buffer bound to a viewport. It implements Sink,
// translating plane coordinates to pixels with Viewport.ToPixel.
type Pixmap struct {
	view   Viewport
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// Verify at compile time that Pixmap is a Sink and a drawable image.
var (
	_ Sink        = (*Pixmap)(nil)
	_ xdraw.Image = (*Pixmap)(nil)
)

// NewPixmap creates a transparent pixmap covering view.
func NewPixmap(view Viewport) (*Pixmap, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}
	return &Pixmap{
		view:   view,
		width:  view.Width,
		height: view.Height,
		data:   make([]uint8, view.Width*view.Height*4),
	}, nil
}

// Viewport returns the plane region the pixmap covers.
func (p *Pixmap) Viewport() Viewport {
	return p.view
}

// SetViewport rebinds the pixmap to a new plane region and clears it to
// transparent. The pixel size of view is replaced by the pixmap's own.
func (p *Pixmap) SetViewport(view Viewport) error {
	view.Width, view.Height = p.width, p.height
	if err := view.Validate(); err != nil {
		return err
	}
	p.view = view
	p.Reset()
	return nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Plot implements Sink. Points outside the viewport are ignored.
func (p *Pixmap) Plot(re, im float64, c ColorRGB) {
	x, y := p.view.ToPixel(re, im)
	p.SetPixel(x, y, c)
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c ColorRGB) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = 0xff
}

// GetPixel returns the color of a single pixel and whether anything has
// been plotted there.
func (p *Pixmap) GetPixel(x, y int) (ColorRGB, bool) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return ColorRGB{}, false
	}
	i := (y*p.width + x) * 4
	return ColorRGB{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2]}, p.data[i+3] != 0
}

// Clear fills the entire pixmap with an opaque color.
func (p *Pixmap) Clear(c ColorRGB) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = 0xff
	}
}

// Reset makes every pixel transparent again.
func (p *Pixmap) Reset() {
	clear(p.data)
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// Scaled returns the pixmap enlarged by an integer factor with
// nearest-neighbour sampling, which keeps the hard edges of a coarse
// (resolution > 1) render.
func (p *Pixmap) Scaled(factor int) *image.NRGBA {
	if factor < 1 {
		factor = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, p.width*factor, p.height*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), p.ToImage(), p.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Set implements the draw.Image interface, so captions and overlays can be
// drawn straight onto the pixmap.
func (p *Pixmap) Set(x, y int, c color.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := (y*p.width + x) * 4
	p.data[i+0] = n.R
	p.data[i+1] = n.G
	p.data[i+2] = n.B
	p.data[i+3] = n.A
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
