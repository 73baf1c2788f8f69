// Package label stamps short text captions onto rendered images.
package label

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Padding around the caption block, in pixels.
const Padding = 4

var face = basicfont.Face7x13

// lineHeight is the advance between baselines.
func lineHeight() int {
	return face.Metrics().Height.Ceil()
}

// Size returns the pixel size of the caption block for lines, padding
// included. Empty lines are skipped.
func Size(lines []string) image.Point {
	w, n := 0, 0
	for _, l := range lines {
		if l == "" {
			continue
		}
		n++
		if adv := font.MeasureString(face, l).Ceil(); adv > w {
			w = adv
		}
	}
	if n == 0 {
		return image.Point{}
	}
	return image.Pt(w+2*Padding, n*lineHeight()+2*Padding)
}

// Draw paints lines onto dst in fg over a bg box anchored at the top-left
// corner of dst's bounds, and returns the box. Nothing is drawn when every
// line is empty.
func Draw(dst draw.Image, lines []string, fg, bg color.Color) image.Rectangle {
	size := Size(lines)
	if size == (image.Point{}) {
		return image.Rectangle{}
	}
	origin := dst.Bounds().Min
	box := image.Rectangle{Min: origin, Max: origin.Add(size)}.Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	y := origin.Y + Padding + ascent
	for _, l := range lines {
		if l == "" {
			continue
		}
		d.Dot = fixed.P(origin.X+Padding, y)
		d.DrawString(l)
		y += lineHeight()
	}
	return box
}
