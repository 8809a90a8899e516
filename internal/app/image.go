package app

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/muesli/termenv"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageRender is a decoded image turned into terminal cells.
type imageRender struct {
	cells string
	srcW  int
	srcH  int
	cols  int
	rows  int
}

// renderImageCells decodes raw image bytes and renders them as
// half-block cells sized for a maxW x maxH cell budget.
func renderImageCells(data []byte, maxW, maxH int) (*imageRender, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	scaled := scaleToFit(img, maxW, maxH)
	sb := scaled.Bounds()
	rows := sb.Dy() / 2
	if sb.Dy()%2 != 0 {
		rows++
	}

	return &imageRender{
		cells: renderHalfBlocks(scaled),
		srcW:  srcW,
		srcH:  srcH,
		cols:  sb.Dx(),
		rows:  rows,
	}, nil
}

// scaleToFit resizes an image to a terminal cell budget. A cell is
// roughly one pixel wide and, with half blocks, two pixels tall.
// Upscaling is capped at 2x so small images don't turn to mush.
func scaleToFit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()
	if maxW < 4 {
		maxW = 4
	}
	if maxH < 2 {
		maxH = 2
	}

	targetW := maxW
	targetH := maxH * 2

	scaleX := float64(targetW) / float64(origW)
	scaleY := float64(targetH) / float64(origH)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	if scale > 2.0 {
		scale = 2.0
	}

	newW := int(float64(origW) * scale)
	newH := int(float64(origH) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 2 {
		newH = 2
	}
	if newH%2 != 0 {
		newH++
	}

	return resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
}

// renderHalfBlocks draws two vertical pixels per cell with ▀: the top
// pixel is the foreground, the bottom the background. Colors go
// through the detected terminal profile, degrading from true color to
// 256 or 16 colors as needed.
func renderHalfBlocks(img image.Image) string {
	profile := termenv.ColorProfile()
	bounds := img.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteString("\n")
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.At(x, y)
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = img.At(x, y+1)
			}
			b.WriteString(termenv.String("▀").
				Foreground(profile.Color(hexColor(top))).
				Background(profile.Color(hexColor(bottom))).
				String())
		}
	}
	return b.String()
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Cell budgets for the two image surfaces.

func (m Model) previewImageBudget() (int, int) {
	w := m.previewView.Width
	h := m.previewView.Height - 2
	if w <= 0 {
		w = 60
	}
	if h <= 0 {
		h = 20
	}
	return w, h
}

func (m Model) overlayImageBudget() (int, int) {
	w := m.width - 10
	h := m.height - 8
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}
	return w, h
}
