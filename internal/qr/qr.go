package qr

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Style is a visual skin drawn over the encoded module matrix. It never
// changes the encoded payload, only how each dark module is painted.
type Style string

const (
	StyleSquares Style = "squares"
	StyleDots    Style = "dots"
	StyleRounded Style = "rounded"
)

const (
	MinSize     = 100
	MaxSize     = 400
	DefaultSize = 250

	// Brand orange, the default the generator screen starts with.
	DefaultForeground = "#FF5A1F"
)

// Options configure one render. Background is fixed white and the
// margin is the encoder's quiet zone; neither is configurable.
type Options struct {
	URL        string
	Foreground string // RGB hex, "#RRGGBB"
	Size       int    // pixels, clamped to [MinSize, MaxSize]
	Style      Style
}

func (o Options) normalized() Options {
	if o.Foreground == "" {
		o.Foreground = DefaultForeground
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Size < MinSize {
		o.Size = MinSize
	}
	if o.Size > MaxSize {
		o.Size = MaxSize
	}
	if o.Style == "" {
		o.Style = StyleSquares
	}
	return o
}

// Render encodes the URL and paints it as a Size x Size bitmap. The
// result is deterministic: the same options always produce identical
// pixels. An encode failure (URL beyond the symbol capacity, bad color)
// returns an error and no image; callers keep whatever they rendered
// last.
func Render(opts Options) (image.Image, error) {
	opts = opts.normalized()

	fg, err := parseHexColor(opts.Foreground)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(opts.URL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}

	return paint(code.Bitmap(), fg, opts.Size, opts.Style), nil
}

// WritePNG renders the options and writes the bitmap as a PNG stream.
func WritePNG(w io.Writer, opts Options) error {
	img, err := Render(opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// FileName builds the download name for a menu's QR image:
// qrmenu-qr-code-<slugified menu name>.png
func FileName(menuName string) string {
	slug := strings.ToLower(strings.TrimSpace(menuName))
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "menu"
	}
	return "qrmenu-qr-code-" + slug + ".png"
}

func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// paint scales the module grid (quiet zone included) onto a white
// size x size canvas, drawing each dark module in the requested style.
func paint(grid [][]bool, fg color.RGBA, size int, style Style) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, white)
		}
	}

	n := len(grid)
	if n == 0 {
		return img
	}
	cell := float64(size) / float64(n)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !grid[row][col] {
				continue
			}
			x0 := int(math.Round(float64(col) * cell))
			y0 := int(math.Round(float64(row) * cell))
			x1 := int(math.Round(float64(col+1) * cell))
			y1 := int(math.Round(float64(row+1) * cell))
			paintModule(img, fg, x0, y0, x1, y1, style)
		}
	}
	return img
}

func paintModule(img *image.RGBA, fg color.RGBA, x0, y0, x1, y1 int, style Style) {
	w := float64(x1 - x0)
	h := float64(y1 - y0)
	cx := float64(x0) + w/2
	cy := float64(y0) + h/2

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5

			switch style {
			case StyleDots:
				r := math.Min(w, h) / 2
				if (px-cx)*(px-cx)+(py-cy)*(py-cy) > r*r {
					continue
				}
			case StyleRounded:
				r := math.Min(w, h) / 4
				if !insideRoundedRect(px, py, float64(x0), float64(y0), float64(x1), float64(y1), r) {
					continue
				}
			}
			img.SetRGBA(x, y, fg)
		}
	}
}

func insideRoundedRect(px, py, x0, y0, x1, y1, r float64) bool {
	// Inside the straight spans
	if px >= x0+r && px <= x1-r {
		return true
	}
	if py >= y0+r && py <= y1-r {
		return true
	}
	// Corner discs
	corners := [4][2]float64{
		{x0 + r, y0 + r},
		{x1 - r, y0 + r},
		{x0 + r, y1 - r},
		{x1 - r, y1 - r},
	}
	for _, c := range corners {
		dx := px - c[0]
		dy := py - c[1]
		if dx*dx+dy*dy <= r*r {
			return true
		}
	}
	return false
}
