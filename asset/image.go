// Package asset loads texture images as linear-float RGB buffers.
//
// Images decode through the stdlib registry plus the golang.org/x/image
// formats, then convert from 8-bit sRGB to linear floats once at load
// time so samplers never touch gamma space.
package asset

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const floatsPerPixel = 3

// Image is an immutable linear-float RGB buffer. A zero-size image is
// the "missing" placeholder: every tap reads magenta
type Image struct {
	Width, Height int
	// Pix holds Width*Height*3 linear components, rows top to bottom
	Pix []float32
}

var magenta = [floatsPerPixel]float32{1, 0, 1}

// Load hunts for the image file in some likely locations: the
// RTW_IMAGES directory first if set, then the working directory,
// images/, and up to six parent images/ directories. A file that
// cannot be found or decoded warns on stderr and yields the magenta
// placeholder
func Load(filename string) *Image {
	if dir := os.Getenv("RTW_IMAGES"); dir != "" {
		if img, err := loadFile(filepath.Join(dir, filename)); err == nil {
			return img
		}
	}
	if img, err := loadFile(filename); err == nil {
		return img
	}
	prefix := ""
	for i := 0; i <= 6; i++ {
		if img, err := loadFile(filepath.Join(prefix, "images", filename)); err == nil {
			return img
		}
		prefix = prefix + "../"
	}

	fmt.Fprintf(os.Stderr, "ERROR: Could not load image file '%s'.\n", filename)
	return &Image{}
}

func loadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(src), nil
}

// FromImage converts any decoded image to the linear-float layout
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{
		Width:  w,
		Height: h,
		Pix:    make([]float32, w*h*floatsPerPixel),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			out.Pix[i+0] = srgbToLinear(float64(r) / 0xffff)
			out.Pix[i+1] = srgbToLinear(float64(g) / 0xffff)
			out.Pix[i+2] = srgbToLinear(float64(b) / 0xffff)
			i += floatsPerPixel
		}
	}
	return out
}

// srgbToLinear undoes the display gamma the way stb's float loader
// does, with a plain 2.2 power curve
func srgbToLinear(v float64) float32 {
	return float32(math.Pow(v, 2.2))
}

// PixelData returns the linear RGB components of the pixel at x,y,
// clamped to the image bounds. A missing image reads magenta
func (img *Image) PixelData(x, y int) (r, g, b float64) {
	if len(img.Pix) == 0 {
		return float64(magenta[0]), float64(magenta[1]), float64(magenta[2])
	}

	x = clampIndex(x, img.Width)
	y = clampIndex(y, img.Height)

	i := (y*img.Width + x) * floatsPerPixel
	return float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
}

// clampIndex limits x to [0, n)
func clampIndex(x, n int) int {
	if x < 0 {
		return 0
	}
	if x >= n {
		return n - 1
	}
	return x
}

// Missing reports whether the image failed to load
func (img *Image) Missing() bool {
	return len(img.Pix) == 0
}
