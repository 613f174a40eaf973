package render

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// intensity clips channels below 1.0 so the byte conversion never
// wraps
var intensity = vmath.Interval{Min: 0.000, Max: 0.999}

// linearToGamma applies the gamma-2 transfer: component = sqrt(linear)
func linearToGamma(x float64) float64 {
	if x > 0 {
		return math.Sqrt(x)
	}
	return 0
}

// Encode tone-maps the framebuffer into the packed 8-bit RGB layout
// the PNG encoder consumes: rows top to bottom, three bytes per pixel
func (res Result) Encode() []byte {
	bytes := make([]byte, len(res.Pixels)*3)
	for i, pixel := range res.Pixels {
		r := linearToGamma(pixel.X)
		g := linearToGamma(pixel.Y)
		b := linearToGamma(pixel.Z)

		bytes[3*i+0] = byte(256 * intensity.Clamp(r))
		bytes[3*i+1] = byte(256 * intensity.Clamp(g))
		bytes[3*i+2] = byte(256 * intensity.Clamp(b))
	}
	return bytes
}

// WritePNG encodes the framebuffer as 8-bit RGB PNG
func (res Result) WritePNG(out io.Writer) error {
	packed := res.Encode()

	img := image.NewNRGBA(image.Rect(0, 0, res.Width, res.Height))
	for i := 0; i < len(packed)/3; i++ {
		img.Pix[4*i+0] = packed[3*i+0]
		img.Pix[4*i+1] = packed[3*i+1]
		img.Pix[4*i+2] = packed[3*i+2]
		img.Pix[4*i+3] = 0xff
	}

	return png.Encode(out, img)
}
