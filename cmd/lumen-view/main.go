// Command lumen-view displays a rendered image inside the terminal
// using half-block glyphs, two pixels per character cell.
//
// Usage:
//
//	lumen-view <image.png>
//
// Quit with q, Escape or Ctrl-C.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gdamore/tcell/v2"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen-view <image.png>")
		os.Exit(2)
	}

	img, err := loadImage(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	for {
		draw(screen, img)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// draw fits the image to the terminal and paints it with '▀' cells:
// the foreground carries the upper pixel, the background the lower one
func draw(screen tcell.Screen, img image.Image) {
	screen.Clear()

	cols, rows := screen.Size()
	bounds := img.Bounds()
	iw, ih := bounds.Dx(), bounds.Dy()

	// Each cell covers 1x2 pixels; fit while preserving aspect
	scaleX := float64(iw) / float64(cols)
	scaleY := float64(ih) / float64(rows*2)
	scale := scaleX
	if scaleY > scale {
		scale = scaleY
	}
	if scale < 1 {
		scale = 1
	}

	outW := int(float64(iw) / scale)
	outH := int(float64(ih) / scale / 2)

	offX := (cols - outW) / 2
	offY := (rows - outH) / 2

	for cy := 0; cy < outH; cy++ {
		for cx := 0; cx < outW; cx++ {
			top := sample(img, bounds, float64(cx)*scale, float64(cy*2)*scale)
			bottom := sample(img, bounds, float64(cx)*scale, float64(cy*2+1)*scale)

			style := tcell.StyleDefault.
				Foreground(top).
				Background(bottom)
			screen.SetContent(offX+cx, offY+cy, '▀', nil, style)
		}
	}

	screen.Show()
}

func sample(img image.Image, bounds image.Rectangle, x, y float64) tcell.Color {
	px := bounds.Min.X + int(x)
	py := bounds.Min.Y + int(y)
	if px >= bounds.Max.X {
		px = bounds.Max.X - 1
	}
	if py >= bounds.Max.Y {
		py = bounds.Max.Y - 1
	}
	r, g, b, _ := img.At(px, py).RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
