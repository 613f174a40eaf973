// Command lumen renders a scene to a PNG image.
//
// Usage:
//
//	lumen [options] <scene>
//
// The scene is a built-in identifier (see -list) or a path to a .toml
// scene file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/lumen/render"
	"github.com/lixenwraith/lumen/scene"
)

func main() {
	var (
		width   int
		samples int
		depth   int
		threads int
		output  string
		list    bool
	)

	flag.IntVar(&width, "width", 400, "Output image width in pixels")
	flag.IntVar(&samples, "samples", 100, "Samples per pixel")
	flag.IntVar(&depth, "depth", 50, "Maximum ray bounces")
	flag.IntVar(&threads, "threads", 0, "Worker count (0 = one per CPU)")
	flag.StringVar(&output, "output", "out.png", "Output PNG path")
	flag.BoolVar(&list, "list", false, "List built-in scenes and exit")
	flag.Parse()

	if list {
		fmt.Println(strings.Join(scene.Names(), "\n"))
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen [options] <scene>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScenes: %s, or a path to a .toml scene file\n", strings.Join(scene.Names(), ", "))
		os.Exit(2)
	}

	if width < 1 || samples < 1 || depth < 1 || threads < 0 {
		fmt.Fprintln(os.Stderr, "Error: invalid flag value")
		os.Exit(2)
	}

	world, cam, err := scene.ByName(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings := render.Settings{
		ImageWidth:      width,
		SamplesPerPixel: samples,
		MaxDepth:        depth,
		Threads:         threads,
	}

	res := render.Render(world, cam, settings, os.Stderr)

	fmt.Fprintln(os.Stderr, "Writing image...")

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := res.WritePNG(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", output, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "Done.")
}
