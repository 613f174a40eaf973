// Package render drives the path tracer: camera derivation, the
// per-ray bounce loop with deferred attenuation, the parallel scanline
// scheduler, and the tone-mapped handoff to the PNG encoder.
package render

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lumen/scene"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

// Result is the linear framebuffer of a completed render
type Result struct {
	Width, Height int
	Pixels        []vmath.Vec3
}

// Render traces the world with the given camera and settings and
// returns the framebuffer. Progress lines go to progressOut; pass
// io.Discard to silence them
func Render(w *scene.World, cfg scene.Camera, s Settings, progressOut io.Writer) Result {
	cam := makeCamera(cfg, s)
	pixels := make([]vmath.Vec3, s.ImageWidth*cam.imageHeight)

	workers := s.Threads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	prog := newProgress(cam.imageHeight)

	var reporterWG sync.WaitGroup
	reporterWG.Add(1)
	go func() {
		defer reporterWG.Done()
		prog.run(progressOut)
	}()

	start := time.Now()

	// Workers pull scanline indices from one shared counter until the
	// image is exhausted. Rows are disjoint, so the pixel buffer needs
	// no locks
	var tileID atomic.Int32
	var workerWG sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		workerWG.Add(1)
		go func(id int) {
			defer workerWG.Done()
			renderWorker(w, &cam, s, id, &tileID, prog, pixels)
		}(worker)
	}
	workerWG.Wait()

	elapsed := time.Since(start)
	reporterWG.Wait()
	fmt.Fprintf(progressOut, "Render took %v\n", elapsed.Round(time.Millisecond))

	return Result{Width: s.ImageWidth, Height: cam.imageHeight, Pixels: pixels}
}

// renderWorker owns its RNG and scratch buffers for the whole render
func renderWorker(w *scene.World, cam *camera, s Settings, id int, tileID *atomic.Int32, prog *progress, pixels []vmath.Vec3) {
	rng := vmath.NewRand(uint32(id)*0x9e3779b9 + 1)
	buf := newScanlineBuffers(s.SamplesPerPixel, s.MaxDepth)
	noise := texture.SharedPerlin()

	for {
		j := int(tileID.Add(1)) - 1
		if j >= cam.imageHeight {
			return
		}

		scanLine(w, cam, s, j, pixels, buf, noise, rng)

		prog.dec()
	}
}
