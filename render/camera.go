package render

import (
	"math"

	"github.com/lixenwraith/lumen/scene"
	"github.com/lixenwraith/lumen/vmath"
)

// Settings selects the image and sampling quality for one render
type Settings struct {
	ImageWidth      int
	SamplesPerPixel int
	MaxDepth        int
	// Threads is the worker count; 0 means one per CPU
	Threads int
}

// camera is the derived pinhole/thin-lens state shared read-only by
// every worker
type camera struct {
	imageHeight       int
	pixelSamplesScale float64
	center            vmath.Vec3
	pixel00Loc        vmath.Vec3
	pixelDeltaU       vmath.Vec3
	pixelDeltaV       vmath.Vec3
	u, v, w           vmath.Vec3
	defocusDiskU      vmath.Vec3
	defocusDiskV      vmath.Vec3
	defocusAngle      float64
	background        vmath.Vec3
}

func makeCamera(cfg scene.Camera, s Settings) camera {
	var cam camera

	cam.imageHeight = int(float64(s.ImageWidth) / cfg.AspectRatio)
	if cam.imageHeight < 1 {
		cam.imageHeight = 1
	}

	cam.pixelSamplesScale = 1.0 / float64(s.SamplesPerPixel)
	cam.center = cfg.LookFrom
	cam.defocusAngle = cfg.DefocusAngle
	cam.background = cfg.Background

	// Determine viewport dimensions
	theta := vmath.DegreesToRadians(cfg.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * cfg.FocusDist
	viewportWidth := viewportHeight * (float64(s.ImageWidth) / float64(cam.imageHeight))

	// The u,v,w unit basis vectors for the camera frame
	cam.w = cfg.LookFrom.Sub(cfg.LookAt).Unit()
	cam.u = cfg.VUp.Cross(cam.w).Unit()
	cam.v = cam.w.Cross(cam.u)

	// Vectors across the horizontal and down the vertical viewport
	// edges
	viewportU := cam.u.Scale(viewportWidth)
	viewportV := cam.v.Neg().Scale(viewportHeight)

	cam.pixelDeltaU = viewportU.Scale(1 / float64(s.ImageWidth))
	cam.pixelDeltaV = viewportV.Scale(1 / float64(cam.imageHeight))

	// Upper left pixel location
	viewportUpperLeft := cam.center.
		Sub(cam.w.Scale(cfg.FocusDist)).
		Sub(viewportU.Scale(0.5)).
		Sub(viewportV.Scale(0.5))
	cam.pixel00Loc = viewportUpperLeft.Add(cam.pixelDeltaU.Add(cam.pixelDeltaV).Scale(0.5))

	// Defocus disk basis
	defocusRadius := cfg.FocusDist * math.Tan(vmath.DegreesToRadians(cfg.DefocusAngle/2))
	cam.defocusDiskU = cam.u.Scale(defocusRadius)
	cam.defocusDiskV = cam.v.Scale(defocusRadius)

	return cam
}

// sampleSquare jitters within the pixel footprint
func sampleSquare(rng *vmath.Rand) vmath.Vec3 {
	return vmath.V3(rng.Float()-0.5, rng.Float()-0.5, 0)
}

func defocusDiskSample(cam *camera, rng *vmath.Rand) vmath.Vec3 {
	p := rng.InUnitDisk()
	return cam.center.
		Add(cam.defocusDiskU.Scale(p.X)).
		Add(cam.defocusDiskV.Scale(p.Y))
}

// getRay builds a camera ray through a jittered sample around pixel
// (i, j), originating on the defocus disk when the lens has aperture
func getRay(cam *camera, i, j int, rng *vmath.Rand) vmath.Ray {
	offset := sampleSquare(rng)
	pixelSample := cam.pixel00Loc.
		Add(cam.pixelDeltaU.Scale(float64(i) + offset.X)).
		Add(cam.pixelDeltaV.Scale(float64(j) + offset.Y))

	rayOrigin := cam.center
	if cam.defocusAngle > 0 {
		rayOrigin = defocusDiskSample(cam, rng)
	}

	return vmath.Ray{
		Orig: rayOrigin,
		Dir:  pixelSample.Sub(rayOrigin),
		Time: rng.Float(),
	}
}
