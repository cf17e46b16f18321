package astro

import (
	"math"
)

// Viewport describes the canvas a scene is projected onto.
type Viewport struct {
	Width  int     // canvas columns
	Height int     // canvas rows
	FOVDeg float64 // vertical field of view in degrees

	// CellAspect is the height/width ratio of one terminal cell.
	// Terminal cells are roughly twice as tall as they are wide.
	CellAspect float64

	Near float64 // points closer than this are culled
	Far  float64 // points farther than this are culled
}

// DefaultViewport returns a viewport with the defaults used by the universe view.
func DefaultViewport(width, height int) Viewport {
	return Viewport{
		Width:      width,
		Height:     height,
		FOVDeg:     60,
		CellAspect: 2.0,
		Near:       1,
		Far:        5000,
	}
}

// ProjectedPoint is a scene point mapped to canvas cells.
type ProjectedPoint struct {
	X       int     // canvas column
	Y       int     // canvas row
	Depth   float64 // distance along the view axis
	Scale   float64 // world units to cells at this depth
	Visible bool
}

// Basis is an orthonormal camera frame.
type Basis struct {
	Forward Vec3
	Right   Vec3
	Up      Vec3
}

// LookAt builds a camera basis looking from eye toward target with +Y as
// the world up direction. A degenerate view (eye on target, or looking
// straight up or down) falls back to looking along -Z.
func LookAt(eye, target Vec3) Basis {
	fwd := target.Sub(eye).Normalized()
	if fwd.Norm() == 0 {
		fwd = Vec3{Z: -1}
	}
	worldUp := Vec3{Y: 1}
	right := fwd.Cross(worldUp).Normalized()
	if right.Norm() == 0 {
		right = Vec3{X: 1}
	}
	up := right.Cross(fwd)
	return Basis{Forward: fwd, Right: right, Up: up}
}

// Project maps a world point to canvas coordinates for a camera at eye
// looking at target.
func Project(p, eye, target Vec3, vp Viewport) ProjectedPoint {
	return ProjectWithBasis(p, eye, LookAt(eye, target), vp)
}

// ProjectWithBasis is Project with a precomputed camera basis, for callers
// projecting many points per frame.
func ProjectWithBasis(p, eye Vec3, b Basis, vp Viewport) ProjectedPoint {
	if vp.Width <= 0 || vp.Height <= 0 {
		return ProjectedPoint{}
	}

	rel := p.Sub(eye)
	depth := rel.Dot(b.Forward)
	if depth < vp.Near || depth > vp.Far {
		return ProjectedPoint{Depth: depth}
	}

	aspect := vp.CellAspect
	if aspect <= 0 {
		aspect = 1
	}

	// Focal length in rows for the vertical FOV.
	halfFOV := degToRad(vp.FOVDeg) / 2
	focal := float64(vp.Height) / 2 / math.Tan(halfFOV)

	sx := rel.Dot(b.Right) / depth * focal * aspect
	sy := rel.Dot(b.Up) / depth * focal

	x := int(math.Round(float64(vp.Width)/2 + sx))
	y := int(math.Round(float64(vp.Height)/2 - sy))

	visible := x >= 0 && x < vp.Width && y >= 0 && y < vp.Height
	return ProjectedPoint{
		X:       x,
		Y:       y,
		Depth:   depth,
		Scale:   focal / depth,
		Visible: visible,
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
