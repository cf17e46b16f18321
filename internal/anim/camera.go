package anim

import (
	"math"

	"github.com/litescript/ls-exoplanets/internal/astro"
)

// CameraStep is the progress added per tick; a flight takes 50 ticks.
const CameraStep = 0.02

// Camera interpolates between a start and target pose.
type Camera struct {
	Position astro.Vec3
	LookAt   astro.Vec3

	fromPos, fromLook astro.Vec3
	toPos, toLook     astro.Vec3
	progress          float64
}

// NewCamera returns a camera at rest at pos looking at target.
func NewCamera(pos, target astro.Vec3) Camera {
	return Camera{
		Position: pos, LookAt: target,
		fromPos: pos, fromLook: target,
		toPos: pos, toLook: target,
		progress: 1,
	}
}

// Focus starts a flight to pos looking at target. The flight starts from
// wherever the camera currently is, including mid-flight.
func (c Camera) Focus(pos, target astro.Vec3) Camera {
	c.fromPos, c.fromLook = c.Position, c.LookAt
	c.toPos, c.toLook = pos, target
	c.progress = 0
	return c
}

// Step advances the flight by one tick. Once progress reaches 1 the camera
// sits exactly on the target and further steps do nothing.
func (c Camera) Step() Camera {
	if c.progress >= 1 {
		return c
	}
	c.progress += CameraStep
	if c.progress >= 1-1e-9 {
		c.progress = 1
		c.Position, c.LookAt = c.toPos, c.toLook
		return c
	}
	c.Position = c.fromPos.Lerp(c.toPos, c.progress)
	c.LookAt = c.fromLook.Lerp(c.toLook, c.progress)
	return c
}

// Progress reports flight completion in [0,1].
func (c Camera) Progress() float64 { return c.progress }

// Moving reports whether a flight is in progress.
func (c Camera) Moving() bool { return c.progress < 1 }

// Target returns the pose the camera is flying to.
func (c Camera) Target() (pos, lookAt astro.Vec3) { return c.toPos, c.toLook }

// Idle orbit parameters for the unselected universe view.
const (
	IdleRadius = 1100.0
	IdleHeight = 420.0
	IdleSpeed  = 0.05 // radians per second
)

// IdleOrbit returns the eye position circling the origin at time elapsed.
func IdleOrbit(elapsed float64) astro.Vec3 {
	a := elapsed * IdleSpeed
	return astro.Vec3{
		X: IdleRadius * math.Cos(a),
		Y: IdleHeight,
		Z: IdleRadius * math.Sin(a),
	}
}

// FocusPose returns the eye position used to inspect an object at p: a
// short distance out from the origin side, slightly above.
func FocusPose(p astro.Vec3) astro.Vec3 {
	out := astro.Vec3{X: p.X, Z: p.Z}.Normalized()
	if out.Norm() == 0 {
		out = astro.Vec3{Z: 1}
	}
	return p.Add(out.Scale(60)).Add(astro.Vec3{Y: 25})
}
