// Package anim holds the pure per-tick step functions for the universe
// render loop: planet spin and bob, starfield drift and twinkle, and the
// camera fly-to.
package anim

import (
	"math"
	"time"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30

// Clock tracks animation time across ticks.
type Clock struct {
	Elapsed float64 // seconds since start
	Frame   int
}

// Advance moves the clock forward by dt seconds.
func (c Clock) Advance(dt float64) Clock {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	return Clock{Elapsed: c.Elapsed + dt, Frame: c.Frame + 1}
}

// FrameInterval converts a frame rate to a tick interval.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// PlanetState is the per-planet animation state.
type PlanetState struct {
	Rotation float64 // radians
	Bob      float64 // vertical offset in scene units

	Spin     float64 // radians per second
	BobAmp   float64
	BobFreq  float64 // radians per second
	BobPhase float64
}

// NewPlanetState derives a planet's spin and bob parameters from its
// index so neighbouring planets move out of step.
func NewPlanetState(index int) PlanetState {
	f := float64(index)
	return PlanetState{
		Spin:     0.4 + math.Mod(f*0.37, 0.8),
		BobAmp:   2 + math.Mod(f*1.3, 3),
		BobFreq:  0.6 + math.Mod(f*0.21, 0.6),
		BobPhase: math.Mod(f*0.9, 2*math.Pi),
	}
}

// StepPlanet advances a planet by dt seconds at absolute time elapsed.
func StepPlanet(p PlanetState, elapsed, dt float64) PlanetState {
	p.Rotation = math.Mod(p.Rotation+p.Spin*dt, 2*math.Pi)
	p.Bob = p.BobAmp * math.Sin(elapsed*p.BobFreq+p.BobPhase)
	return p
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
