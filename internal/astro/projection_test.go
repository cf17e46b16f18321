package astro

import (
	"math"
	"testing"
)

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := (Vec3{X: 1}).Cross(Vec3{Y: 1}); got != (Vec3{Z: 1}) {
		t.Errorf("Cross = %v, want +Z", got)
	}
	if got := a.Lerp(b, 0.5); got != (Vec3{2.5, 3.5, 4.5}) {
		t.Errorf("Lerp = %v", got)
	}
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("zero Normalized = %v", got)
	}
	if n := (Vec3{3, 4, 0}).Normalized().Norm(); math.Abs(n-1) > 1e-12 {
		t.Errorf("Normalized norm = %v", n)
	}
}

func TestLookAt_Orthonormal(t *testing.T) {
	eyes := []Vec3{
		{0, 0, 10},
		{100, 50, -30},
		{0, 10, 0}, // straight down
	}
	for _, eye := range eyes {
		b := LookAt(eye, Vec3{})
		for name, v := range map[string]Vec3{"forward": b.Forward, "right": b.Right, "up": b.Up} {
			if math.Abs(v.Norm()-1) > 1e-9 {
				t.Errorf("eye %v: %s not unit: %v", eye, name, v.Norm())
			}
		}
		if math.Abs(b.Forward.Dot(b.Right)) > 1e-9 || math.Abs(b.Forward.Dot(b.Up)) > 1e-9 {
			t.Errorf("eye %v: basis not orthogonal", eye)
		}
	}
}

func TestProject_TargetIsCenter(t *testing.T) {
	vp := DefaultViewport(100, 40)
	eye := Vec3{0, 50, 400}
	target := Vec3{10, 0, -20}

	p := Project(target, eye, target, vp)
	if !p.Visible {
		t.Fatal("target should be visible")
	}
	if p.X != 50 || p.Y != 20 {
		t.Errorf("target projected to (%d,%d), want (50,20)", p.X, p.Y)
	}
}

func TestProject_Orientation(t *testing.T) {
	vp := DefaultViewport(100, 40)
	eye := Vec3{0, 0, 100}
	target := Vec3{}

	right := Project(Vec3{X: 10}, eye, target, vp)
	if right.X <= 50 {
		t.Errorf("+X point should be right of center, got x=%d", right.X)
	}
	up := Project(Vec3{Y: 10}, eye, target, vp)
	if up.Y >= 20 {
		t.Errorf("+Y point should be above center, got y=%d", up.Y)
	}
}

func TestProject_Culling(t *testing.T) {
	vp := DefaultViewport(80, 24)
	eye := Vec3{0, 0, 100}

	behind := Project(Vec3{0, 0, 200}, eye, Vec3{}, vp)
	if behind.Visible {
		t.Error("point behind camera should not be visible")
	}

	far := Project(Vec3{0, 0, -10000}, eye, Vec3{}, vp)
	if far.Visible {
		t.Error("point beyond far plane should not be visible")
	}

	offscreen := Project(Vec3{X: 1000}, eye, Vec3{}, vp)
	if offscreen.Visible {
		t.Error("point far outside FOV should not be visible")
	}

	if p := Project(Vec3{}, eye, Vec3{}, Viewport{}); p.Visible {
		t.Error("zero viewport should never be visible")
	}
}

func TestProject_NearerIsLarger(t *testing.T) {
	vp := DefaultViewport(80, 24)
	eye := Vec3{0, 0, 100}
	near := Project(Vec3{0, 0, 50}, eye, Vec3{}, vp)
	far := Project(Vec3{0, 0, -50}, eye, Vec3{}, vp)
	if near.Scale <= far.Scale {
		t.Errorf("near scale %v should exceed far scale %v", near.Scale, far.Scale)
	}
}
