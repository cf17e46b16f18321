package ui

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/litescript/ls-exoplanets/internal/anim"
	"github.com/litescript/ls-exoplanets/internal/astro"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

func testUniverse(t *testing.T, n int) UniverseModel {
	t.Helper()
	objs := scene.Generate(testRecords(n), n, rand.New(rand.NewPCG(1, 2)))
	stars := anim.NewStarfield(50, anim.DefaultBounds(), rand.New(rand.NewPCG(3, 4)))
	return NewUniverseModel(stars, 30).SetSize(100, 30).SetObjects(objs)
}

func TestUniverse_SelectionFliesCamera(t *testing.T) {
	u := testUniverse(t, 8)
	u = u.SetSelection("P3")
	if u.Selected() != "P3" || !u.camera.Moving() {
		t.Fatal("selecting should start a camera flight")
	}

	for i := 0; i < 50; i++ {
		u = u.Step()
	}
	o, _ := scene.Lookup(u.objects, "P3")
	if u.camera.Moving() || u.camera.LookAt != o.Position {
		t.Errorf("camera look-at = %v, want %v", u.camera.LookAt, o.Position)
	}
}

func TestUniverse_IdleOrbitWhenUnselected(t *testing.T) {
	u := testUniverse(t, 4)
	u = u.Step().Step()
	if u.camera.LookAt != (astro.Vec3{}) {
		t.Errorf("idle camera should look at the origin, got %v", u.camera.LookAt)
	}
	if u.camera.Position != anim.IdleOrbit(u.Elapsed()) {
		t.Error("idle camera should ride the idle orbit")
	}
}

func TestUniverse_SelectionOfVanishedObjectCleared(t *testing.T) {
	u := testUniverse(t, 6).SetSelection("P5")
	objs := scene.Generate(testRecords(3), 3, rand.New(rand.NewPCG(1, 2)))
	u = u.SetObjects(objs)
	if u.Selected() != "" {
		t.Errorf("selection %q should be cleared", u.Selected())
	}
	if len(u.planets) != 3 {
		t.Errorf("planet states = %d, want 3", len(u.planets))
	}
}

func TestUniverse_PickAt(t *testing.T) {
	objs := []scene.Object{{ID: "A", Name: "A", Radius: 1, Texture: scene.TextureFor("A", 300)}}
	u := NewUniverseModel(nil, 30).SetSize(80, 24).SetObjects(objs)
	u.camera = anim.NewCamera(astro.Vec3{Z: 300}, astro.Vec3{})

	if id, ok := u.PickAt(40, 12); !ok || id != "A" {
		t.Errorf("PickAt(center) = %q, %v", id, ok)
	}
	if _, ok := u.PickAt(0, 0); ok {
		t.Error("PickAt(corner) should miss")
	}
}

func TestUniverse_ViewSize(t *testing.T) {
	u := testUniverse(t, 10)
	for i := 0; i < 3; i++ {
		u = u.Step()
	}
	lines := strings.Split(stripANSI(u.View()), "\n")
	if len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 100 {
			t.Errorf("line %d has %d cells, want 100", i, n)
		}
	}
}

func TestDetail_ViewSections(t *testing.T) {
	recs := testRecords(3)
	objs := scene.Generate(recs, 3, rand.New(rand.NewPCG(1, 2)))
	m := exo.DeriveMetrics(recs[2], rand.New(rand.NewPCG(5, 6)))

	d := NewDetailModel().SetSize(120, 40)
	if !strings.Contains(d.View(), "Nothing selected") {
		t.Error("empty detail should say nothing is selected")
	}
	d = d.Enter(objs[2], recs[2], m).Step(1, 0.1)

	view := stripANSI(d.View())
	for _, want := range []string{"Kepler-22 b", "Atmosphere", "Habitability", "Water", "History", "Orbit", "illustrative"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	got := []rune(stripANSI(sparkline([]float64{100, 200, 300}, 9, "#ffffff")))
	if len(got) != 9 {
		t.Fatalf("sparkline width = %d", len(got))
	}
	if got[0] != sparklineBlocks[0] || got[8] != sparklineBlocks[len(sparklineBlocks)-1] {
		t.Errorf("sparkline endpoints = %q", string(got))
	}

	flat := []rune(stripANSI(sparkline([]float64{5, 5}, 4, "#ffffff")))
	for _, r := range flat {
		if r != flat[0] {
			t.Error("flat series should draw one height")
		}
	}
	if sparkline(nil, 4, "#fff") != "" {
		t.Error("empty series should draw nothing")
	}
}

func TestGradientColor(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, c := range []string{
		gradientColor(0, 0, 10, 4),
		gradientColor(9, 3, 10, 4),
		gradientColor(5, 1, 1, 1),
	} {
		if !hex.MatchString(c) {
			t.Errorf("gradientColor produced %q", c)
		}
	}
	if gradientColor(0, 0, 10, 4) == gradientColor(9, 0, 10, 4) {
		t.Error("gradient ends should differ")
	}
}

func TestCanvas(t *testing.T) {
	c := newCanvas(5, 2)
	c.text(3, 0, "abc", "1")
	c.set(-1, 0, 'x', "1")
	if c.get(3, 0) != 'a' || c.get(4, 0) != 'b' || c.get(5, 0) != 0 {
		t.Error("text should clip at the right edge")
	}
	lines := strings.Split(stripANSI(c.String()), "\n")
	if len(lines) != 2 || lines[0] != "   ab" {
		t.Errorf("canvas = %q", lines)
	}
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}
