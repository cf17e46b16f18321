package ui

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-exoplanets/internal/anim"
	"github.com/litescript/ls-exoplanets/internal/astro"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

const (
	// planetWorldScale converts display radius to scene units.
	planetWorldScale = 4.0

	// pickRadius is how far from a planet's centre a click still hits, in cells.
	pickRadius = 2

	glyphSelected = '◆'
)

// UniverseModel animates and draws the planet spiral and starfield.
type UniverseModel struct {
	width  int
	height int

	objects  []scene.Object
	planets  []anim.PlanetState
	stars    []anim.StarState
	bounds   anim.Bounds
	camera   anim.Camera
	clock    anim.Clock
	dt       float64
	selected string
}

// NewUniverseModel creates a universe with the given starfield, stepping
// fps times per second.
func NewUniverseModel(stars []anim.StarState, fps int) UniverseModel {
	return UniverseModel{
		stars:  stars,
		bounds: anim.DefaultBounds(),
		camera: anim.NewCamera(anim.IdleOrbit(0), astro.Vec3{}),
		dt:     anim.FrameInterval(fps).Seconds(),
	}
}

// SetSize updates the viewport size.
func (m UniverseModel) SetSize(width, height int) UniverseModel {
	m.width = width
	m.height = height
	return m
}

// SetObjects installs the scene. Animation state is kept for objects that
// keep their index.
func (m UniverseModel) SetObjects(objects []scene.Object) UniverseModel {
	m.objects = objects
	if len(m.planets) != len(objects) {
		planets := make([]anim.PlanetState, len(objects))
		copy(planets, m.planets)
		for i := len(m.planets); i < len(objects); i++ {
			planets[i] = anim.NewPlanetState(i)
		}
		m.planets = planets
	}
	if m.selected != "" && scene.IndexOf(objects, m.selected) < 0 {
		m = m.SetSelection("")
	}
	return m
}

// SetSelection flies the camera to the selected object, or back out to
// the idle orbit when id is empty.
func (m UniverseModel) SetSelection(id string) UniverseModel {
	if id == m.selected {
		return m
	}
	m.selected = id
	if o, ok := scene.Lookup(m.objects, id); ok {
		m.camera = m.camera.Focus(anim.FocusPose(o.Position), o.Position)
		return m
	}
	flight := 1 / anim.CameraStep * m.dt
	m.camera = m.camera.Focus(anim.IdleOrbit(m.clock.Elapsed+flight), astro.Vec3{})
	return m
}

// Selected returns the selected object id.
func (m UniverseModel) Selected() string {
	return m.selected
}

// Step advances every planet, star and the camera by one frame.
func (m UniverseModel) Step() UniverseModel {
	m.clock = m.clock.Advance(m.dt)
	e := m.clock.Elapsed

	planets := make([]anim.PlanetState, len(m.planets))
	for i, p := range m.planets {
		planets[i] = anim.StepPlanet(p, e, m.dt)
	}
	m.planets = planets

	stars := make([]anim.StarState, len(m.stars))
	for i, s := range m.stars {
		stars[i] = anim.StepStar(s, e, m.dt, m.bounds)
	}
	m.stars = stars

	if m.selected == "" && !m.camera.Moving() {
		m.camera = anim.NewCamera(anim.IdleOrbit(e), astro.Vec3{})
	} else {
		m.camera = m.camera.Step()
	}
	return m
}

// Elapsed returns the animation time in seconds.
func (m UniverseModel) Elapsed() float64 {
	return m.clock.Elapsed
}

// Rotation returns the current spin of object i.
func (m UniverseModel) Rotation(i int) float64 {
	if i < 0 || i >= len(m.planets) {
		return 0
	}
	return m.planets[i].Rotation
}

// placedPlanet is a projected object.
type placedPlanet struct {
	index  int
	x, y   int
	depth  float64
	radius float64 // rows
}

func (m UniverseModel) viewport(width, height int) astro.Viewport {
	return astro.DefaultViewport(width, height)
}

// place projects every visible planet, farthest first.
func (m UniverseModel) place(width, height int) []placedPlanet {
	vp := m.viewport(width, height)
	eye := m.camera.Position
	basis := astro.LookAt(eye, m.camera.LookAt)

	var placed []placedPlanet
	for i, o := range m.objects {
		pos := o.Position
		if i < len(m.planets) {
			pos.Y += m.planets[i].Bob
		}
		p := astro.ProjectWithBasis(pos, eye, basis, vp)
		if !p.Visible {
			continue
		}
		placed = append(placed, placedPlanet{
			index:  i,
			x:      p.X,
			y:      p.Y,
			depth:  p.Depth,
			radius: o.Radius * planetWorldScale * p.Scale,
		})
	}
	sort.SliceStable(placed, func(a, b int) bool {
		return placed[a].depth > placed[b].depth
	})
	return placed
}

// PickAt returns the nearest object within pickRadius of the canvas cell
// (x, y). Nearer objects win ties.
func (m UniverseModel) PickAt(x, y int) (string, bool) {
	w, h := m.width, m.height
	best, bestDist := -1, math.MaxFloat64
	for _, p := range m.place(w, h) {
		dx := float64(p.x-x) / 2
		dy := float64(p.y - y)
		d := math.Hypot(dx, dy)
		if d <= math.Max(pickRadius, p.radius) && d <= bestDist {
			best, bestDist = p.index, d
		}
	}
	if best < 0 {
		return "", false
	}
	return m.objects[best].ID, true
}

// drawStars paints the starfield.
func (m UniverseModel) drawStars(c *canvas) {
	vp := m.viewport(c.width, c.height)
	eye := m.camera.Position
	basis := astro.LookAt(eye, m.camera.LookAt)
	for _, s := range m.stars {
		p := astro.ProjectWithBasis(s.Position, eye, basis, vp)
		if !p.Visible {
			continue
		}
		fade := 1 - p.Depth/vp.Far
		b := s.Twinkle * (0.4 + 0.6*fade)
		c.set(p.X, p.Y, anim.StarGlyph(b), lipgloss.Color(anim.StarHex(b)))
	}
}

// View renders the universe canvas at the model size.
func (m UniverseModel) View() string {
	return m.render(m.width, m.height).String()
}

func (m UniverseModel) render(width, height int) *canvas {
	c := newCanvas(width, height)
	m.drawStars(c)

	aspect := m.viewport(width, height).CellAspect
	for _, p := range m.place(width, height) {
		o := m.objects[p.index]
		rot := m.Rotation(p.index)
		drawDisc(c, p.x, p.y, p.radius, aspect, o, rot)

		switch {
		case o.ID == m.selected:
			if p.radius < 0.75 {
				c.set(p.x, p.y, glyphSelected, lipgloss.Color(colorAccent))
			}
			m.drawLabel(c, p, o.Name, colorAccent)
		case o.Discovered && p.radius >= 0.5:
			m.drawLabel(c, p, o.Name, colorMuted)
		}
	}
	return c
}

// drawLabel writes name to the right of a placed planet.
func (m UniverseModel) drawLabel(c *canvas, p placedPlanet, name string, color string) {
	x := p.x + int(math.Ceil(p.radius*2)) + 2
	if x+len([]rune(name)) > c.width {
		x = p.x - int(math.Ceil(p.radius*2)) - 2 - len([]rune(name))
	}
	c.text(x, p.y, name, lipgloss.Color(color))
}
