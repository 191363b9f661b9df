package components

import (
	"fmt"
	"math/rand/v2"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	particleMinDuration = 10
	particleMaxDuration = 30
	particleDrift       = 100
)

var particleColors = []string{"bg-emerald-400", "bg-green-400", "bg-teal-400", "bg-lime-400"}

// Particle is one decorative dot drifting behind the page.
type Particle struct {
	Left, Top float64 // percent of the viewport
	DX, DY    float64 // drift in px
	Duration  float64 // seconds per cycle
	Color     string
}

// NewParticles lays out n particles. The layout carries no meaning; rng only
// makes it reproducible.
func NewParticles(rng *rand.Rand, n int) []Particle {
	particles := make([]Particle, 0, max(n, 0))
	for i := range max(n, 0) {
		particles = append(particles, Particle{
			Left:     rng.Float64() * 100,
			Top:      rng.Float64() * 100,
			DX:       (rng.Float64()*2 - 1) * particleDrift,
			DY:       (rng.Float64()*2 - 1) * particleDrift,
			Duration: particleMinDuration + rng.Float64()*(particleMaxDuration-particleMinDuration),
			Color:    particleColors[i%len(particleColors)],
		})
	}
	return particles
}

func (p Particle) style() string {
	return fmt.Sprintf("left:%.2f%%;top:%.2f%%;--dx:%.1fpx;--dy:%.1fpx;animation-duration:%.1fs",
		p.Left, p.Top, p.DX, p.DY, p.Duration)
}

// Background renders the particle field and the two large floating shapes.
func Background(particles []Particle) g.Node {
	return Div(
		Class("fixed inset-0 -z-10 overflow-hidden pointer-events-none"),
		g.Attr("aria-hidden", "true"),
		g.Group(g.Map(particles, func(p Particle) g.Node {
			return Div(
				Class("particle absolute w-2 h-2 rounded-full opacity-30 "+p.Color),
				g.Attr("data-particle", ""),
				Style(p.style()),
			)
		})),
		Div(
			Class("floating-shape absolute top-1/4 left-1/4 w-64 h-64 rounded-full bg-emerald-300/20 blur-3xl"),
			Style("animation-duration:20s"),
		),
		Div(
			Class("floating-shape absolute bottom-1/4 right-1/4 w-80 h-80 rounded-full bg-teal-300/20 blur-3xl"),
			Style("animation-duration:25s;animation-direction:reverse"),
		),
	)
}
