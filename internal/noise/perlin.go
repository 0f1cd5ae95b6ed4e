package noise

import (
	"github.com/aquilax/go-perlin"
)

const (
	alpha   = 2.0
	beta    = 2.0
	octaves = 2
)

// Perlin wraps seeded 1D gradient noise and rescales it to [-1, 1].
type Perlin struct {
	gen  *perlin.Perlin
	norm float64
}

func NewPerlin(seed int64) *Perlin {
	// Each octave of gradient noise peaks at 0.5 and is damped by alpha.
	peak, weight := 0.0, 0.5
	for i := 0; i < octaves; i++ {
		peak += weight
		weight /= alpha
	}
	return &Perlin{
		gen:  perlin.NewPerlin(alpha, beta, octaves, seed),
		norm: 1 / peak,
	}
}

// Signed returns noise in [-1, 1], continuous in x and fixed for a seed.
func (p *Perlin) Signed(x float64) float64 {
	v := p.gen.Noise1D(x) * p.norm
	return min(max(v, -1), 1)
}
