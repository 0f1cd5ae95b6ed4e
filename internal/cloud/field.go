package cloud

import "math/rand"

type Vec2 struct {
	X, Y float64
}

// NoiseFunc maps a phase to a value in [-1, 1].
type NoiseFunc func(phase float64) float64

// Field is a fixed population of points whose positions are a pure function
// of their noise phases and the current radius. Phases are the only state.
type Field struct {
	phaseX    []float64
	phaseY    []float64
	positions []Vec2
	noise     NoiseFunc
}

// NewField seeds every phase independently from [0, phaseRange).
func NewField(count int, phaseRange float64, rng *rand.Rand, noise NoiseFunc) *Field {
	f := &Field{
		phaseX:    make([]float64, count),
		phaseY:    make([]float64, count),
		positions: make([]Vec2, count),
		noise:     noise,
	}
	for j := 0; j < count; j++ {
		f.phaseX[j] = rng.Float64() * phaseRange
		f.phaseY[j] = rng.Float64() * phaseRange
	}
	return f
}

// Advance moves both phase axes of every point by velocity*dt and recomputes
// positions at the given radius.
func (f *Field) Advance(velocity, radius, dt float64) {
	step := velocity * dt
	for j := range f.positions {
		f.phaseX[j] += step
		f.phaseY[j] += step
		f.positions[j] = Vec2{
			X: f.noise(f.phaseX[j]) * radius,
			Y: f.noise(f.phaseY[j]) * radius,
		}
	}
}

// Positions exposes the cached positions from the last Advance.
func (f *Field) Positions() []Vec2 { return f.positions }

func (f *Field) Phase(j int) (x, y float64) { return f.phaseX[j], f.phaseY[j] }

func (f *Field) Len() int { return len(f.positions) }
