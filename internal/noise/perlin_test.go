package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerlin_Range(t *testing.T) {
	p := NewPerlin(7)
	for x := -500.0; x < 5000; x += 0.37 {
		v := p.Signed(x)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestPerlin_Deterministic(t *testing.T) {
	a := NewPerlin(42)
	b := NewPerlin(42)
	c := NewPerlin(43)

	differs := false
	for x := 0.1; x < 200; x += 1.3 {
		require.Equal(t, a.Signed(x), b.Signed(x))
		if a.Signed(x) != c.Signed(x) {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should give different noise")
}

func TestPerlin_Continuous(t *testing.T) {
	p := NewPerlin(1)
	const step = 1e-4
	for x := 0.0; x < 100; x += 0.05 {
		d := math.Abs(p.Signed(x+step) - p.Signed(x))
		// slope is bounded by the gradient magnitude times the octave count
		require.Less(t, d, 10*step, "jump at %v", x)
	}
}

func TestPerlin_NotConstant(t *testing.T) {
	p := NewPerlin(11)
	lo, hi := 1.0, -1.0
	for x := 0.5; x < 1000; x += 0.5 {
		v := p.Signed(x)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	assert.Less(t, lo, -0.2)
	assert.Greater(t, hi, 0.2)
}
