package cloud

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/spectrum-cloud/internal/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField_SeedsInRange(t *testing.T) {
	f := NewField(200, 1000, rand.New(rand.NewSource(1)), math.Sin)
	require.Equal(t, 200, f.Len())

	same := 0
	for j := 0; j < f.Len(); j++ {
		x, y := f.Phase(j)
		require.GreaterOrEqual(t, x, 0.0)
		require.Less(t, x, 1000.0)
		require.GreaterOrEqual(t, y, 0.0)
		require.Less(t, y, 1000.0)
		if x == y {
			same++
		}
	}
	assert.Zero(t, same, "axes should be seeded independently")
}

func TestField_Advance(t *testing.T) {
	f := NewField(3, 10, rand.New(rand.NewSource(5)), math.Sin)
	x0, y0 := f.Phase(1)

	f.Advance(0.5, 100, 0.1)

	x1, y1 := f.Phase(1)
	assert.InDelta(t, x0+0.05, x1, 1e-12)
	assert.InDelta(t, y0+0.05, y1, 1e-12)
	p := f.Positions()[1]
	assert.InDelta(t, math.Sin(x1)*100, p.X, 1e-9)
	assert.InDelta(t, math.Sin(y1)*100, p.Y, 1e-9)
}

func TestField_ZeroStepKeepsPhase(t *testing.T) {
	f := NewField(4, 10, rand.New(rand.NewSource(9)), math.Sin)
	x0, y0 := f.Phase(2)
	f.Advance(0.3, 500, 0)
	x1, y1 := f.Phase(2)
	require.Equal(t, x0, x1)
	require.Equal(t, y0, y1)
}

func TestField_Deterministic(t *testing.T) {
	run := func() []Vec2 {
		p := noise.NewPerlin(99)
		f := NewField(50, 1000, rand.New(rand.NewSource(123)), p.Signed)
		steps := []struct{ vel, rad, dt float64 }{
			{0.05, 400, 0.016},
			{0.3, 650, 0.1},
			{0.95, 800, 0.033},
			{0.1, 400, 0},
		}
		for _, s := range steps {
			f.Advance(s.vel, s.rad, s.dt)
		}
		return append([]Vec2(nil), f.Positions()...)
	}
	require.Equal(t, run(), run())
}

func TestField_PositionsWithinRadius(t *testing.T) {
	p := noise.NewPerlin(4)
	f := NewField(100, 1000, rand.New(rand.NewSource(4)), p.Signed)
	for i := 0; i < 50; i++ {
		f.Advance(0.5, 800, 0.1)
		for _, pos := range f.Positions() {
			require.LessOrEqual(t, math.Abs(pos.X), 800.0)
			require.LessOrEqual(t, math.Abs(pos.Y), 800.0)
		}
	}
}

func TestNeighbors(t *testing.T) {
	points := []Vec2{
		{0, 0},
		{39.9, 0},
		{0, 40}, // exactly on the threshold: excluded
		{100, 100},
		{110, 110},
	}
	got := Neighbors(nil, points, 40)
	require.Equal(t, []Pair{{0, 1}, {3, 4}}, got)
}

func TestNeighbors_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	points := make([]Vec2, 150)
	for i := range points {
		points[i] = Vec2{rng.Float64()*400 - 200, rng.Float64()*400 - 200}
	}

	pairs := Neighbors(nil, points, 40)
	require.NotEmpty(t, pairs)

	seen := make(map[Pair]bool)
	for _, p := range pairs {
		require.Less(t, p.J, p.K, "pair must be ordered and never self")
		require.False(t, seen[p], "duplicate pair %v", p)
		seen[p] = true
	}
	for j := range points {
		for k := range points {
			if j == k {
				continue
			}
			near := math.Hypot(points[j].X-points[k].X, points[j].Y-points[k].Y) < 40
			key := Pair{J: min(j, k), K: max(j, k)}
			assert.Equal(t, near, seen[key], "pair %d-%d", j, k)
		}
	}
}

func TestNeighbors_ReusesBuffer(t *testing.T) {
	buf := make([]Pair, 0, 8)
	points := []Vec2{{0, 0}, {1, 1}, {2, 2}}
	got := Neighbors(buf[:0], points, 5)
	require.Len(t, got, 3)
	require.Equal(t, 8, cap(got))
}
