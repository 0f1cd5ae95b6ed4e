package sim

import (
	"testing"

	"github.com/iburimskiy/spectrum-cloud/internal/config"
	"github.com/iburimskiy/spectrum-cloud/internal/spectrum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Bands = 4
	cfg.Particles = 30
	cfg.BandRadius = 0
	cfg.BandVelocity = 1
	cfg.Seed = 7
	cfg.NoiseSeed = 11
	return cfg
}

func TestClock_Tick(t *testing.T) {
	c := NewClock(0.1)

	assert.InDelta(t, 0.05, c.Tick(0.05), 1e-12)
	assert.InDelta(t, 0.016, c.Tick(0.066), 1e-12)
	// a five second stall is bounded
	assert.Equal(t, 0.1, c.Tick(5.066))
	// clocks running backwards yield zero
	assert.Equal(t, 0.0, c.Tick(4))
	assert.InDelta(t, 0.02, c.Tick(4.02), 1e-12)
}

func TestClampDelta(t *testing.T) {
	assert.Equal(t, 0.1, ClampDelta(5, 0.1))
	assert.Equal(t, 0.0, ClampDelta(-1, 0.1))
	assert.Equal(t, 0.04, ClampDelta(0.04, 0.1))
}

func TestFade(t *testing.T) {
	f := NewFade(255, 3.5)
	assert.Equal(t, 255.0, f.Alpha())

	f.Update(10)
	assert.InDelta(t, 220, f.Alpha(), 1e-12)

	// crossing zero keeps the negative value for one frame
	f.Update(73)
	assert.InDelta(t, -0.5, f.Value(), 1e-12)
	assert.Equal(t, 0.0, f.Alpha())

	f.Update(74)
	assert.Equal(t, 0.0, f.Value())

	// latched at zero from then on
	f.Update(1)
	assert.Equal(t, 0.0, f.Value())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.BandVelocity = 10
	_, err := New(cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSimulation_EndToEndSpectrum(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)

	require.NoError(t, s.Advance(0.016, []float64{2, 1, 0, 0}))
	require.Equal(t, []float64{2, 1, 0, 0}, s.Snapshot().Spectrum)

	require.NoError(t, s.Advance(0.5, []float64{0, 0, 0, 0}))
	got := s.Snapshot().Spectrum
	want := []float64{1.94, 0.97, 0, 0}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestSimulation_MappedParams(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)

	require.NoError(t, s.Advance(0.016, []float64{2, 0.2, 0, 0}))
	p := s.Snapshot().Params
	assert.InDelta(t, 600, p.Radius, 1e-9)
	assert.InDelta(t, 0.95, p.Velocity, 1e-12)

	require.NoError(t, s.Advance(0.016, []float64{40, 0, 0, 0}))
	assert.Equal(t, 800.0, s.Snapshot().Params.Radius)
}

func TestSimulation_DeltaClamped(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)

	x0, y0 := s.field.Phase(3)
	// band 1 at 0.1 maps to velocity 0.5
	require.NoError(t, s.Advance(5, []float64{0, 0.1, 0, 0}))
	x1, y1 := s.field.Phase(3)
	assert.InDelta(t, 0.05, x1-x0, 1e-9)
	assert.InDelta(t, 0.05, y1-y0, 1e-9)
}

func TestSimulation_LengthMismatch(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)

	x0, _ := s.field.Phase(0)
	err = s.Advance(0.05, make([]float64, 8))
	require.ErrorIs(t, err, spectrum.ErrSpectrumLength)

	x1, _ := s.field.Phase(0)
	assert.Equal(t, x0, x1)
	assert.Zero(t, s.Snapshot().Frame)
}

func TestSimulation_Deterministic(t *testing.T) {
	frames := [][]float64{
		{2.5, 0.03, 0, 1},
		{1.2, 0.09, 0.4, 0},
		{0, 0.2, 0, 0},
		{3, 0, 0, 0},
	}
	dts := []float64{0.016, 0.1, 0.033, 7}

	run := func() Snapshot {
		s, err := New(smallConfig())
		require.NoError(t, err)
		for i, raw := range frames {
			require.NoError(t, s.Advance(dts[i], raw))
		}
		snap := s.Snapshot()
		snap.Positions = append(snap.Positions[:0:0], snap.Positions...)
		snap.Edges = append(snap.Edges[:0:0], snap.Edges...)
		snap.Spectrum = append([]float64(nil), snap.Spectrum...)
		return snap
	}
	require.Equal(t, run(), run())
}

func TestSimulation_EdgesMatchPositions(t *testing.T) {
	cfg := smallConfig()
	cfg.Particles = 120
	cfg.Proximity = 120
	s, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, s.Advance(0.1, []float64{1, 0.05, 0, 0}))
	snap := s.Snapshot()
	require.Len(t, snap.Positions, 120)
	for _, e := range snap.Edges {
		require.Less(t, e.J, e.K)
		a, b := snap.Positions[e.J], snap.Positions[e.K]
		dx, dy := a.X-b.X, a.Y-b.Y
		require.Less(t, dx*dx+dy*dy, 120.0*120.0)
	}
}

func TestSimulation_Tick(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)

	raw := []float64{0, 0, 0, 0}
	require.NoError(t, s.Tick(0.02, raw))
	require.NoError(t, s.Tick(10, raw))

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Frame)
	assert.Equal(t, 10.0, snap.Elapsed)
	assert.InDelta(t, 220, snap.Fade, 1e-9)

	require.ErrorIs(t, s.Tick(10.1, []float64{1}), spectrum.ErrSpectrumLength)
}
