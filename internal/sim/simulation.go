package sim

import (
	"math/rand"

	"github.com/iburimskiy/spectrum-cloud/internal/cloud"
	"github.com/iburimskiy/spectrum-cloud/internal/config"
	"github.com/iburimskiy/spectrum-cloud/internal/noise"
	"github.com/iburimskiy/spectrum-cloud/internal/spectrum"
)

// Simulation owns all per-frame state: the smoothed spectrum, the mapped
// parameters, the particle phases and the proximity edges. The host loop
// calls Advance (or Tick) once per frame and reads a Snapshot afterwards.
type Simulation struct {
	smoother  *spectrum.Smoother
	mapper    spectrum.Mapper
	field     *cloud.Field
	clock     *Clock
	fade      *Fade
	params    spectrum.Params
	edges     []cloud.Pair
	proximity float64
	maxDelta  float64
	elapsed   float64
	frames    int
}

// Snapshot is the read-only view handed to renderers. Its slices alias the
// simulation's buffers and stay valid until the next Advance.
type Snapshot struct {
	Spectrum     []float64
	BandRadius   int
	BandVelocity int
	Params       spectrum.Params
	Positions    []cloud.Vec2
	Edges        []cloud.Pair
	Fade         float64
	Elapsed      float64
	Frame        int
}

func New(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	perlin := noise.NewPerlin(cfg.NoiseSeed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := &Simulation{
		smoother: spectrum.NewSmoother(cfg.Bands, cfg.Decay, cfg.Ceiling),
		mapper: spectrum.Mapper{
			BandRadius:   cfg.BandRadius,
			BandVelocity: cfg.BandVelocity,
			Radius:       mappingFrom(cfg.Radius),
			Velocity:     mappingFrom(cfg.Velocity),
		},
		field:     cloud.NewField(cfg.Particles, cfg.PhaseRange, rng, perlin.Signed),
		clock:     NewClock(cfg.MaxDelta),
		fade:      NewFade(cfg.Fade.Start, cfg.Fade.Rate),
		proximity: cfg.Proximity,
		maxDelta:  cfg.MaxDelta,
	}
	s.params = s.mapper.Map(s.smoother.Values())
	return s, nil
}

func mappingFrom(m config.Mapping) spectrum.Mapping {
	return spectrum.Mapping{
		InLow:       m.InLow,
		InHigh:      m.InHigh,
		OutLow:      m.OutLow,
		OutHigh:     m.OutHigh,
		ClampOutput: m.Clamp,
	}
}

// Advance runs one frame of the pipeline: smooth, map, move, connect. dt is
// bounded to [0, max_delta] before use. A raw frame of the wrong length fails
// the whole step and leaves the state untouched.
func (s *Simulation) Advance(dt float64, raw []float64) error {
	if err := s.smoother.Update(raw); err != nil {
		return err
	}
	dt = ClampDelta(dt, s.maxDelta)

	s.params = s.mapper.Map(s.smoother.Values())
	s.field.Advance(s.params.Velocity, s.params.Radius, dt)
	s.edges = cloud.Neighbors(s.edges[:0], s.field.Positions(), s.proximity)
	s.frames++
	return nil
}

// Tick advances using the frame clock, then updates the overlay fade. now is
// seconds since the process started.
func (s *Simulation) Tick(now float64, raw []float64) error {
	dt := s.clock.Tick(now)
	if err := s.Advance(dt, raw); err != nil {
		return err
	}
	s.elapsed = now
	s.fade.Update(now)
	return nil
}

func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Spectrum:     s.smoother.Values(),
		BandRadius:   s.mapper.BandRadius,
		BandVelocity: s.mapper.BandVelocity,
		Params:       s.params,
		Positions:    s.field.Positions(),
		Edges:        s.edges,
		Fade:         s.fade.Alpha(),
		Elapsed:      s.elapsed,
		Frame:        s.frames,
	}
}

func (s *Simulation) Bands() int { return s.smoother.Len() }
