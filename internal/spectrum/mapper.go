package spectrum

// Mapping remaps [InLow, InHigh] onto [OutLow, OutHigh]. Inputs outside the
// input range extrapolate unless ClampOutput is set.
type Mapping struct {
	InLow, InHigh   float64
	OutLow, OutHigh float64
	ClampOutput     bool
}

func (m Mapping) Apply(v float64) float64 {
	out := m.OutLow + (v-m.InLow)/(m.InHigh-m.InLow)*(m.OutHigh-m.OutLow)
	if !m.ClampOutput {
		return out
	}
	lo, hi := m.OutLow, m.OutHigh
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(out, lo), hi)
}

type Params struct {
	Radius   float64
	Velocity float64
}

// Mapper reads two bands of the smoothed spectrum into cloud parameters.
type Mapper struct {
	BandRadius   int
	BandVelocity int
	Radius       Mapping
	Velocity     Mapping
}

func (m Mapper) Map(values []float64) Params {
	return Params{
		Radius:   m.Radius.Apply(values[m.BandRadius]),
		Velocity: m.Velocity.Apply(values[m.BandVelocity]),
	}
}
