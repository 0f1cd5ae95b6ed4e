package spectrum

import (
	"errors"
	"fmt"
)

var ErrSpectrumLength = errors.New("spectrum length mismatch")

// Smoother keeps one falling-peak envelope per band: values rise instantly to
// a louder measurement and decay geometrically otherwise.
type Smoother struct {
	values  []float64
	decay   float64
	ceiling float64
}

// NewSmoother allocates a zeroed buffer of the given band count. A ceiling of
// zero disables the upper cap.
func NewSmoother(bands int, decay, ceiling float64) *Smoother {
	return &Smoother{
		values:  make([]float64, bands),
		decay:   decay,
		ceiling: ceiling,
	}
}

// Update folds one raw frame into the buffer. A frame of the wrong length is
// rejected before anything is touched.
func (s *Smoother) Update(raw []float64) error {
	if len(raw) != len(s.values) {
		return fmt.Errorf("%w: got %d bands, want %d", ErrSpectrumLength, len(raw), len(s.values))
	}
	for i, v := range raw {
		s.values[i] *= s.decay
		s.values[i] = max(s.values[i], v)
		if s.ceiling > 0 && s.values[i] > s.ceiling {
			s.values[i] = s.ceiling
		}
	}
	return nil
}

// Values exposes the live buffer. Callers must not modify it.
func (s *Smoother) Values() []float64 { return s.values }

func (s *Smoother) Band(i int) float64 { return s.values[i] }

func (s *Smoother) Len() int { return len(s.values) }
