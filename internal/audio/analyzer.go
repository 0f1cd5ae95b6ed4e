package audio

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Analyzer turns the tap's latest samples into a fixed number of magnitude
// bands. The FFT frame is twice the band count, so band i is FFT bin i.
type Analyzer struct {
	tap    *Tap
	gain   float64
	window []float64
	frame  []float64
	out    []float64
}

func NewAnalyzer(tap *Tap, bands int, gain float64) *Analyzer {
	size := 2 * bands
	return &Analyzer{
		tap:    tap,
		gain:   gain,
		window: window.Hann(size),
		frame:  make([]float64, size),
		out:    make([]float64, bands),
	}
}

// FrameSize is the number of samples read per analysis.
func (a *Analyzer) FrameSize() int { return len(a.frame) }

// Spectrum returns the current band magnitudes. The slice is reused on every
// call.
func (a *Analyzer) Spectrum() []float64 {
	a.tap.Latest(a.frame)
	for i, w := range a.window {
		a.frame[i] *= w
	}

	coeffs := fft.FFTReal(a.frame)
	scale := 2 * a.gain / float64(len(a.frame))
	for i := range a.out {
		a.out[i] = cmplx.Abs(coeffs[i]) * scale
	}
	return a.out
}

// Silence is a spectrum source that never hears anything. It stands in for a
// track when the visualizer runs without audio.
type Silence struct {
	out []float64
}

func NewSilence(bands int) *Silence {
	return &Silence{out: make([]float64, bands)}
}

func (s *Silence) Spectrum() []float64 { return s.out }
