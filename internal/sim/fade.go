package sim

// Fade is the opacity of the dark overlay drawn over the background. It
// follows start - elapsed*rate while still positive, then latches at 0. The
// frame that crosses zero keeps its negative value; Alpha floors it.
type Fade struct {
	value float64
	start float64
	rate  float64
}

func NewFade(start, rate float64) *Fade {
	return &Fade{value: start, start: start, rate: rate}
}

// Update is driven by process run time, not track position.
func (f *Fade) Update(elapsed float64) {
	if f.value > 0 {
		f.value = f.start - elapsed*f.rate
	} else {
		f.value = 0
	}
}

func (f *Fade) Value() float64 { return f.value }

func (f *Fade) Alpha() float64 { return max(0, f.value) }
