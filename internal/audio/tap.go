package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the most recent mono samples into a
// ring buffer, so the analyzer can read what was just played from the frame
// loop while the speaker goroutine keeps streaming.
type Tap struct {
	Source beep.Streamer
	buffer []float64
	next   int
	mu     sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.next] = (samples[i][0] + samples[i][1]) * 0.5
			t.next++
			if t.next >= len(t.buffer) {
				t.next = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Latest fills dst with the last len(dst) samples, oldest first. dst longer
// than the ring is only partly filled; the rest is zeroed.
func (t *Tap) Latest(dst []float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := len(t.buffer)
	n := min(len(dst), size)
	start := t.next - n
	if start < 0 {
		start += size
	}
	for i := 0; i < n; i++ {
		dst[i] = t.buffer[(start+i)%size]
	}
	clear(dst[n:])
}
