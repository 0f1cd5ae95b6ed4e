// Package offline runs the cloud pipeline over a decoded track without a
// window or speaker, at a fixed frame rate, and reports how the mapped
// parameters evolve.
package offline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/faiface/beep"
	"github.com/guptarohit/asciigraph"
	"github.com/iburimskiy/spectrum-cloud/internal/audio"
	"github.com/iburimskiy/spectrum-cloud/internal/config"
	"github.com/iburimskiy/spectrum-cloud/internal/sim"
)

type Options struct {
	FPS     int
	Seconds float64
	Gain    float64
}

type Trace struct {
	FPS      int
	Radius   []float64
	Velocity []float64
	Edges    []float64
	PeakBand []int
}

func (t *Trace) Frames() int { return len(t.Radius) }

// Run pulls SampleRate/FPS samples per frame through a tap and analyzer and
// advances s with a fixed dt of 1/FPS. It stops early when the source ends.
func Run(src beep.Streamer, format beep.Format, s *sim.Simulation, opts Options) (*Trace, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.Seconds <= 0 {
		return nil, fmt.Errorf("seconds must be positive, got %f", opts.Seconds)
	}

	bands := s.Bands()
	tap := audio.NewTap(src, max(config.VisualRingSize, 2*bands))
	analyzer := audio.NewAnalyzer(tap, bands, opts.Gain)

	perFrame := format.SampleRate.N(time.Second / time.Duration(opts.FPS))
	if perFrame <= 0 {
		return nil, errors.New("sample rate too low for the requested fps")
	}
	buf := make([][2]float64, perFrame)
	dt := 1 / float64(opts.FPS)
	frames := int(opts.Seconds * float64(opts.FPS))

	trace := &Trace{FPS: opts.FPS}
	for i := 0; i < frames; i++ {
		if _, ok := tap.Stream(buf); !ok {
			break
		}
		raw := analyzer.Spectrum()
		if err := s.Advance(dt, raw); err != nil {
			return trace, err
		}

		snap := s.Snapshot()
		trace.Radius = append(trace.Radius, snap.Params.Radius)
		trace.Velocity = append(trace.Velocity, snap.Params.Velocity)
		trace.Edges = append(trace.Edges, float64(len(snap.Edges)))
		trace.PeakBand = append(trace.PeakBand, peak(snap.Spectrum))
	}
	return trace, tap.Err()
}

func peak(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render formats a trace as a summary box followed by one plot per series.
func Render(t *Trace) string {
	if t.Frames() == 0 {
		return "no frames analyzed\n"
	}

	summary := strings.Join([]string{
		titleStyle.Render("spectrum-cloud analysis"),
		labelStyle.Render("frames   ") + fmt.Sprintf("%d (%.1fs at %d fps)", t.Frames(), float64(t.Frames())/float64(t.FPS), t.FPS),
		labelStyle.Render("radius   ") + stats(t.Radius),
		labelStyle.Render("velocity ") + stats(t.Velocity),
		labelStyle.Render("edges    ") + stats(t.Edges),
		labelStyle.Render("peak     ") + fmt.Sprintf("band %d most often", mode(t.PeakBand)),
	}, "\n")

	var b strings.Builder
	b.WriteString(boxStyle.Render(summary))
	b.WriteString("\n\n")
	for _, series := range []struct {
		name string
		data []float64
	}{
		{"radius", t.Radius},
		{"velocity", t.Velocity},
		{"edges", t.Edges},
	} {
		b.WriteString(asciigraph.Plot(series.data,
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.Caption(series.name),
		))
		b.WriteString("\n\n")
	}
	return b.String()
}

func stats(data []float64) string {
	lo, hi, sum := data[0], data[0], 0.0
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return fmt.Sprintf("min %.3f  mean %.3f  max %.3f", lo, sum/float64(len(data)), hi)
}

func mode(values []int) int {
	counts := make(map[int]int)
	best := values[0]
	for _, v := range values {
		counts[v]++
		if counts[v] > counts[best] || (counts[v] == counts[best] && v < best) {
			best = v
		}
	}
	return best
}
