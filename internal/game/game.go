package game

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/spectrum-cloud/internal/config"
	"github.com/iburimskiy/spectrum-cloud/internal/sim"
	"golang.org/x/image/font/basicfont"
)

// SpectrumSource supplies one raw magnitude per band each frame.
type SpectrumSource interface {
	Spectrum() []float64
}

type Pauser interface {
	TogglePause() bool
}

type Options struct {
	Background  *ebiten.Image
	Credit      string
	CapturePath string

	// Pauser is nil when running without audio.
	Pauser Pauser
}

type Game struct {
	sim    *sim.Simulation
	source SpectrumSource
	opts   Options

	start time.Time
	now   func() time.Time

	paused  bool
	capture bool
	lastErr error
	silence []float64
}

func New(s *sim.Simulation, src SpectrumSource, opts Options) *Game {
	return &Game{
		sim:     s,
		source:  src,
		opts:    opts,
		start:   time.Now(),
		now:     time.Now,
		silence: make([]float64, s.Bands()),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.opts.Pauser != nil {
		g.paused = g.opts.Pauser.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && g.opts.CapturePath != "" {
		g.capture = true
	}
	return g.advance()
}

// advance feeds one frame of audio into the simulation. A malformed spectrum
// is returned as is, which stops the game loop.
func (g *Game) advance() error {
	elapsed := g.now().Sub(g.start).Seconds()
	return g.sim.Tick(elapsed, g.spectrum())
}

// spectrum is silent while playback is paused: the tap stops receiving
// samples and would otherwise repeat its last frame.
func (g *Game) spectrum() []float64 {
	if g.paused {
		return g.silence
	}
	return g.source.Spectrum()
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()

	screen.Fill(color.Black)
	if g.opts.Background != nil {
		screen.DrawImage(g.opts.Background, nil)
	}

	// Dark overlay fading out over the first minute or so.
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.NRGBA{A: alpha8(snap.Fade)}, false)

	if g.opts.Credit != "" {
		text.Draw(screen, g.opts.Credit, basicfont.Face7x13, config.CreditX, config.CreditY, creditColor)
	}

	g.drawSpectrum(screen, snap)
	g.drawCloud(screen, snap, float32(w)/2, float32(h)/2)
	g.drawStatus(screen, snap)

	if g.capture {
		g.capture = false
		if err := savePNG(g.opts.CapturePath, screen); err != nil {
			g.lastErr = err
			slog.Error("capture failed", "path", g.opts.CapturePath, "err", err)
		} else {
			slog.Info("frame captured", "path", g.opts.CapturePath, "frame", snap.Frame)
		}
	}
}

func (g *Game) drawSpectrum(screen *ebiten.Image, snap sim.Snapshot) {
	panelWidth := float32(len(snap.Spectrum) * config.PanelWidthPer)
	vector.DrawFilledRect(screen, 0, config.PanelBaseline-config.PanelHeight, panelWidth, config.PanelHeight, panelColor, false)

	for i, v := range snap.Spectrum {
		x, y, bh := barRect(i, v)
		if bh <= 0 {
			continue
		}
		vector.DrawFilledRect(screen, x, y, config.BarWidth, bh, barColorFor(i, snap.BandRadius, snap.BandVelocity), false)
	}
}

func (g *Game) drawCloud(screen *ebiten.Image, snap sim.Snapshot, cx, cy float32) {
	col := cloudColor(snap.Fade)

	for _, p := range snap.Positions {
		vector.DrawFilledCircle(screen, cx+float32(p.X), cy+float32(p.Y), config.PointRadius, col, true)
	}
	for _, e := range snap.Edges {
		a, b := snap.Positions[e.J], snap.Positions[e.K]
		vector.StrokeLine(screen, cx+float32(a.X), cy+float32(a.Y), cx+float32(b.X), cy+float32(b.Y), 1, col, true)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image, snap sim.Snapshot) {
	status := ""
	switch {
	case g.opts.Pauser == nil:
		status = "No audio"
	case g.paused:
		status = "Paused - Space to resume"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if status == "" {
		return
	}
	elapsed := time.Duration(snap.Elapsed * float64(time.Second))
	ebitenutil.DebugPrintAt(screen, formatDuration(elapsed)+" "+status, 12, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Run opens the window and blocks until the user quits or a frame fails.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(title)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
