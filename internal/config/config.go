package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1000
	WindowHeight = 700

	// Spectrum panel
	PanelBaseline = 600
	PanelHeight   = 100
	PanelWidthPer = 6
	BarOffsetX    = 10
	BarStride     = 5
	BarWidth      = 3
	BarScale      = 100

	// Cloud drawing
	PointRadius = 2
	PointGray   = 160
	PointAlpha  = 130

	// Credit line
	CreditX = 800
	CreditY = 610

	VisualRingSize = 8192
)

const (
	DefaultBands           = 256
	DefaultParticles       = 300
	DefaultDecay           = 0.97
	DefaultProximity       = 40.0
	DefaultBandRadius      = 2
	DefaultBandVelocity    = 100
	DefaultMaxDelta        = 0.1
	DefaultPhaseRange      = 1000.0
	DefaultSpectrumGain    = 16.0
	DefaultFadeStart       = 255.0
	DefaultFadeRate        = 3.5
	DefaultCredit          = "Music by: volfworks"
	DefaultAnalyzeFPS      = 60
	DefaultAnalyzeDuration = 30.0
)

var ErrInvalidConfig = errors.New("invalid config")

// Mapping is a linear range remap. With Clamp set the result is held inside
// [OutLow, OutHigh].
type Mapping struct {
	InLow   float64 `yaml:"in_low"`
	InHigh  float64 `yaml:"in_high"`
	OutLow  float64 `yaml:"out_low"`
	OutHigh float64 `yaml:"out_high"`
	Clamp   bool    `yaml:"clamp"`
}

type Config struct {
	Bands        int     `yaml:"bands"`
	Particles    int     `yaml:"particles"`
	Decay        float64 `yaml:"decay"`
	Ceiling      float64 `yaml:"ceiling"`
	Proximity    float64 `yaml:"proximity"`
	BandRadius   int     `yaml:"band_radius"`
	BandVelocity int     `yaml:"band_velocity"`
	Radius       Mapping `yaml:"radius"`
	Velocity     Mapping `yaml:"velocity"`
	MaxDelta     float64 `yaml:"max_delta"`
	PhaseRange   float64 `yaml:"phase_range"`
	Seed         int64   `yaml:"seed"`
	NoiseSeed    int64   `yaml:"noise_seed"`
	SpectrumGain float64 `yaml:"spectrum_gain"`
	Fade         Fade    `yaml:"fade"`
	Credit       string  `yaml:"credit"`
	Background   string  `yaml:"background"`
}

type Fade struct {
	Start float64 `yaml:"start"`
	Rate  float64 `yaml:"rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Bands:        DefaultBands,
		Particles:    DefaultParticles,
		Decay:        DefaultDecay,
		Proximity:    DefaultProximity,
		BandRadius:   DefaultBandRadius,
		BandVelocity: DefaultBandVelocity,
		Radius: Mapping{
			InLow:   1,
			InHigh:  3,
			OutLow:  400,
			OutHigh: 800,
			Clamp:   true,
		},
		Velocity: Mapping{
			InLow:   0,
			InHigh:  0.1,
			OutLow:  0.05,
			OutHigh: 0.5,
		},
		MaxDelta:     DefaultMaxDelta,
		PhaseRange:   DefaultPhaseRange,
		SpectrumGain: DefaultSpectrumGain,
		Fade: Fade{
			Start: DefaultFadeStart,
			Rate:  DefaultFadeRate,
		},
		Credit: DefaultCredit,
	}
}

// Load reads a YAML file on top of the defaults, so a partial file only
// overrides what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Bands <= 0:
		return fmt.Errorf("%w: bands must be positive, got %d", ErrInvalidConfig, c.Bands)
	case c.Particles <= 0:
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalidConfig, c.Particles)
	case c.Decay <= 0 || c.Decay > 1:
		return fmt.Errorf("%w: decay must be in (0, 1], got %f", ErrInvalidConfig, c.Decay)
	case c.Ceiling < 0:
		return fmt.Errorf("%w: ceiling must not be negative, got %f", ErrInvalidConfig, c.Ceiling)
	case c.Proximity <= 0:
		return fmt.Errorf("%w: proximity must be positive, got %f", ErrInvalidConfig, c.Proximity)
	case c.BandRadius < 0 || c.BandRadius >= c.Bands:
		return fmt.Errorf("%w: band_radius %d outside [0, %d)", ErrInvalidConfig, c.BandRadius, c.Bands)
	case c.BandVelocity < 0 || c.BandVelocity >= c.Bands:
		return fmt.Errorf("%w: band_velocity %d outside [0, %d)", ErrInvalidConfig, c.BandVelocity, c.Bands)
	case c.Radius.InHigh == c.Radius.InLow:
		return fmt.Errorf("%w: radius mapping has an empty input range", ErrInvalidConfig)
	case c.Velocity.InHigh == c.Velocity.InLow:
		return fmt.Errorf("%w: velocity mapping has an empty input range", ErrInvalidConfig)
	case c.MaxDelta <= 0:
		return fmt.Errorf("%w: max_delta must be positive, got %f", ErrInvalidConfig, c.MaxDelta)
	case c.PhaseRange <= 0:
		return fmt.Errorf("%w: phase_range must be positive, got %f", ErrInvalidConfig, c.PhaseRange)
	case c.SpectrumGain <= 0:
		return fmt.Errorf("%w: spectrum_gain must be positive, got %f", ErrInvalidConfig, c.SpectrumGain)
	}
	return nil
}
