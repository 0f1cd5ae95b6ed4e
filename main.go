package main

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/iburimskiy/spectrum-cloud/internal/audio"
	"github.com/iburimskiy/spectrum-cloud/internal/config"
	"github.com/iburimskiy/spectrum-cloud/internal/game"
	"github.com/iburimskiy/spectrum-cloud/internal/offline"
	"github.com/iburimskiy/spectrum-cloud/internal/sim"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	background  string
	capturePath string
	seed        int64
	silent      bool
	logLevel    string
	fps         int
	seconds     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spectrum-cloud [track]",
		Short: "audio-reactive particle cloud",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: runVisualizer,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for particle phases")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.Flags().StringVar(&background, "background", "", "background image (overrides config)")
	rootCmd.Flags().StringVar(&capturePath, "capture", "screen.png", "file written when S is pressed")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "run without audio when no track is available")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [track]",
		Short: "run the pipeline over a track without a window and plot the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().IntVar(&fps, "fps", config.DefaultAnalyzeFPS, "frames per second")
	analyzeCmd.Flags().Float64Var(&seconds, "seconds", config.DefaultAnalyzeDuration, "seconds of audio to analyze")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(analyzeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// loadConfig applies the --seed flag over the file when given explicitly or
// when the file leaves the seed unset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
		slog.Info("config loaded", "path", configFile)
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runVisualizer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if background != "" {
		cfg.Background = background
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	opts := game.Options{
		Credit:      cfg.Credit,
		CapturePath: capturePath,
	}
	if cfg.Background != "" {
		img, _, err := ebitenutil.NewImageFromFile(cfg.Background)
		if err != nil {
			return fmt.Errorf("load background: %w", err)
		}
		opts.Background = img
	}

	var source game.SpectrumSource
	player, err := openTrack(args, cfg)
	switch {
	case err == nil:
		defer player.Close()
		source = audio.NewAnalyzer(player.Tap(), cfg.Bands, cfg.SpectrumGain)
		opts.Pauser = player
	case silent:
		slog.Warn("running without audio", "err", err)
		source = audio.NewSilence(cfg.Bands)
	default:
		return err
	}

	slog.Info("starting", "bands", cfg.Bands, "particles", cfg.Particles, "seed", cfg.Seed)
	g := game.New(s, source, opts)
	return game.Run(g, "spectrum-cloud - Space: Play/Pause, S: Capture, Esc/Q: Quit")
}

func openTrack(args []string, cfg *config.Config) (*audio.Player, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		if path, err = audio.SelectTrack(); err != nil {
			return nil, err
		}
	}
	return audio.Play(path, max(config.VisualRingSize, 2*cfg.Bands))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	streamer, format, err := audio.Decode(args[0])
	if err != nil {
		return err
	}
	defer streamer.Close()

	trace, err := offline.Run(streamer, format, s, offline.Options{
		FPS:     fps,
		Seconds: seconds,
		Gain:    cfg.SpectrumGain,
	})
	if err != nil {
		return err
	}
	fmt.Print(offline.Render(trace))
	return nil
}
