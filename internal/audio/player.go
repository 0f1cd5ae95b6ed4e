package audio

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode opens a wav, mp3 or flac file. Closing the returned streamer closes
// the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "open track")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errors.Wrap(ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return streamer, format, nil
}

// Player loops one track through the speaker with a tap in the chain:
// streamer -> loop -> tap -> ctrl -> speaker.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
}

func Play(path string, ringSize int) (*Player, error) {
	streamer, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	slog.Info("track loaded",
		"path", path,
		"sample_rate", int(format.SampleRate),
		"channels", format.NumChannels,
		"length", format.SampleRate.D(streamer.Len()).Round(time.Second),
	)

	tap := NewTap(beep.Loop(-1, streamer), ringSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
		_ = streamer.Close()
		return nil, errors.Wrap(err, "init speaker")
	}
	speaker.Play(ctrl)

	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		tap:      tap,
	}, nil
}

func (p *Player) Tap() *Tap { return p.tap }

func (p *Player) Format() beep.Format { return p.format }

func (p *Player) TogglePause() bool {
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	paused := p.ctrl.Paused
	speaker.Unlock()
	return paused
}

func (p *Player) Close() error {
	speaker.Clear()
	return p.streamer.Close()
}
