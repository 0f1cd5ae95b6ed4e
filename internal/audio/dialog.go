package audio

import (
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
)

var ErrNoTrack = errors.New("no track selected")

// SelectTrack asks for an audio file with the native file chooser.
func SelectTrack() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrNoTrack
	}
	if err != nil {
		return "", errors.Wrap(err, "select track")
	}
	return filename, nil
}
