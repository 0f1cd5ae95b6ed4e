package game

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/iburimskiy/spectrum-cloud/internal/config"
)

var (
	panelColor     = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	barColor       = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	highlightColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	creditColor    = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 255}
)

// alpha8 rounds an opacity on the 0-255 scale into a color channel.
func alpha8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// cloudColor brightens the points and edges while the overlay fades out.
func cloudColor(fade float64) color.NRGBA {
	return color.NRGBA{
		R: config.PointGray,
		G: config.PointGray,
		B: config.PointGray,
		A: alpha8(math.Abs(config.PointAlpha - fade)),
	}
}

func barColorFor(band, bandRadius, bandVelocity int) color.NRGBA {
	if band == bandRadius || band == bandVelocity {
		return highlightColor
	}
	return barColor
}

// barRect returns the top-left corner and height of a spectrum bar that
// grows upward from the panel baseline.
func barRect(band int, value float64) (x, y, h float32) {
	h = float32(value * config.BarScale)
	x = float32(config.BarOffsetX + band*config.BarStride)
	y = float32(config.PanelBaseline) - h
	return x, y, h
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
