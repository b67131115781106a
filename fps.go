package lottie

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays FPS, TPS and the current frame. The text is redrawn
// into its own image every ~0.5 seconds.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	drawn   bool
}

const fpsRefreshInterval = 0.5

func newFPSOverlay() *fpsOverlay {
	// 120x48 fits three lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(120, 48)}
}

// update advances the refresh timer by dt seconds and redraws when due.
func (o *fpsOverlay) update(dt, frame float64) {
	o.elapsed += dt
	if o.drawn && o.elapsed < fpsRefreshInterval {
		return
	}
	o.elapsed = 0
	o.drawn = true

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nframe: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), frame))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
