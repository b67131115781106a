package lottie

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run and NewPlayer. Zero values use defaults.
type RunConfig struct {
	Title string
	// Window size in pixels. Zero uses the animation size.
	Width, Height int
	// Speed multiplies the playback rate. Zero means 1.
	Speed float64
	// Loop restarts at InFrame after OutFrame instead of stopping.
	Loop bool
	// Background fills the screen before each draw. Zero alpha skips it.
	Background Color
	// ShowFPS prints FPS/TPS and the current frame in the top-left corner.
	ShowFPS bool
	// Debug enables per-frame stats on stderr.
	Debug bool
	// ScreenshotDir receives PNGs queued with Player.Screenshot.
	// Empty means "screenshots".
	ScreenshotDir string
}

// Player plays an Animation as an ebiten.Game. Update advances and
// synchronizes the animation; Draw renders the last published snapshot.
type Player struct {
	anim     *Animation
	renderer *Renderer
	config   RunConfig
	frame    float64
	playing  bool

	fps             *fpsOverlay
	script          *PlaybackScript
	screenshotQueue []string
}

// NewPlayer creates a player positioned at the animation's first frame.
func NewPlayer(anim *Animation, cfg RunConfig) *Player {
	if cfg.Speed == 0 {
		cfg.Speed = 1
	}
	if cfg.Debug {
		anim.SetDebugMode(true)
	}
	p := &Player{
		anim:     anim,
		renderer: NewRenderer(),
		config:   cfg,
		frame:    anim.InFrame(),
		playing:  true,
	}
	if cfg.ShowFPS {
		p.fps = newFPSOverlay()
	}
	anim.SetFrame(p.frame)
	return p
}

// Play resumes playback.
func (p *Player) Play() { p.playing = true }

// Pause stops advancing frames.
func (p *Player) Pause() { p.playing = false }

// IsPlaying reports whether the player advances frames on Update.
func (p *Player) IsPlaying() bool { return p.playing }

// Frame returns the current frame.
func (p *Player) Frame() float64 { return p.frame }

// Seek jumps to frame and publishes it immediately.
func (p *Player) Seek(frame float64) {
	p.anim.SetFrame(frame)
	p.frame = p.anim.Frame()
}

// Update implements ebiten.Game.
func (p *Player) Update() error {
	if p.script != nil {
		p.script.step(p)
	}
	if p.fps != nil {
		p.fps.update(1/float64(ebiten.TPS()), p.frame)
	}
	if !p.playing {
		return nil
	}
	p.frame += p.anim.FrameRate() / float64(ebiten.TPS()) * p.config.Speed

	in, out := p.anim.InFrame(), p.anim.OutFrame()
	if out > in && p.frame > out {
		if p.config.Loop {
			p.frame = in + math.Mod(p.frame-in, out-in)
		} else {
			p.frame = out
			p.playing = false
		}
	}
	p.anim.SetFrame(p.frame)
	return nil
}

// Draw implements ebiten.Game.
func (p *Player) Draw(screen *ebiten.Image) {
	if p.config.Background.A > 0 {
		screen.Fill(p.config.Background.toRGBA())
	}
	p.renderer.Draw(screen, p.anim.Snapshot())
	p.flushScreenshots(screen)
	if p.fps != nil {
		p.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is the animation size.
func (p *Player) Layout(_, _ int) (int, int) {
	size := p.anim.Size()
	return int(math.Ceil(size.X)), int(math.Ceil(size.Y))
}

// Run opens a window and plays anim until the window is closed.
func Run(anim *Animation, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		size := anim.Size()
		w, h = int(math.Ceil(size.X)), int(math.Ceil(size.Y))
	}
	title := cfg.Title
	if title == "" {
		title = anim.Model().Name
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(NewPlayer(anim, cfg)); err != nil {
		return fmt.Errorf("lottie: run: %w", err)
	}
	return nil
}
