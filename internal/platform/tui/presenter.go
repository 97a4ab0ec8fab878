package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/game"
)

// Visual characters for rendering
const (
	entityChar   = '█'
	entityEye    = '>'
	groundChar   = '▀'
	soilChar     = '░'
	starChar     = '.'
	stoneChar    = '▓'
	stone2Char   = '▒'
	cactusChar   = '┼'
	woodChar     = '#'
	countdownRow = 3
)

// kindLook is how an obstacle kind is drawn.
type kindLook struct {
	char  rune
	color core.Color
}

var kindLooks = map[game.Kind]kindLook{
	game.KindStone:  {stoneChar, core.ColorGray},
	game.KindStone2: {stone2Char, core.ColorDarkGray},
	game.KindCactus: {cactusChar, core.ColorGreen},
	game.KindWood:   {woodChar, core.ColorBrown},
}

// ScreenPresenter draws the game state into a cell buffer. Screen-relative
// units are scaled to the buffer size on every frame, so a resize never
// touches the simulation.
type ScreenPresenter struct {
	screen  *core.Screen
	cfg     config.FlapperConfig
	night   bool
	audioOn bool
}

// NewScreenPresenter creates a presenter drawing into screen.
func NewScreenPresenter(screen *core.Screen, cfg config.FlapperConfig) *ScreenPresenter {
	return &ScreenPresenter{screen: screen, cfg: cfg}
}

// Night reports whether the last frame was drawn in night mode.
func (p *ScreenPresenter) Night() bool {
	return p.night
}

// SetAudio updates the sound indicator in the HUD.
func (p *ScreenPresenter) SetAudio(on bool) {
	p.audioOn = on
}

// Render implements game.Presenter.
func (p *ScreenPresenter) Render(s *game.State) {
	dst := p.screen
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	p.night = s.NightMode(p.cfg.Display.NightScore)
	if p.night {
		p.drawStars()
	}

	p.drawGround()
	for _, o := range s.Obstacles {
		p.drawObstacle(o)
	}
	p.drawEntity(s.Entity)
	p.drawHUD(s)

	switch s.Phase {
	case game.PhaseIdle:
		p.drawCenteredMessage("F L A P P E R",
			"Space or Enter to start",
			fmt.Sprintf("Best: %d", s.HighScore))
	case game.PhaseCountdown:
		text := "Go!"
		if s.Countdown > 0 {
			text = fmt.Sprintf("%d", s.Countdown)
		}
		dst.DrawTextCentered(countdownRow, text)
	case game.PhasePaused:
		p.drawCenteredMessage("PAUSED", "Press P to resume")
	case game.PhaseGameOver:
		best := fmt.Sprintf("Best: %d", s.HighScore)
		if s.Score > 0 && s.Score >= s.HighScore {
			best = "New best!"
		}
		p.drawCenteredMessage("GAME OVER",
			fmt.Sprintf("Score: %d  |  %s", s.Score, best),
			"Space to play again  |  R for title")
	}

	if s.ShowHint && s.Phase == game.PhasePlaying {
		dst.DrawTextCentered(2, "space / up / click to jump  -  p to pause")
	}
}

// col maps a horizontal vw position to a column.
func (p *ScreenPresenter) col(x float64) int {
	return int(math.Floor(x / 100 * float64(p.screen.Width())))
}

// row maps a vertical vh position to a row.
func (p *ScreenPresenter) row(y float64) int {
	return int(math.Floor(y / 100 * float64(p.screen.Height())))
}

// span maps [from, to) to at least one cell starting at from.
func span(from, to int) (int, int) {
	if to <= from {
		to = from + 1
	}
	return from, to
}

func (p *ScreenPresenter) drawGround() {
	dst := p.screen
	top := p.row(p.cfg.Physics.GroundLine)
	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, top, groundChar, core.ColorGreen)
		for y := top + 1; y < dst.Height(); y++ {
			dst.SetWithColor(x, y, soilChar, core.ColorBrown)
		}
	}
}

func (p *ScreenPresenter) drawObstacle(o game.Obstacle) {
	look, ok := kindLooks[o.Kind]
	if !ok {
		look = kindLooks[game.KindStone]
	}

	x0, x1 := span(p.col(o.X), p.col(o.Right()))
	y0, y1 := span(p.row(o.Y), p.row(p.cfg.Physics.GroundLine))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.screen.SetWithColor(x, y, look.char, look.color)
		}
	}
}

func (p *ScreenPresenter) drawEntity(e game.Entity) {
	pl := p.cfg.Player
	x0, x1 := span(p.col(pl.X), p.col(pl.X+pl.Width))
	y0, y1 := span(p.row(e.Y), p.row(e.Y+pl.Height))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.screen.SetWithColor(x, y, entityChar, core.ColorBrightYellow)
		}
	}
	p.screen.SetWithColor(x1-1, y0, entityEye, core.ColorOrange)
}

func (p *ScreenPresenter) drawHUD(s *game.State) {
	dst := p.screen
	dst.DrawTextWithColor(1, 0, fmt.Sprintf(" Score: %d  Best: %d ", s.Score, s.HighScore), core.ColorBrightWhite)

	sound := "sound off"
	if p.audioOn {
		sound = "sound on"
	}
	dst.DrawTextWithColor(dst.Width()-len(sound)-2, 0, sound, core.ColorGray)
}

// drawStars scatters a fixed star pattern over the sky.
func (p *ScreenPresenter) drawStars() {
	dst := p.screen
	sky := p.row(p.cfg.Physics.GroundLine)
	for y := 1; y < sky; y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*7+y*13)%37 == 0 {
				dst.SetWithColor(x, y, starChar, core.ColorWhite)
			}
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (p *ScreenPresenter) drawCenteredMessage(title string, lines ...string) {
	dst := p.screen
	w := len([]rune(title))
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}

	boxW := w + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextWithColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─')
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
