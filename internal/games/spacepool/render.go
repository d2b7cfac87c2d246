package spacepool

import (
	"fmt"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// Render draws the current game state into the screen buffer: HUD, table
// cells, aim indicator, balls, and state overlays.
func (g *Game) Render(dst *core.Screen) {
	if g.screenTooSmall {
		msg := fmt.Sprintf("Screen too small (need %dx%d)", g.minScreenW, g.minScreenH)
		dst.DrawTextColored((dst.Width()-len(msg))/2, dst.Height()/2, msg, core.ColorRed)
		return
	}

	g.drawHUD(dst)
	g.drawTable(dst)
	if g.state == StateAiming {
		g.drawAim(dst)
	}
	g.drawBalls(dst)
	g.drawPowerBar(dst)
	g.drawOverlay(dst)
	g.renderDirty = false
}

// tableViewport returns the screen region the table maps into and the
// world-to-screen scale factors.
func (g *Game) tableViewport(dst *core.Screen) (x0, y0, w, h int, sx, sy float64) {
	x0, y0 = 0, 2
	w = dst.Width()
	h = dst.Height() - 3
	bounds := g.surface.Geometry().Bounds
	sx = float64(w) / bounds.W
	sy = float64(h) / bounds.H
	return
}

// worldToScreen maps a world position to screen coordinates.
func (g *Game) worldToScreen(dst *core.Screen, p core.Vec2) (int, int) {
	x0, y0, w, h, sx, sy := g.tableViewport(dst)
	x := x0 + int(p.X*sx)
	y := y0 + int(p.Y*sy)
	return core.Clamp(x, x0, x0+w-1), core.Clamp(y, y0, y0+h-1)
}

func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Lives: %d  Rack: %d  Shots: %d", g.score, g.lives, g.rack, g.shots)
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)

	if cue := g.cueBall(); cue != nil {
		if rec, ok := g.damage.Record(cue.Handle); ok {
			hp := fmt.Sprintf("Cue HP: %d/%d ", rec.Health, rec.MaxHealth)
			dst.DrawTextColored(dst.Width()-len(hp), 0, hp, cueHealthColor(rec))
		}
	}
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func cueHealthColor(rec HealthRecord) core.Color {
	switch {
	case rec.Health*3 <= rec.MaxHealth:
		return core.ColorRed
	case rec.Health*3 <= rec.MaxHealth*2:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// drawTable samples the grid at every screen cell. Each character covers
// several world cells at default sizes, so the sample point is the cell's
// world-space center.
func (g *Game) drawTable(dst *core.Screen) {
	x0, y0, w, h, sx, sy := g.tableViewport(dst)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			wp := core.V((float64(x)+0.5)/sx, (float64(y)+0.5)/sy)
			r, color := cellGlyph(g.surface.Classify(wp))
			if r != ' ' {
				dst.SetColored(x0+x, y0+y, r, color)
			}
		}
	}
}

// cellGlyph maps a cell kind to its character and color.
func cellGlyph(c Cell) (rune, core.Color) {
	switch c {
	case CellSurface:
		return '·', core.ColorGreen
	case CellBarrier:
		return '█', core.ColorBrown
	case CellPocket:
		return '◯', core.ColorBlue
	case CellDestroyed:
		return '░', core.ColorGray
	default:
		return ' ', core.ColorDefault
	}
}

func (g *Game) drawAim(dst *core.Screen) {
	for _, p := range g.aimRay() {
		x, y := g.worldToScreen(dst, p)
		dst.SetColored(x, y, '•', core.ColorCyan)
	}
}

func (g *Game) drawBalls(dst *core.Screen) {
	for _, b := range g.balls {
		if b.Gone {
			continue
		}
		x, y := g.worldToScreen(dst, b.Pos)
		glyph := b.Kind.Glyph()
		color := b.Kind.Color()
		// Charged balls flash as the fuse runs down.
		if b.Kind.Abilities().Has(AbilityTimedCharge) && b.Fuse < 180 && (g.tickCount/10)%2 == 0 {
			glyph = '!'
			color = core.ColorRed
		}
		dst.SetColored(x, y, glyph, color)
	}
}

func (g *Game) drawPowerBar(dst *core.Screen) {
	y := dst.Height() - 1
	const width = 20
	filled := int(g.power * width)
	dst.DrawTextColored(0, y, "Power [", core.ColorWhite)
	for i := 0; i < width; i++ {
		r := '─'
		color := core.ColorGray
		if i < filled {
			r = '█'
			color = powerColor(g.power)
		}
		dst.SetColored(7+i, y, r, color)
	}
	dst.SetColored(7+width, y, ']', core.ColorWhite)
}

func powerColor(p float64) core.Color {
	switch {
	case p > 0.75:
		return core.ColorRed
	case p > 0.4:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// drawOverlay renders the centered status box for non-play states.
func (g *Game) drawOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, []string{"PAUSED", "", "Press P to resume"}, core.ColorYellow)
	case StateRoundCleared:
		g.drawCenteredBox(dst, []string{
			"RACK CLEARED!",
			fmt.Sprintf("Score: %d", g.score),
			"Next rack incoming...",
		}, core.ColorGreen)
	case StateWin:
		g.drawCenteredBox(dst, []string{
			"TABLE CLEARED!",
			fmt.Sprintf("Final score: %d", g.score),
			"",
			"Press R to play again",
		}, core.ColorGreen)
	case StateGameOver:
		g.drawCenteredBox(dst, []string{
			"GAME OVER",
			fmt.Sprintf("Final score: %d", g.score),
			"",
			"Press R to restart",
		}, core.ColorRed)
	}
}

// drawCenteredBox draws a bordered box with centered lines of text.
func (g *Game) drawCenteredBox(dst *core.Screen, lines []string, color core.Color) {
	boxW := 0
	for _, l := range lines {
		if len(l) > boxW {
			boxW = len(l)
		}
	}
	boxW += 6
	boxH := len(lines) + 2
	x := (dst.Width() - boxW) / 2
	y := (dst.Height() - boxH) / 2

	dst.DrawRect(core.Rect{X: x, Y: y, W: boxW, H: boxH}, ' ')
	dst.DrawBox(core.Rect{X: x, Y: y, W: boxW, H: boxH})
	for i, l := range lines {
		dst.DrawTextColored(x+(boxW-len(l))/2, y+1+i, l, color)
	}
}
