package game

import (
	"strconv"

	"github.com/zusu/flappy-arcade/internal/core"
)

// Visual characters for rendering.
const (
	BirdChar      = '▶'
	BirdBodyChar  = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundAltChar = '─'
)

// Render draws the world into the screen buffer. The fixed-size world is
// projected onto whatever terminal size is available; the platform layer
// overlays its own HUD (best score, active players, panels) on top.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	w := dst.Width()
	h := dst.Height()
	if w <= 0 || h <= 0 {
		return
	}

	sx := func(x float64) int { return int(x / s.cfg.World.Width * float64(w)) }
	sy := func(y float64) int { return int(y / s.cfg.World.Height * float64(h)) }

	groundRow := core.Clamp(sy(s.cfg.World.GroundY), 1, h-1)

	// Ground: alternate tiles shifted by the scroll offset so the floor
	// visibly moves while the session is running.
	phase := sx(s.groundOffset)
	for x := 0; x < w; x++ {
		ch := GroundChar
		if (x+phase)/2%2 == 0 {
			ch = GroundAltChar
		}
		dst.SetColored(x, groundRow, ch, core.ColorYellow)
	}

	for _, p := range s.pipes.Pairs() {
		s.drawPipePair(dst, p, sx, sy, groundRow)
	}

	s.drawBird(dst, sx, sy)

	// Big score, top center, like the original's score text. Hidden in Idle.
	if s.phase != PhaseIdle {
		dst.DrawTextCentered(1, strconv.Itoa(s.displayScore))
	}

	if s.phase == PhaseIdle {
		dst.DrawTextCentered(h/3, "GET READY")
		dst.DrawTextCentered(h/3+2, "press SPACE to flap")
	}

	if s.paused {
		dst.DrawTextCentered(h/2, "PAUSED")
	}

	if s.phase == PhaseTerminal {
		dst.DrawTextCentered(h/2, "GAME OVER")
		dst.DrawTextCentered(h/2+1, "score "+strconv.Itoa(s.displayScore))
		dst.DrawTextCentered(h/2+2, "press R to restart")
	}
}

// drawPipePair renders both pipes of a pair in the pair's variant color.
func (s *Session) drawPipePair(dst *core.Screen, p PipePair, sx, sy func(float64) int, groundRow int) {
	color := core.ColorGreen
	if p.Variant == VariantRed {
		color = core.ColorRed
	}

	left := sx(p.X - s.cfg.Obstacles.PipeWidth/2)
	right := sx(p.X + s.cfg.Obstacles.PipeWidth/2)
	if right <= left {
		right = left + 1
	}

	gapTopRow := sy(p.GapTop)
	gapBottomRow := sy(p.GapTop + s.cfg.Obstacles.GapHeight)

	for x := left; x < right; x++ {
		// Top pipe: screen top down to the gap.
		for y := 0; y < gapTopRow-1; y++ {
			dst.SetColored(x, y, PipeChar, color)
		}
		if gapTopRow > 0 {
			dst.SetColored(x, gapTopRow-1, PipeCapTop, color)
		}
		// Bottom pipe: below the gap down to the ground.
		if gapBottomRow < groundRow {
			dst.SetColored(x, gapBottomRow, PipeCapBottom, color)
		}
		for y := gapBottomRow + 1; y < groundRow; y++ {
			dst.SetColored(x, y, PipeChar, color)
		}
	}
}

// drawBird renders the bird as a small colored blob with a beak.
func (s *Session) drawBird(dst *core.Screen, sx, sy func(float64) int) {
	bx := sx(s.cfg.Player.X)
	by := sy(s.birdY)
	dst.SetColored(bx-1, by, BirdBodyChar, core.ColorBrightYellow)
	dst.SetColored(bx, by, BirdChar, core.ColorBrightYellow)
}
