package loop

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/ufo-intercept/internal/draw"
	"github.com/tomz197/ufo-intercept/internal/loop/config"
	"github.com/tomz197/ufo-intercept/internal/object"
	"github.com/tomz197/ufo-intercept/internal/physics"
	"github.com/tomz197/ufo-intercept/internal/stats"
)

// Screen is the terminal Renderer. It scales the logical field onto a
// square area of half-block cells.
type Screen struct {
	cw       *draw.ChunkWriter
	canvas   *draw.Canvas
	termSize draw.TermSizeFunc
	termW    int
	termH    int

	message  []string
	fontSize int
	showing  bool // message currently on screen

	points []draw.Point // Reused polygon buffer
}

var _ Renderer = (*Screen)(nil)

// NewScreen creates a renderer writing to w and sized by termSize.
func NewScreen(w io.Writer, termSize draw.TermSizeFunc) *Screen {
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	s := &Screen{
		cw:       draw.NewChunkWriter(w, 0, 0),
		canvas:   draw.NewScaledCanvas(1, 1, config.FieldWidth, config.FieldHeight),
		termSize: termSize,
	}
	s.Resize()
	return s
}

// clampTermSize fits a square field into the terminal. A cell is twice as
// tall as it is wide, so the area is twice as many columns as rows.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight, renderWidth/2)
	renderHeight = max(renderHeight, 1)
	renderWidth = max(min(renderWidth, renderHeight*2), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// Resize checks the terminal size and, when it changed, rescales the canvas
// and repaints the border and any message on screen.
func (s *Screen) Resize() error {
	termW, termH, err := s.termSize()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if termW == s.termW && termH == s.termH {
		return nil
	}
	s.termW, s.termH = termW, termH

	renderW, renderH, offCol, offRow := clampTermSize(termW, termH)
	s.canvas.Resize(renderW, renderH)
	s.canvas.SetOffset(offCol, offRow)
	s.cw.SetOffset(offCol, offRow)

	if s.showing {
		return s.ShowMessage(s.message, s.fontSize)
	}
	return s.Clear()
}

// Clear wipes the terminal and draws the border.
func (s *Screen) Clear() error {
	s.wipe()
	s.showing = false
	return s.cw.Flush()
}

func (s *Screen) wipe() {
	s.cw.ClearScreen()
	s.canvas.Clear()
	s.canvas.ForceRedraw()
	s.canvas.RenderBorder(s.cw)
}

// ShowMessage replaces the screen with centred lines. Lines are spaced by
// fontSize logical units starting near the top of the field and never share
// a row.
func (s *Screen) ShowMessage(lines []string, fontSize int) error {
	s.message = append(s.message[:0], lines...)
	s.fontSize = fontSize
	s.wipe()

	width := s.canvas.TerminalWidth()
	height := s.canvas.TerminalHeight()
	prevRow := 0
	for i, line := range lines {
		_, row := s.canvas.LogicalToTerminal(0, float64(config.MessageTop+i*fontSize))
		row = max(row, prevRow+1)
		prevRow = row
		if row > height {
			break
		}
		col := max((width-utf8.RuneCountInString(line))/2+1, 1)
		s.cw.WriteAt(col, row, line)
	}
	s.showing = true
	return s.cw.Flush()
}

// DrawFrame renders the entities and the HUD.
func (s *Screen) DrawFrame(f Frame) error {
	if s.showing {
		s.wipe()
		s.showing = false
	}

	s.canvas.Clear()
	s.drawShip(f.Player)
	enemyFrame := animationFrame(f.PlayTime, config.EnemyAnimation, config.EnemyFrames, false)
	for _, e := range f.Enemies {
		s.drawEnemy(e.Rect, e.Variant, enemyFrame)
	}
	if f.HasBonus {
		s.drawBonus(f.Bonus, animationFrame(f.PlayTime, config.BonusAnimation, config.BonusFrames, true))
	}
	for _, r := range f.PlayerShots {
		s.canvas.FillRect(r.X, r.Y, r.W, r.H)
	}
	for _, r := range f.EnemyShots {
		s.canvas.FillRect(r.X, r.Y, r.W, r.H)
	}
	for _, r := range f.Shields {
		s.canvas.FillRect(r.X, r.Y, r.W, r.H)
	}
	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}

	s.drawHUD(f)
	return s.cw.Flush()
}

// drawHUD writes lives, high score and score over the top of the field.
func (s *Screen) drawHUD(f Frame) {
	width := s.canvas.TerminalWidth()
	margin, row := s.canvas.LogicalToTerminal(config.HUDMargin, config.HUDBaseline)

	lives := "LIVES:" + strings.Repeat(" ▲", max(f.Lives, 0))
	hi := "HI: " + stats.FormatNumber(f.HighScore)
	score := "SCORE: " + stats.FormatNumber(f.Score)

	s.writeText(margin, row, lives)
	s.writeText((width-utf8.RuneCountInString(hi))/2+1, row, hi)
	s.writeText(width-margin-utf8.RuneCountInString(score)+2, row, score)
}

// writeText writes text clipped to the render area and marks its cells so
// the next render repaints them.
func (s *Screen) writeText(col, row int, text string) {
	width := s.canvas.TerminalWidth()
	col = max(col, 1)
	n := utf8.RuneCountInString(text)
	if col+n-1 > width {
		runes := []rune(text)
		n = max(width-col+1, 0)
		text = string(runes[:n])
	}
	if n == 0 {
		return
	}
	s.cw.WriteAt(col, row, text)
	s.canvas.MarkTextDirty(col, row, n)
}

// animationFrame picks a frame index from the animation clock. With
// pingPong the frames play forward then back without repeating the ends.
func animationFrame(t, length time.Duration, frames int, pingPong bool) int {
	if frames < 2 || length <= 0 {
		return 0
	}
	total := frames
	if pingPong {
		total = 2*frames - 2
	}
	step := int((t % length) * time.Duration(total) / length)
	if step >= frames {
		step = total - step
	}
	return step
}

// shape is a polygon in coordinates relative to a unit square.
type shape []draw.Point

// place scales a unit shape into r.
func place(dst []draw.Point, sh shape, r physics.Rect) []draw.Point {
	dst = dst[:0]
	for _, p := range sh {
		dst = append(dst, draw.Point{X: r.X + p.X*r.W, Y: r.Y + p.Y*r.H})
	}
	return dst
}

var shipShape = shape{
	{X: 0.5, Y: 0}, {X: 0.62, Y: 0.45}, {X: 1, Y: 0.8}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: 0, Y: 0.8}, {X: 0.38, Y: 0.45},
}

// enemyShapes holds two animation frames per variant.
var enemyShapes = map[object.Variant][2][]shape{
	object.VariantA: {
		{
			{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.9, Y: 0.6}, {X: 0.1, Y: 0.6}},
			{{X: 0.1, Y: 0.6}, {X: 0.25, Y: 0.6}, {X: 0.05, Y: 0.95}},
			{{X: 0.75, Y: 0.6}, {X: 0.9, Y: 0.6}, {X: 0.95, Y: 0.95}},
		},
		{
			{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.9, Y: 0.6}, {X: 0.1, Y: 0.6}},
			{{X: 0.15, Y: 0.6}, {X: 0.3, Y: 0.6}, {X: 0.3, Y: 0.95}},
			{{X: 0.7, Y: 0.6}, {X: 0.85, Y: 0.6}, {X: 0.7, Y: 0.95}},
		},
	},
	object.VariantB: {
		{
			{{X: 0.5, Y: 0.1}, {X: 0.9, Y: 0.5}, {X: 0.5, Y: 0.75}, {X: 0.1, Y: 0.5}},
			{{X: 0.1, Y: 0.5}, {X: 0.2, Y: 0.55}, {X: 0, Y: 0.9}},
			{{X: 0.8, Y: 0.55}, {X: 0.9, Y: 0.5}, {X: 1, Y: 0.9}},
		},
		{
			{{X: 0.5, Y: 0.1}, {X: 0.9, Y: 0.5}, {X: 0.5, Y: 0.75}, {X: 0.1, Y: 0.5}},
			{{X: 0.1, Y: 0.5}, {X: 0.2, Y: 0.55}, {X: 0, Y: 0.2}},
			{{X: 0.8, Y: 0.55}, {X: 0.9, Y: 0.5}, {X: 1, Y: 0.2}},
		},
	},
	object.VariantC: {
		{
			{{X: 0.5, Y: 0.05}, {X: 0.75, Y: 0.35}, {X: 0.75, Y: 0.65}, {X: 0.25, Y: 0.65}, {X: 0.25, Y: 0.35}},
			{{X: 0.25, Y: 0.65}, {X: 0.4, Y: 0.65}, {X: 0.2, Y: 0.95}},
			{{X: 0.6, Y: 0.65}, {X: 0.75, Y: 0.65}, {X: 0.8, Y: 0.95}},
		},
		{
			{{X: 0.5, Y: 0.05}, {X: 0.75, Y: 0.35}, {X: 0.75, Y: 0.65}, {X: 0.25, Y: 0.65}, {X: 0.25, Y: 0.35}},
			{{X: 0.25, Y: 0.65}, {X: 0.4, Y: 0.65}, {X: 0.45, Y: 0.95}},
			{{X: 0.6, Y: 0.65}, {X: 0.75, Y: 0.65}, {X: 0.55, Y: 0.95}},
		},
	},
}

var (
	bonusDome = shape{{X: 0.3, Y: 0.45}, {X: 0.4, Y: 0.2}, {X: 0.6, Y: 0.2}, {X: 0.7, Y: 0.45}}
	bonusHull = shape{{X: 0, Y: 0.6}, {X: 0.2, Y: 0.45}, {X: 0.8, Y: 0.45}, {X: 1, Y: 0.6}, {X: 0.8, Y: 0.75}, {X: 0.2, Y: 0.75}}
)

func (s *Screen) drawShip(r physics.Rect) {
	s.polygon(shipShape, r, true)
}

func (s *Screen) polygon(sh shape, r physics.Rect, filled bool) {
	s.points = place(s.points, sh, r)
	s.canvas.DrawPolygon(s.points, filled)
}

func (s *Screen) drawEnemy(r physics.Rect, v object.Variant, frame int) {
	frames, ok := enemyShapes[v]
	if !ok {
		frames = enemyShapes[object.VariantA]
	}
	for _, sh := range frames[frame%2] {
		s.polygon(sh, r, true)
	}
}

// drawBonus draws the saucer outline with one lit window per frame.
func (s *Screen) drawBonus(r physics.Rect, frame int) {
	s.polygon(bonusDome, r, true)
	s.polygon(bonusHull, r, false)

	light := r.W * 0.12
	x := r.X + r.W*(0.2+0.15*float64(frame))
	s.canvas.FillRect(x, r.Y+r.H*0.55, light, light)
}
