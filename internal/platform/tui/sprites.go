package tui

import (
	"fmt"
	"math"
	"sync"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// SoundPlayer plays a cue without blocking.
type SoundPlayer interface {
	Play(kind core.SoundKind)
}

type sprite struct {
	kind core.EntityKind
	t    core.Transform
}

// HUD is what the renderer was last told to display.
type HUD struct {
	Score   int
	High    int
	Mode    core.Mode
	Message string
}

// SpriteRenderer implements core.Renderer on top of a cell Screen.
// The controller goroutine updates it; the Bubble Tea goroutine paints it.
type SpriteRenderer struct {
	mu      sync.Mutex
	world   core.Box
	next    core.Handle
	sprites map[core.Handle]*sprite
	order   []core.Handle // paint order
	hud     HUD

	handlers map[core.InputKind]map[int]func(core.InputEvent)
	nextCB   int

	sound SoundPlayer
}

// NewSpriteRenderer creates a renderer that scales world onto the screen.
// sound may be nil.
func NewSpriteRenderer(world core.Box, sound SoundPlayer) *SpriteRenderer {
	if world.W <= 0 || world.H <= 0 {
		world = core.NewBox(0, 0, 800, 600)
	}
	return &SpriteRenderer{
		world:    world,
		sprites:  make(map[core.Handle]*sprite),
		handlers: make(map[core.InputKind]map[int]func(core.InputEvent)),
		sound:    sound,
	}
}

func (r *SpriteRenderer) CreateEntity(kind core.EntityKind) core.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.sprites[r.next] = &sprite{kind: kind}
	r.order = append(r.order, r.next)
	return r.next
}

func (r *SpriteRenderer) UpdateEntityTransform(h core.Handle, t core.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sprites[h]; ok {
		s.t = t
	}
}

func (r *SpriteRenderer) MarkEntityRemoved(h core.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sprites[h]; !ok {
		return
	}
	delete(r.sprites, h)
	for i, oh := range r.order {
		if oh == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *SpriteRenderer) ShowScore(v int) {
	r.mu.Lock()
	r.hud.Score = v
	r.mu.Unlock()
}

func (r *SpriteRenderer) ShowHighScore(v int) {
	r.mu.Lock()
	r.hud.High = v
	r.mu.Unlock()
}

// ShowMode also clears the message when a new run starts.
func (r *SpriteRenderer) ShowMode(m core.Mode) {
	r.mu.Lock()
	r.hud.Mode = m
	if m == core.ModeRunning {
		r.hud.Message = ""
	}
	r.mu.Unlock()
}

func (r *SpriteRenderer) ShowMessage(msg string) {
	r.mu.Lock()
	r.hud.Message = msg
	r.mu.Unlock()
}

func (r *SpriteRenderer) PlaySound(kind core.SoundKind) {
	if r.sound != nil {
		r.sound.Play(kind)
	}
}

func (r *SpriteRenderer) OnInput(kind core.InputKind, cb func(core.InputEvent)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextCB++
	id := r.nextCB
	if r.handlers[kind] == nil {
		r.handlers[kind] = make(map[int]func(core.InputEvent))
	}
	r.handlers[kind][id] = cb

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.handlers[kind], id)
	}
}

// Emit delivers ev to every callback bound to its kind and reports whether
// any was bound.
func (r *SpriteRenderer) Emit(ev core.InputEvent) bool {
	r.mu.Lock()
	cbs := make([]func(core.InputEvent), 0, len(r.handlers[ev.Kind]))
	for _, cb := range r.handlers[ev.Kind] {
		cbs = append(cbs, cb)
	}
	r.mu.Unlock()

	for _, cb := range cbs {
		cb(ev)
	}
	return len(cbs) > 0
}

// EmitFirst delivers one event of the first kind in kinds that has a
// callback bound. The bindings are read once, so callbacks that bind new
// kinds do not receive a second event from the same key press.
func (r *SpriteRenderer) EmitFirst(kinds []core.InputKind) (core.InputKind, bool) {
	r.mu.Lock()
	var (
		kind core.InputKind
		cbs  []func(core.InputEvent)
	)
	for _, k := range kinds {
		if len(r.handlers[k]) == 0 {
			continue
		}
		kind = k
		for _, cb := range r.handlers[k] {
			cbs = append(cbs, cb)
		}
		break
	}
	r.mu.Unlock()

	for _, cb := range cbs {
		cb(core.InputEvent{Kind: kind})
	}
	return kind, len(cbs) > 0
}

// Bound reports whether any callback is registered for kind.
func (r *SpriteRenderer) Bound(kind core.InputKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers[kind]) > 0
}

// Click converts a screen cell to world coordinates and emits a pointer
// event. Clicks on the HUD are ignored.
func (r *SpriteRenderer) Click(cellX, cellY, screenW, screenH int) bool {
	x, y, ok := r.toWorld(cellX, cellY, screenW, screenH)
	if !ok {
		return false
	}
	return r.Emit(core.InputEvent{Kind: core.InputPointer, X: x, Y: y})
}

// HUD returns the current score line state.
func (r *SpriteRenderer) HUD() HUD {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hud
}

// Len returns the number of live sprites.
func (r *SpriteRenderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sprites)
}

// scale returns world units to cells for the playfield below the HUD.
func (r *SpriteRenderer) scale(screenW, screenH int) (sx, sy float64) {
	rows := max(screenH-hudRows, 1)
	return float64(screenW) / r.world.W, float64(rows) / r.world.H
}

func (r *SpriteRenderer) toCell(x, y, sx, sy float64) (int, int) {
	return int(math.Floor((x - r.world.X) * sx)), hudRows + int(math.Floor((y-r.world.Y)*sy))
}

func (r *SpriteRenderer) toWorld(cellX, cellY, screenW, screenH int) (float64, float64, bool) {
	if cellY < hudRows || cellX < 0 || cellX >= screenW || cellY >= screenH {
		return 0, 0, false
	}
	sx, sy := r.scale(screenW, screenH)
	x := r.world.X + (float64(cellX)+0.5)/sx
	y := r.world.Y + (float64(cellY-hudRows)+0.5)/sy
	return x, y, true
}

// Paint draws the HUD and every sprite into s.
func (r *SpriteRenderer) Paint(s *core.Screen, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.Clear()
	sx, sy := r.scale(s.Width(), s.Height())

	// Scenery first so entities stay on top
	for _, h := range r.order {
		sp := r.sprites[h]
		if sp.kind == core.EntityBackground || sp.kind == core.EntityGround {
			r.paintSprite(s, sp, sx, sy)
		}
	}
	for _, h := range r.order {
		sp := r.sprites[h]
		if sp.kind != core.EntityBackground && sp.kind != core.EntityGround {
			r.paintSprite(s, sp, sx, sy)
		}
	}

	hud := fmt.Sprintf(" Score: %d   High: %d", r.hud.Score, r.hud.High)
	s.DrawHLine(0, 0, s.Width(), ' ', core.ColorDefault)
	s.DrawTextColored(0, 0, hud, core.ColorBrightYellow)
	if title != "" {
		s.DrawTextColored(s.Width()-len([]rune(title))-1, 0, title, core.ColorGray)
	}
}

func (r *SpriteRenderer) paintSprite(s *core.Screen, sp *sprite, sx, sy float64) {
	b := sp.t.Box
	switch sp.kind {
	case core.EntityAnt:
		cx, cy := r.toCell(b.X+b.W/2, b.Y+b.H/2, sx, sy)
		if sp.t.Dead {
			s.SetColored(cx, cy, 'x', core.ColorRed)
			return
		}
		s.SetColored(cx, cy, antGlyph(sp.t.Heading), core.ColorBrown)

	case core.EntityBird:
		cx, cy := r.toCell(b.X+b.W/2, b.Y+b.H/2, sx, sy)
		glyph, color := '▶', core.ColorBrightYellow
		if sp.t.Frame%2 == 1 {
			glyph = '►'
		}
		if sp.t.Dead {
			glyph, color = '●', core.ColorBrightRed
		}
		s.SetColored(cx, cy, glyph, color)

	case core.EntityPipeTop, core.EntityPipeBottom:
		x0, y0 := r.toCell(b.X, b.Y, sx, sy)
		x1, y1 := r.toCell(b.Right(), b.Bottom(), sx, sy)
		for y := y0; y < max(y1, y0+1); y++ {
			for x := x0; x < max(x1, x0+1); x++ {
				s.SetColored(x, y, '█', core.ColorGreen)
			}
		}

	case core.EntityGround:
		_, y0 := r.toCell(0, b.Y, sx, sy)
		_, y1 := r.toCell(0, b.Bottom(), sx, sy)
		shift := int(math.Floor(b.X * sx))
		for y := y0; y < max(y1, y0+1); y++ {
			for x := 0; x < s.Width(); x++ {
				glyph := '▒'
				if y == y0 {
					glyph = '═'
					if mod(x-shift, 4) == 0 {
						glyph = '╪'
					}
				}
				s.SetColored(x, y, glyph, core.ColorOrange)
			}
		}

	case core.EntityBackground:
		_, y0 := r.toCell(0, b.Y, sx, sy)
		_, y1 := r.toCell(0, b.Bottom(), sx, sy)
		shift := int(math.Floor(b.X * sx))
		for y := y0; y < y1; y += 3 {
			for x := 0; x < s.Width(); x++ {
				if mod(x-shift+y*7, 13) == 0 {
					s.SetColored(x, y, '·', core.ColorGray)
				}
			}
		}
	}
}

func antGlyph(h core.Heading) rune {
	switch h {
	case core.HeadingNE:
		return '↗'
	case core.HeadingSE:
		return '↘'
	case core.HeadingSW:
		return '↙'
	case core.HeadingNW:
		return '↖'
	default:
		return '*'
	}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

var _ core.Renderer = (*SpriteRenderer)(nil)
