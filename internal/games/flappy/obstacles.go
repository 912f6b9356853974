package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X         float64 // left edge
	W         float64
	GapTop    float64 // height of the top segment
	GapBottom float64 // y where the bottom segment starts
	Passed    bool    // trailing edge cleared the bird's leading edge
	Scored    bool    // the pass has been credited

	top, bottom core.Handle
}

// TopBox returns the collision box for the top segment.
func (p Pipe) TopBox() core.Box {
	return core.NewBox(p.X, 0, p.W, p.GapTop)
}

// BottomBox returns the collision box for the bottom segment.
func (p Pipe) BottomBox(playH float64) core.Box {
	return core.NewBox(p.X, p.GapBottom, p.W, playH-p.GapBottom)
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes   []*Pipe
	rng     *rand.Rand
	cfg     config.FlappyObstacles
	worldW  float64
	playH   float64
	counter int // ticks since the last spawn
	render  core.Renderer
}

// NewPipeManager creates a pipe manager with the given RNG seed.
func NewPipeManager(seed int64, cfg config.FlappyObstacles, worldW, playH float64, r core.Renderer) *PipeManager {
	return &PipeManager{
		pipes:  make([]*Pipe, 0, 8),
		rng:    rand.New(rand.NewSource(seed)),
		cfg:    cfg,
		worldW: worldW,
		playH:  playH,
		render: r,
	}
}

// Tick spawns a pipe on the cadence, moves every pipe left and drops the
// leading pipe once it is fully off screen.
func (pm *PipeManager) Tick() {
	pm.counter++
	if pm.counter >= pm.cfg.SpawnEvery {
		pm.counter = 0
		pm.spawn()
	}

	for _, p := range pm.pipes {
		p.X -= pm.cfg.Speed
		pm.sync(p)
	}

	if len(pm.pipes) > 0 && pm.pipes[0].X+pm.pipes[0].W < 0 {
		lead := pm.pipes[0]
		pm.render.MarkEntityRemoved(lead.top)
		pm.render.MarkEntityRemoved(lead.bottom)
		pm.pipes = pm.pipes[1:]
	}
}

// spawn creates a new pipe at the right edge with a random gap size and
// position inside the margins.
func (pm *PipeManager) spawn() {
	gap := pm.cfg.MinGapSize + pm.rng.Float64()*(pm.cfg.MaxGapSize-pm.cfg.MinGapSize)

	span := pm.playH - pm.cfg.BottomMargin - gap - pm.cfg.TopMargin
	if span < 0 {
		span = 0
	}
	top := pm.cfg.TopMargin + pm.rng.Float64()*span

	pm.add(pm.worldW, top, top+gap)
}

// add appends a pipe and creates its two sprites.
func (pm *PipeManager) add(x, gapTop, gapBottom float64) *Pipe {
	p := &Pipe{
		X:         x,
		W:         pm.cfg.PipeWidth,
		GapTop:    gapTop,
		GapBottom: gapBottom,
		top:       pm.render.CreateEntity(core.EntityPipeTop),
		bottom:    pm.render.CreateEntity(core.EntityPipeBottom),
	}
	pm.pipes = append(pm.pipes, p)
	pm.sync(p)
	return p
}

func (pm *PipeManager) sync(p *Pipe) {
	pm.render.UpdateEntityTransform(p.top, core.Transform{Box: p.TopBox()})
	pm.render.UpdateEntityTransform(p.bottom, core.Transform{Box: p.BottomBox(pm.playH)})
}

// Collides reports whether b overlaps either segment of any pipe.
func (pm *PipeManager) Collides(b core.Box) bool {
	for _, p := range pm.pipes {
		if core.Collides(b, p.TopBox()) || core.Collides(b, p.BottomBox(pm.playH)) {
			return true
		}
	}
	return false
}

// Score marks pipes whose trailing edge is left of leadingEdge as passed and
// returns how many passed pipes were credited for the first time.
func (pm *PipeManager) Score(leadingEdge float64) int {
	credited := 0
	for _, p := range pm.pipes {
		if !p.Passed && p.X+p.W < leadingEdge {
			p.Passed = true
		}
		if p.Passed && !p.Scored {
			p.Scored = true
			credited++
		}
	}
	return credited
}

// Clear removes every pipe and its sprites.
func (pm *PipeManager) Clear() {
	for _, p := range pm.pipes {
		pm.render.MarkEntityRemoved(p.top)
		pm.render.MarkEntityRemoved(p.bottom)
	}
	pm.pipes = pm.pipes[:0]
	pm.counter = 0
}

// Pipes returns the pipes currently on screen, leading pipe first.
func (pm *PipeManager) Pipes() []Pipe {
	out := make([]Pipe, len(pm.pipes))
	for i, p := range pm.pipes {
		out[i] = *p
	}
	return out
}
