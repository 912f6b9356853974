package ants

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// ErrSpawnDensityExceeded is returned when an ant cannot be placed without
// overlapping the ants already placed within the attempt budget.
var ErrSpawnDensityExceeded = errors.New("ants: spawn density exceeded")

// Ant is one free-roaming entity.
type Ant struct {
	core.Box
	VX, VY  float64
	Heading core.Heading
	Smashed bool

	handle core.Handle
}

type removal struct {
	handle core.Handle
	atTick int
}

// Colony owns the live ants of a run and moves them one tick at a time.
type Colony struct {
	ants     []*Ant // live ants only, in spawn order
	pending  []removal
	bounds   core.Box
	antW     float64
	antH     float64
	speed    float64
	attempts int
	delay    int // ticks between smash and renderer removal
	tick     int
	rng      *rand.Rand
	render   core.Renderer
}

// ColonyOptions configures a colony.
type ColonyOptions struct {
	AntW, AntH    float64
	Speed         float64
	SpawnAttempts int
	RemovalTicks  int
}

// NewColony creates an empty colony inside bounds.
func NewColony(bounds core.Box, opts ColonyOptions, seed int64, r core.Renderer) *Colony {
	return &Colony{
		bounds:   bounds,
		antW:     opts.AntW,
		antH:     opts.AntH,
		speed:    opts.Speed,
		attempts: opts.SpawnAttempts,
		delay:    opts.RemovalTicks,
		rng:      rand.New(rand.NewSource(seed)),
		render:   r,
	}
}

// Spawn places count ants at uniformly random, non-overlapping positions
// within bounds. Each ant gets at most the configured number of attempts;
// running out returns ErrSpawnDensityExceeded with the ants placed so far
// kept in the colony.
func (c *Colony) Spawn(count int, bounds core.Box) error {
	c.bounds = bounds
	spanX := bounds.W - c.antW
	spanY := bounds.H - c.antH

	for i := 0; i < count; i++ {
		placed := false
		for attempt := 0; attempt < c.attempts; attempt++ {
			candidate := core.NewBox(
				bounds.X+c.rng.Float64()*spanX,
				bounds.Y+c.rng.Float64()*spanY,
				c.antW, c.antH,
			)
			if c.overlapsAny(candidate) {
				continue
			}
			c.add(candidate, c.speed*c.randomSign(), c.speed*c.randomSign())
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("%w: placed %d of %d ants after %d attempts",
				ErrSpawnDensityExceeded, i, count, c.attempts)
		}
	}
	return nil
}

func (c *Colony) randomSign() float64 {
	if c.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func (c *Colony) overlapsAny(b core.Box) bool {
	for _, a := range c.ants {
		if core.Collides(a.Box, b) {
			return true
		}
	}
	return false
}

// add creates an ant and its sprite.
func (c *Colony) add(b core.Box, vx, vy float64) *Ant {
	a := &Ant{
		Box:     b,
		VX:      vx,
		VY:      vy,
		Heading: core.HeadingFor(vx, vy, core.HeadingNone),
		handle:  c.render.CreateEntity(core.EntityAnt),
	}
	c.ants = append(c.ants, a)
	c.sync(a)
	return a
}

// Tick advances every live ant, bounces them off the walls and resolves
// ant-ant collisions by exchanging velocities.
func (c *Colony) Tick() {
	c.tick++

	for _, a := range c.ants {
		c.step(a)
	}

	for i := 0; i < len(c.ants); i++ {
		for j := i + 1; j < len(c.ants); j++ {
			a, b := c.ants[i], c.ants[j]
			if !core.Collides(a.Box, b.Box) {
				continue
			}
			a.VX, b.VX = b.VX, a.VX
			a.VY, b.VY = b.VY, a.VY
			// One extra step each to pull the pair apart
			c.step(a)
			c.step(b)
		}
	}

	for _, a := range c.ants {
		c.sync(a)
	}
	c.flushDue()
}

// step moves an ant by its velocity and reflects it off the playfield edges.
// The velocity sign is forced inward, so an ant pushed past a wall by a
// collision step cannot get stuck flipping back and forth.
func (c *Colony) step(a *Ant) {
	a.X += a.VX
	a.Y += a.VY

	if a.X <= c.bounds.X {
		a.VX = math.Abs(a.VX)
	} else if a.Right() >= c.bounds.Right() {
		a.VX = -math.Abs(a.VX)
	}
	if a.Y <= c.bounds.Y {
		a.VY = math.Abs(a.VY)
	} else if a.Bottom() >= c.bounds.Bottom() {
		a.VY = -math.Abs(a.VY)
	}

	a.Heading = core.HeadingFor(a.VX, a.VY, a.Heading)
}

func (c *Colony) sync(a *Ant) {
	c.render.UpdateEntityTransform(a.handle, core.Transform{
		Box:     a.Box,
		Heading: a.Heading,
		Dead:    a.Smashed,
	})
}

// SmashAt smashes the topmost live ant under the point and reports whether
// one was hit.
func (c *Colony) SmashAt(x, y float64) bool {
	for i := len(c.ants) - 1; i >= 0; i-- {
		if c.ants[i].Contains(x, y) {
			return c.MarkSmashed(c.ants[i])
		}
	}
	return false
}

// MarkSmashed flags the ant dead and takes it out of the live set at once.
// The sprite stays, drawn dead, until the removal delay has passed.
// Returns false if the ant was already smashed.
func (c *Colony) MarkSmashed(a *Ant) bool {
	if a.Smashed {
		return false
	}
	a.Smashed = true

	for i, live := range c.ants {
		if live == a {
			c.ants = append(c.ants[:i], c.ants[i+1:]...)
			break
		}
	}

	c.sync(a)
	c.render.PlaySound(core.SoundSmash)
	c.pending = append(c.pending, removal{handle: a.handle, atTick: c.tick + c.delay})
	return true
}

// flushDue removes the sprites whose delay has elapsed.
func (c *Colony) flushDue() {
	kept := c.pending[:0]
	for _, p := range c.pending {
		if c.tick >= p.atTick {
			c.render.MarkEntityRemoved(p.handle)
			continue
		}
		kept = append(kept, p)
	}
	c.pending = kept
}

// FlushRemovals removes every pending smashed sprite immediately.
// Used when the run ends and no further ticks will arrive.
func (c *Colony) FlushRemovals() {
	for _, p := range c.pending {
		c.render.MarkEntityRemoved(p.handle)
	}
	c.pending = c.pending[:0]
}

// Clear removes every sprite the colony still owns.
func (c *Colony) Clear() {
	for _, a := range c.ants {
		c.render.MarkEntityRemoved(a.handle)
	}
	c.ants = c.ants[:0]
	c.FlushRemovals()
}

// Escalate multiplies every live ant's velocity by factor.
func (c *Colony) Escalate(factor float64) {
	for _, a := range c.ants {
		a.VX *= factor
		a.VY *= factor
	}
}

// Live returns the number of ants not yet smashed.
func (c *Colony) Live() int {
	return len(c.ants)
}

// Ants returns a snapshot of the live ants.
func (c *Colony) Ants() []Ant {
	out := make([]Ant, len(c.ants))
	for i, a := range c.ants {
		out[i] = *a
	}
	return out
}

// PendingRemovals returns the number of smashed sprites still on screen.
func (c *Colony) PendingRemovals() int {
	return len(c.pending)
}
