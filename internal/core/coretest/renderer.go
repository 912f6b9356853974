// Package coretest provides a recording core.Renderer for tests.
package coretest

import (
	"sync"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// Sprite is the last known state of an entity.
type Sprite struct {
	Kind      core.EntityKind
	Transform core.Transform
	Removed   bool
}

// Renderer records every call made through the core.Renderer interface.
// It is safe for concurrent use.
type Renderer struct {
	mu        sync.Mutex
	next      core.Handle
	sprites   map[core.Handle]*Sprite
	callbacks map[core.InputKind]map[int]func(core.InputEvent)
	nextCB    int

	Scores     []int
	HighScores []int
	Modes      []core.Mode
	Messages   []string
	Sounds     []core.SoundKind
}

// NewRenderer creates an empty recorder.
func NewRenderer() *Renderer {
	return &Renderer{
		sprites:   make(map[core.Handle]*Sprite),
		callbacks: make(map[core.InputKind]map[int]func(core.InputEvent)),
	}
}

func (r *Renderer) CreateEntity(kind core.EntityKind) core.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.sprites[r.next] = &Sprite{Kind: kind}
	return r.next
}

func (r *Renderer) UpdateEntityTransform(h core.Handle, t core.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sprites[h]; ok {
		s.Transform = t
	}
}

func (r *Renderer) MarkEntityRemoved(h core.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sprites[h]; ok {
		s.Removed = true
	}
}

func (r *Renderer) ShowScore(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scores = append(r.Scores, v)
}

func (r *Renderer) ShowHighScore(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.HighScores = append(r.HighScores, v)
}

func (r *Renderer) ShowMode(m core.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Modes = append(r.Modes, m)
}

func (r *Renderer) ShowMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, msg)
}

func (r *Renderer) PlaySound(kind core.SoundKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sounds = append(r.Sounds, kind)
}

func (r *Renderer) OnInput(kind core.InputKind, cb func(core.InputEvent)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.callbacks[kind] == nil {
		r.callbacks[kind] = make(map[int]func(core.InputEvent))
	}
	r.nextCB++
	id := r.nextCB
	r.callbacks[kind][id] = cb
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.callbacks[kind], id)
	}
}

// Fire delivers an event to every callback bound to its kind and reports
// whether any callback was bound.
func (r *Renderer) Fire(ev core.InputEvent) bool {
	r.mu.Lock()
	cbs := make([]func(core.InputEvent), 0, len(r.callbacks[ev.Kind]))
	for _, cb := range r.callbacks[ev.Kind] {
		cbs = append(cbs, cb)
	}
	r.mu.Unlock()

	for _, cb := range cbs {
		cb(ev)
	}
	return len(cbs) > 0
}

// Bound returns the number of callbacks registered for kind.
func (r *Renderer) Bound(kind core.InputKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.callbacks[kind])
}

// Sprite returns a copy of the recorded sprite.
func (r *Renderer) Sprite(h core.Handle) (Sprite, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sprites[h]
	if !ok {
		return Sprite{}, false
	}
	return *s, true
}

// Live counts sprites of the given kind not yet removed.
func (r *Renderer) Live(kind core.EntityKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sprites {
		if s.Kind == kind && !s.Removed {
			n++
		}
	}
	return n
}

// CountSound returns how many times kind was played.
func (r *Renderer) CountSound(kind core.SoundKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.Sounds {
		if s == kind {
			n++
		}
	}
	return n
}

var _ core.Renderer = (*Renderer)(nil)
