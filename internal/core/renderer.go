package core

// Handle identifies an entity the renderer is drawing.
type Handle uint64

// EntityKind selects the sprite the renderer uses for an entity.
type EntityKind int

const (
	EntityAnt EntityKind = iota
	EntityBird
	EntityPipeTop
	EntityPipeBottom
	EntityGround     // scrolling ground strip, X carries the scroll offset
	EntityBackground // scrolling backdrop, X carries the scroll offset
)

// Heading is one of the four diagonal orientations an ant can face.
type Heading int

const (
	HeadingNone Heading = iota // no rotation
	HeadingNE
	HeadingSE
	HeadingSW
	HeadingNW
)

// Degrees returns the clockwise rotation of the heading.
func (h Heading) Degrees() int {
	switch h {
	case HeadingNE:
		return 45
	case HeadingSE:
		return 135
	case HeadingSW:
		return 225
	case HeadingNW:
		return 315
	default:
		return 0
	}
}

// HeadingFor derives the heading from the velocity signs (screen y grows
// downwards). When either component is zero prev is kept.
func HeadingFor(vx, vy float64, prev Heading) Heading {
	switch {
	case vx < 0 && vy < 0:
		return HeadingNW
	case vx < 0 && vy > 0:
		return HeadingSW
	case vx > 0 && vy > 0:
		return HeadingSE
	case vx > 0 && vy < 0:
		return HeadingNE
	default:
		return prev
	}
}

// Transform is everything the renderer needs to place an entity.
type Transform struct {
	Box
	Heading Heading // HeadingNone when the sprite is not rotated
	Frame   int     // animation frame
	Dead    bool    // draw the dead variant of the sprite
}

// SoundKind is a fire-and-forget audio cue.
type SoundKind int

const (
	SoundSmash SoundKind = iota
	SoundComplete
	SoundFlap
	SoundCrash
)

// Renderer is the presentation collaborator the games and the controller
// call into. Implementations must not block.
type Renderer interface {
	CreateEntity(kind EntityKind) Handle
	UpdateEntityTransform(h Handle, t Transform)
	MarkEntityRemoved(h Handle)

	ShowScore(value int)
	ShowHighScore(value int)
	ShowMode(m Mode)
	ShowMessage(msg string)

	// PlaySound failures are ignored.
	PlaySound(kind SoundKind)

	// OnInput registers cb for inputs of the given kind. The returned
	// function removes the registration.
	OnInput(kind InputKind, cb func(InputEvent)) (unregister func())
}

// NopRenderer discards everything. Handles are still unique.
type NopRenderer struct {
	next Handle
}

func (r *NopRenderer) CreateEntity(EntityKind) Handle {
	r.next++
	return r.next
}

func (r *NopRenderer) UpdateEntityTransform(Handle, Transform) {}
func (r *NopRenderer) MarkEntityRemoved(Handle)                {}
func (r *NopRenderer) ShowScore(int)                           {}
func (r *NopRenderer) ShowHighScore(int)                       {}
func (r *NopRenderer) ShowMode(Mode)                           {}
func (r *NopRenderer) ShowMessage(string)                      {}
func (r *NopRenderer) PlaySound(SoundKind)                     {}

func (r *NopRenderer) OnInput(InputKind, func(InputEvent)) func() {
	return func() {}
}

var _ Renderer = (*NopRenderer)(nil)
