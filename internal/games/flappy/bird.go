package flappy

import "github.com/vovakirdan/tui-minigames/internal/core"

// Bird is the player-controlled entity. X never changes.
type Bird struct {
	core.Box
	VY      float64 // vertical velocity, positive = down
	Gravity float64 // grows every tick, reset on impulse
	Dead    bool
	Frame   int // wing animation frame, 0 or 1

	frameTicks int
	handle     core.Handle
}

// Impulse sets the upward velocity and resets gravity to its base.
func (b *Bird) Impulse(velocity, gravityBase float64) {
	b.VY = velocity
	b.Gravity = gravityBase
}

// Fall applies gravity to the velocity, moves the bird and grows gravity.
// There is no terminal velocity.
func (b *Bird) Fall(gravityStep float64) {
	b.VY += b.Gravity
	b.Y += b.VY
	b.Gravity += gravityStep
}

// Animate toggles the wing frame every framesPerWing ticks.
func (b *Bird) Animate(framesPerWing int) {
	b.frameTicks++
	if b.frameTicks >= framesPerWing {
		b.frameTicks = 0
		b.Frame ^= 1
	}
}
