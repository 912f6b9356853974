package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func checkWorld(w WorldConfig) []error {
	var errs []error
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, invalidf("world must have positive area, got %gx%g", w.Width, w.Height))
	}
	return errs
}

// Validate reports every invalid field of the ant smasher configuration.
func (c AntsConfig) Validate() error {
	errs := checkWorld(c.World)

	col := c.Colony
	if col.Count < 0 {
		errs = append(errs, invalidf("colony.count must be >= 0, got %d", col.Count))
	}
	if col.Width <= 0 || col.Height <= 0 {
		errs = append(errs, invalidf("colony ant size must be positive, got %gx%g", col.Width, col.Height))
	}
	if col.Width >= c.World.Width || col.Height >= c.World.Height {
		errs = append(errs, invalidf("ant %gx%g does not fit world %gx%g", col.Width, col.Height, c.World.Width, c.World.Height))
	}
	if col.Speed < 0 {
		errs = append(errs, invalidf("colony.speed must be >= 0, got %g", col.Speed))
	}
	if col.SpawnAttempts <= 0 {
		errs = append(errs, invalidf("colony.spawn_attempts must be > 0, got %d", col.SpawnAttempts))
	}
	if c.Timing.TickInterval <= 0 {
		errs = append(errs, invalidf("timing.tick_interval must be > 0, got %s", c.Timing.TickInterval))
	}
	if c.Timing.RemovalDelay < 0 {
		errs = append(errs, invalidf("timing.removal_delay must be >= 0, got %s", c.Timing.RemovalDelay))
	}

	esc := c.Escalation
	if esc.Enabled {
		if esc.Every <= 0 {
			errs = append(errs, invalidf("escalation.every must be > 0, got %d", esc.Every))
		}
		if esc.Threshold < 0 {
			errs = append(errs, invalidf("escalation.threshold must be >= 0, got %d", esc.Threshold))
		}
		if esc.Factor <= 0 {
			errs = append(errs, invalidf("escalation.factor must be > 0, got %g", esc.Factor))
		}
	}

	return errors.Join(errs...)
}

// Validate reports every invalid field of the flappy configuration.
func (c FlappyConfig) Validate() error {
	errs := checkWorld(c.World)

	if c.Scenery.GroundHeight < 0 || c.PlayHeight() <= 0 {
		errs = append(errs, invalidf("scenery.ground_height %g leaves no playfield", c.Scenery.GroundHeight))
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		errs = append(errs, invalidf("player size must be positive, got %gx%g", p.Width, p.Height))
	}
	if p.X < 0 || p.X+p.Width > c.World.Width {
		errs = append(errs, invalidf("player.x %g is outside the world", p.X))
	}
	if p.Height >= c.PlayHeight() {
		errs = append(errs, invalidf("player height %g does not fit the playfield", p.Height))
	}
	if p.FlapFrames <= 0 {
		errs = append(errs, invalidf("player.flap_frames must be > 0, got %d", p.FlapFrames))
	}

	ph := c.Physics
	if ph.GravityBase <= 0 {
		errs = append(errs, invalidf("physics.gravity_base must be > 0, got %g", ph.GravityBase))
	}
	if ph.GravityStep < 0 {
		errs = append(errs, invalidf("physics.gravity_step must be >= 0, got %g", ph.GravityStep))
	}
	if ph.ImpulseVelocity >= 0 {
		errs = append(errs, invalidf("physics.impulse_velocity must be negative (up), got %g", ph.ImpulseVelocity))
	}

	o := c.Obstacles
	if o.PipeWidth <= 0 {
		errs = append(errs, invalidf("obstacles.pipe_width must be > 0, got %g", o.PipeWidth))
	}
	if o.MinGapSize <= p.Height || o.MaxGapSize < o.MinGapSize {
		errs = append(errs, invalidf("obstacles gap range [%g, %g] is invalid for player height %g", o.MinGapSize, o.MaxGapSize, p.Height))
	}
	if o.TopMargin < 0 || o.BottomMargin < 0 {
		errs = append(errs, invalidf("obstacles margins must be >= 0"))
	}
	if o.TopMargin+o.MaxGapSize+o.BottomMargin > c.PlayHeight() {
		errs = append(errs, invalidf("gap %g plus margins does not fit playfield height %g", o.MaxGapSize, c.PlayHeight()))
	}
	if o.Speed <= 0 {
		errs = append(errs, invalidf("obstacles.speed must be > 0, got %g", o.Speed))
	}
	if o.SpawnEvery <= 0 {
		errs = append(errs, invalidf("obstacles.spawn_every must be > 0, got %d", o.SpawnEvery))
	}

	if c.Timing.TickInterval <= 0 {
		errs = append(errs, invalidf("timing.tick_interval must be > 0, got %s", c.Timing.TickInterval))
	}

	return errors.Join(errs...)
}
