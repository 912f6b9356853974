package core

import "testing"

func TestHeadingFor(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy float64
		prev   Heading
		want   Heading
		deg    int
	}{
		{"up-left", -1, -1, HeadingNone, HeadingNW, 315},
		{"down-left", -1, 1, HeadingNone, HeadingSW, 225},
		{"down-right", 3, 3, HeadingNone, HeadingSE, 135},
		{"up-right", 1, -2, HeadingNone, HeadingNE, 45},
		{"zero x keeps previous", 0, 1, HeadingNE, HeadingNE, 45},
		{"still keeps none", 0, 0, HeadingNone, HeadingNone, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HeadingFor(tc.vx, tc.vy, tc.prev)
			if got != tc.want {
				t.Errorf("HeadingFor(%v, %v) = %v, expected %v", tc.vx, tc.vy, got, tc.want)
			}
			if got.Degrees() != tc.deg {
				t.Errorf("Degrees() = %d, expected %d", got.Degrees(), tc.deg)
			}
		})
	}
}

func TestNopRendererHandlesUnique(t *testing.T) {
	var r NopRenderer
	a := r.CreateEntity(EntityAnt)
	b := r.CreateEntity(EntityAnt)
	if a == b {
		t.Errorf("handles should be unique, both %d", a)
	}
	r.OnInput(InputPointer, func(InputEvent) {})() // unregister must be callable
}
