package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(InputImpulse) {
		t.Fatal("empty frame should have no events")
	}

	f.Add(InputEvent{Kind: InputPointer, X: 10, Y: 20})
	f.Set(InputImpulse)
	f.Add(InputEvent{Kind: InputPointer, X: 30, Y: 40})

	if !f.Has(InputImpulse) {
		t.Error("frame should contain the impulse")
	}
	clicks := f.Of(InputPointer)
	if len(clicks) != 2 {
		t.Fatalf("expected 2 pointer events, got %d", len(clicks))
	}
	if clicks[0].X != 10 || clicks[1].Y != 40 {
		t.Errorf("pointer events out of order: %+v", clicks)
	}

	f.Clear()
	if f.Len() != 0 {
		t.Errorf("Clear left %d events", f.Len())
	}
}

func TestInputKindString(t *testing.T) {
	tests := map[InputKind]string{
		InputStart:     "Start",
		InputImpulse:   "Impulse",
		InputPointer:   "Pointer",
		InputRestart:   "Restart",
		InputKind(999): "Unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, expected %q", k, got, want)
		}
	}
}
