package audio

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// TestSoundManagerGracefulDegradation verifies playback is a no-op before Initialize
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for _, kind := range []core.SoundKind{core.SoundSmash, core.SoundComplete, core.SoundFlap, core.SoundCrash} {
		sm.Play(kind)
	}
	sm.SetMuted(true)
	sm.Play(core.SoundFlap)
	sm.Cleanup()
}

// TestSoundManagerInitialization may fail without an audio device; that is fine.
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got: %v", err)
	}
	sm.Play(core.SoundSmash)
	sm.Cleanup()
}

func TestStreamersAreFinite(t *testing.T) {
	tests := []struct {
		kind    core.SoundKind
		maxTime time.Duration
	}{
		{core.SoundSmash, 150 * time.Millisecond},
		{core.SoundComplete, 600 * time.Millisecond},
		{core.SoundFlap, 100 * time.Millisecond},
		{core.SoundCrash, 300 * time.Millisecond},
	}

	for _, tt := range tests {
		s := Streamer(tt.kind)
		if s == nil {
			t.Fatalf("Streamer(%d) = nil", tt.kind)
		}

		buf := make([][2]float64, 512)
		total := 0
		limit := sampleRate.N(tt.maxTime)
		for {
			n, ok := s.Stream(buf)
			for _, smp := range buf[:n] {
				if math.IsNaN(smp[0]) || math.Abs(smp[0]) > 1 || smp[0] != smp[1] {
					t.Fatalf("kind %d: bad sample %v", tt.kind, smp)
				}
			}
			total += n
			if !ok {
				break
			}
			if total > limit {
				t.Fatalf("kind %d: still streaming after %s", tt.kind, tt.maxTime)
			}
		}
		if total == 0 {
			t.Errorf("kind %d produced no samples", tt.kind)
		}
	}
}

func TestStreamerUnknownKind(t *testing.T) {
	if Streamer(core.SoundKind(99)) != nil {
		t.Error("unknown kind should have no streamer")
	}
}
