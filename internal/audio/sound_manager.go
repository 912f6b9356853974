// Package audio synthesizes the short sound cues of both games.
// Without an audio device every call is a no-op.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays cues through one shared mixer.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64 // in beep's log2 scale, 0 = unchanged
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize to open the device.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: -1,
	}
}

// Initialize opens the speaker. Safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted turns all cues off or back on.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Play starts the cue for kind and returns immediately.
func (sm *SoundManager) Play(kind core.SoundKind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	s := Streamer(kind)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: sm.volume})
	speaker.Unlock()
}

// Streamer returns a finite stream for the cue, or nil for unknown kinds.
func Streamer(kind core.SoundKind) beep.Streamer {
	switch kind {
	case core.SoundSmash:
		return beep.Take(sampleRate.N(120*time.Millisecond), newNoiseBurst(sampleRate, 1))
	case core.SoundComplete:
		// Rising C major arpeggio
		notes := []float64{523.25, 659.25, 783.99, 1046.50}
		parts := make([]beep.Streamer, len(notes))
		for i, f := range notes {
			parts[i] = newTone(sampleRate, f, 140*time.Millisecond)
		}
		return beep.Seq(parts...)
	case core.SoundFlap:
		return newSweep(sampleRate, 400, 900, 60*time.Millisecond)
	case core.SoundCrash:
		return newBuzz(sampleRate, 90, 250*time.Millisecond)
	default:
		return nil
	}
}
