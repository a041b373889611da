package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/clowder/systems"
)

const sampleRate = beep.SampleRate(44100)

// Minimum spacing between two cues of the same kind.
const cueCooldown = 120 * time.Millisecond

// Cue identifies one kind of sound.
type Cue int

const (
	CueMeow Cue = iota
	CueThump
	CueChirp
	cueCount
)

// SoundManager mixes colony cues onto the speaker. A manager that was never
// initialized, or whose init failed, ignores every call.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	last        [cueCount]time.Time
	now         func() time.Time
}

// NewSoundManager creates a manager with a master volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: max(0, min(volume, 1)),
		now:    time.Now,
	}
}

// Initialize opens the speaker and starts the mixer.
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

// Cleanup stops all cues and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues cue unless the same cue played within the cooldown. It
// reports whether the cue was queued.
func (sm *SoundManager) Play(cue Cue, intensity float64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || cue < 0 || cue >= cueCount {
		return false
	}
	if !sm.admit(cue) {
		return false
	}

	vol := sm.volume * max(0, min(intensity, 1))
	var s beep.Streamer
	switch cue {
	case CueMeow:
		s = Meow(sampleRate, vol)
	case CueThump:
		s = Thump(sampleRate, vol)
	case CueChirp:
		s = Chirp(sampleRate, vol)
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

// admit applies the per-cue cooldown. Caller holds mu.
func (sm *SoundManager) admit(cue Cue) bool {
	t := sm.now()
	if !sm.last[cue].IsZero() && t.Sub(sm.last[cue]) < cueCooldown {
		return false
	}
	sm.last[cue] = t
	return true
}

// Landing plays a thump for the hardest impact in events.
func (sm *SoundManager) Landing(events []systems.BounceEvent) {
	hardest := float32(0)
	for _, ev := range events {
		hardest = max(hardest, ev.Intensity)
	}
	if hardest > 0 {
		sm.Play(CueThump, float64(hardest))
	}
}
