package tui

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

const sampleRate = beep.SampleRate(48000)

// Cue is a short audible event.
type Cue int

const (
	CueKill Cue = iota
	CueEscape
	CueCleared
	CueDefeated
)

func (c Cue) String() string {
	switch c {
	case CueKill:
		return "kill"
	case CueEscape:
		return "escape"
	case CueCleared:
		return "cleared"
	case CueDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// CuePlayer plays cues. The App never blocks on it.
type CuePlayer interface {
	Play(c Cue)
}

// cuesFor maps sim-log entries to cues, at most one of each kind in order of
// first occurrence so a burst of kills is one click.
func cuesFor(entries []game.SimLogEntry) []Cue {
	var out []Cue
	seen := map[Cue]bool{}
	for _, e := range entries {
		var c Cue
		switch {
		case e.Category == "economy" && e.Key == "kill":
			c = CueKill
		case e.Category == "enemy" && e.Key == "escaped":
			c = CueEscape
		case e.Category == "wave" && e.Key == "cleared":
			c = CueCleared
		case e.Category == "state" && e.Key == "defeated":
			c = CueDefeated
		default:
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// SoundManager plays cues as synthesized tones through the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager; call Initialize before use.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Playing before a successful Initialize is a no-op.
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

// Cleanup silences anything still queued.
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

// Play queues the tone for c.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	freq, dur := toneFor(c)
	s := beep.Take(sampleRate.N(dur), newTone(sampleRate, freq))
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func toneFor(c Cue) (float64, time.Duration) {
	switch c {
	case CueKill:
		return 880, 40 * time.Millisecond
	case CueEscape:
		return 180, 150 * time.Millisecond
	case CueCleared:
		return 660, 200 * time.Millisecond
	default:
		return 110, 400 * time.Millisecond
	}
}

// tone is a sine with a short attack so clicks don't pop.
type tone struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newTone(sr beep.SampleRate, freq float64) *tone {
	return &tone{sr: sr, freq: freq}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Min(t/0.005, 1.0)
		v := 0.25 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }
