package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/zengarden/host"
)

const (
	sampleRate = beep.SampleRate(44100)

	// DefaultGain is the cue volume relative to full scale
	DefaultGain = 0.5
)

// CuePlayer renders scene cues through the system speaker
// Until Initialize succeeds every cue is dropped
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	initialized bool

	muted   atomic.Bool
	played  atomic.Int64
	dropped atomic.Int64
}

var _ host.CuePlayer = (*CuePlayer)(nil)

// NewCuePlayer creates an uninitialized player at gain
func NewCuePlayer(gain float64) *CuePlayer {
	return &CuePlayer{
		mixer: &beep.Mixer{},
		gain:  gain,
	}
}

// Initialize opens the speaker and starts the mixer
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences pending cues and detaches from the speaker
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.initialized = false
}

// SetMuted drops cues while set
func (p *CuePlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports the mute state
func (p *CuePlayer) Muted() bool {
	return p.muted.Load()
}

// PlayCue implements host.CuePlayer; safe from the tick thread, never blocks on audio output
func (p *CuePlayer) PlayCue(cue host.Cue) {
	if p.muted.Load() {
		p.dropped.Add(1)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		p.dropped.Add(1)
		return
	}

	s := CueSound(cue, sampleRate, p.gain)
	if s == nil {
		p.dropped.Add(1)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played.Add(1)
}

// Stats returns played and dropped cue counts
func (p *CuePlayer) Stats() (played, dropped int64) {
	return p.played.Load(), p.dropped.Load()
}
