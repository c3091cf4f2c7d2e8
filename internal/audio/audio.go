// Package audio plays the game's named sound events through the
// system speaker. Tones are synthesized on the fly; there are no
// sample assets. Initialization failure leaves the game silent but
// fully playable.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/arpong/internal/game"
)

const sampleRate = beep.SampleRate(48000)

// Sink synthesizes a short tone per game event and feeds it to a
// shared mixer on the speaker.
type Sink struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewSink initializes the speaker and starts the mixer. The returned
// sink implements game.AudioSink.
func NewSink() (*Sink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}
	s := &Sink{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play schedules the tone for the given event.
func (s *Sink) Play(ev game.Sound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("audio: sink closed")
	}

	var t beep.Streamer
	switch ev {
	case game.SoundPaddle:
		t = newTone(880, 660, 60*time.Millisecond, 0.5)
	case game.SoundWall:
		t = newTone(440, 440, 40*time.Millisecond, 0.35)
	case game.SoundScore:
		t = beep.Seq(
			newTone(660, 660, 90*time.Millisecond, 0.5),
			newTone(990, 990, 140*time.Millisecond, 0.5),
		)
	case game.SoundWin:
		t = beep.Seq(
			newTone(523, 523, 130*time.Millisecond, 0.5),
			newTone(659, 659, 130*time.Millisecond, 0.5),
			newTone(784, 784, 130*time.Millisecond, 0.5),
			newTone(1047, 1047, 280*time.Millisecond, 0.55),
		)
	default:
		return fmt.Errorf("audio: unknown event %d", ev)
	}

	speaker.Lock()
	s.mixer.Add(t)
	speaker.Unlock()
	return nil
}

// Close silences the mixer. The speaker itself stays open; beep does
// not expose a teardown for it.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	return nil
}

// tone is a finite streamer sweeping from startHz to endHz with a
// linear decay envelope.
type tone struct {
	startHz, endHz float64
	volume         float64
	pos, total     int
	phase          float64
}

func newTone(startHz, endHz float64, dur time.Duration, volume float64) *tone {
	return &tone{
		startHz: startHz,
		endHz:   endHz,
		volume:  volume,
		total:   sampleRate.N(dur),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := len(samples)
	if remaining := t.total - t.pos; n > remaining {
		n = remaining
	}
	for i := 0; i < n; i++ {
		progress := float64(t.pos) / float64(t.total)
		freq := t.startHz + (t.endHz-t.startHz)*progress
		t.phase += 2 * math.Pi * freq / float64(sampleRate)
		v := math.Sin(t.phase) * t.volume * (1 - progress)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return n, true
}

func (t *tone) Err() error {
	return nil
}

var _ game.AudioSink = (*Sink)(nil)
