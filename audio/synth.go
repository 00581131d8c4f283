package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	DefaultGain       = 0.7

	// A4, the note a spawn plays
	SpawnNote     = 69
	SpawnDuration = 2000 * time.Millisecond

	attack  = 10 * time.Millisecond
	release = 400 * time.Millisecond
)

// NotePlayer plays a MIDI note for a duration without blocking.
type NotePlayer interface {
	PlayNote(note int, duration time.Duration) error
}

// Nop is the NotePlayer used when audio is disabled
type Nop struct{}

func (Nop) PlayNote(int, time.Duration) error { return nil }

// NoteToFrequency converts a MIDI note number to Hz, A4 (69) being 440Hz
func NoteToFrequency(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-69)/12.0)
}

// Synth mixes sine notes onto the speaker.
type Synth struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	gain        float64
	mixer       *beep.Mixer
	initialized bool
}

func NewSynth(rate beep.SampleRate, gain float64) *Synth {
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	return &Synth{
		rate:  rate,
		gain:  gain,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "audio: speaker init")
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences every playing note
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Note builds the streamer for one note: a sine tone shaped by a short
// attack and a linear release, scaled by the synth gain.
func (s *Synth) Note(note int, duration time.Duration) (beep.Streamer, error) {
	if duration <= 0 {
		return nil, errors.Errorf("audio: non-positive note duration %v", duration)
	}

	tone, err := generators.SineTone(s.rate, NoteToFrequency(note))
	if err != nil {
		return nil, errors.Wrapf(err, "audio: note %d", note)
	}

	shaped := newEnvelope(beep.Take(s.rate.N(duration), tone), duration, s.rate)

	return &effects.Gain{Streamer: shaped, Gain: s.gain - 1}, nil
}

// PlayNote adds the note to the mixer. It does nothing before Initialize.
func (s *Synth) PlayNote(note int, duration time.Duration) error {
	streamer, err := s.Note(note, duration)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()

	return nil
}

type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	total        int
}

func newEnvelope(streamer beep.Streamer, duration time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	att := min(rate.N(attack), total/2)
	rel := min(rate.N(release), total-att)

	return &envelope{
		streamer:     streamer,
		attack:       att,
		releaseStart: total - rel,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		} else if e.position >= e.releaseStart && e.total > e.releaseStart {
			vol = float64(e.total-e.position) / float64(e.total-e.releaseStart)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
