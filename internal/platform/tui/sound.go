package tui

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	soundRate     = beep.SampleRate(48000)
	thunkDuration = 120 * time.Millisecond
	maxVoices     = 4
)

// Sound plays short effects on the local speaker. A nil or uninitialized
// Sound is silent, so callers never need to check.
type Sound struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
}

// NewSound creates a silent Sound. Call Init to open the speaker.
func NewSound() *Sound {
	return &Sound{mixer: &beep.Mixer{}}
}

// Init opens the audio device.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := speaker.Init(soundRate, soundRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

// Thunk plays the sound of a rock landing.
func (s *Sound) Thunk() {
	if s == nil {
		return
	}
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()
	if !ready {
		return
	}

	speaker.Lock()
	// Landings in quick succession would otherwise stack up into noise.
	if s.mixer.Len() < maxVoices {
		s.mixer.Add(beep.Take(soundRate.N(thunkDuration), newThudGenerator(soundRate)))
	}
	speaker.Unlock()
}

// Close silences the mixer.
func (s *Sound) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}

// thudGenerator is a low sine with a falling pitch, a little noise and a
// fast exponential decay.
type thudGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
}

func newThudGenerator(sr beep.SampleRate) *thudGenerator {
	return &thudGenerator{sr: sr, seed: 0x2545f491}
}

func (g *thudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 30)
		freq := 90 - 40*math.Min(t/thunkDuration.Seconds(), 1)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		sample := envelope * (0.6*math.Sin(2*math.Pi*freq*t) + 0.15*noise)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *thudGenerator) Err() error {
	return nil
}
