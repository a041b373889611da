package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) (samples [][2]float64) {
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		samples = append(samples, buf[:n]...)
		if !ok {
			return samples
		}
	}
}

func TestSweep_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewSweep([]float64{200, 400}, 100*time.Millisecond, rate)

	got := drain(s)
	if want := rate.N(100 * time.Millisecond); len(got) != want {
		t.Fatalf("expected %d samples, got %d", want, len(got))
	}
	for i, v := range got {
		if v[0] < -1 || v[0] > 1 || v[0] != v[1] {
			t.Fatalf("sample %d out of range or unbalanced: %v", i, v)
		}
	}
	if err := s.Err(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestSweep_FrequencyGlide(t *testing.T) {
	s := &sweep{freqs: []float64{100, 300, 200}}
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 100},
		{0.25, 200},
		{0.5, 300},
		{0.75, 250},
		{1, 200},
	}
	for _, tt := range tests {
		if got := s.freqAt(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("t=%v: expected %v, got %v", tt.t, tt.want, got)
		}
	}
}

func TestEnvelope_RampsToSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewSweep([]float64{50}, time.Second, rate), d, 10*time.Millisecond, 20*time.Millisecond, rate)

	got := drain(env)
	if len(got) != 100 {
		t.Fatalf("expected envelope to cut the stream at 100 samples, got %d", len(got))
	}
	if got[0][0] != 0 {
		t.Errorf("expected silent first sample, got %v", got[0][0])
	}
	if last := math.Abs(got[len(got)-1][0]); last > 0.06 {
		t.Errorf("expected near silent tail, got %v", last)
	}
}

func TestCues_NonEmpty(t *testing.T) {
	rate := beep.SampleRate(8000)
	for name, s := range map[string]beep.Streamer{
		"meow":  Meow(rate, 0.5),
		"thump": Thump(rate, 0.5),
		"chirp": Chirp(rate, 0.5),
	} {
		got := drain(s)
		if len(got) == 0 {
			t.Errorf("%s: expected samples", name)
		}
		peak := 0.0
		for _, v := range got {
			peak = max(peak, math.Abs(v[0]))
		}
		if peak == 0 || peak > 0.51 {
			t.Errorf("%s: expected peak in (0, 0.5], got %v", name, peak)
		}
	}
}

func TestSilentVolume(t *testing.T) {
	got := drain(Thump(beep.SampleRate(8000), 0))
	for _, v := range got {
		if v[0] != 0 {
			t.Fatalf("expected silence at zero volume, got %v", v[0])
		}
	}
}

func TestSoundManager_Cooldown(t *testing.T) {
	sm := NewSoundManager(1)
	clock := time.Unix(100, 0)
	sm.now = func() time.Time { return clock }

	if !sm.admit(CueMeow) {
		t.Fatal("expected first meow admitted")
	}
	if sm.admit(CueMeow) {
		t.Error("expected repeat within cooldown rejected")
	}
	if !sm.admit(CueChirp) {
		t.Error("expected other cue admitted")
	}
	clock = clock.Add(cueCooldown)
	if !sm.admit(CueMeow) {
		t.Error("expected meow admitted after cooldown")
	}
}

func TestSoundManager_UninitializedIsSilent(t *testing.T) {
	sm := NewSoundManager(1)
	if sm.Play(CueMeow, 1) {
		t.Error("expected uninitialized manager to drop cues")
	}
	sm.Cleanup()
}
