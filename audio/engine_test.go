package audio

import (
	"math"
	"testing"
)

func testEngine() *Engine {
	return newEngine(Config{SampleRate: testRate, BlockSize: 256, MaxVoices: 4})
}

func TestNormalizeScalesHotBlocks(t *testing.T) {
	buf := []float64{0.5, -2.0, 1.5, 0}
	normalize(buf)
	var peak float64
	for _, s := range buf {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak != 1 {
		t.Errorf("peak after normalize: %v, want 1", peak)
	}
	if buf[0] != 0.25 {
		t.Errorf("sample 0: got %v, want 0.25", buf[0])
	}
}

func TestNormalizeLeavesQuietBlocksAlone(t *testing.T) {
	buf := []float64{0.1, -0.4, 0.9}
	want := []float64{0.1, -0.4, 0.9}
	normalize(buf)
	for i := range buf {
		if buf[i] != want[i] {
			t.Errorf("sample %d changed: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.SampleRate != DefaultSampleRate || cfg.BlockSize != DefaultBlockSize || cfg.MaxVoices != DefaultMaxVoices {
		t.Errorf("zero config not defaulted: %+v", cfg)
	}
	cfg = Config{SampleRate: 48000, BlockSize: 512, MaxVoices: 8}.withDefaults()
	if cfg.SampleRate != 48000 || cfg.BlockSize != 512 || cfg.MaxVoices != 8 {
		t.Errorf("explicit config overridden: %+v", cfg)
	}
}

func TestProcessRendersTriggeredVoice(t *testing.T) {
	e := testEngine()
	e.Trigger(440, 1)

	out := make([]float32, 256)
	e.process(out)

	var sounding bool
	for _, s := range out {
		if s != 0 {
			sounding = true
		}
		if a := math.Abs(float64(s)); a > masterGain {
			t.Fatalf("output sample %v exceeds master gain %v", s, masterGain)
		}
	}
	if !sounding {
		t.Error("triggered voice produced silence")
	}
}

// Changing the waveform must not retune voices already sounding.
func TestTriggerCapturesWaveform(t *testing.T) {
	e := testEngine()
	e.Trigger(440, 1)
	if err := e.Set(PropWave, "sine"); err != nil {
		t.Fatal(err)
	}

	out := make([]float32, 256)
	e.process(out)

	rc := e.RenderConfig()
	want := make([]float64, 256)
	Square.Generate(want, 440, testRate, 0)
	applyEnvelope(want, 0, int(rc.Attack*testRate), int(rc.Decay*testRate), testRate)
	for i := range want {
		w := float32(want[i] * voiceVolume * masterGain)
		if math.Abs(float64(out[i]-w)) > 1e-6 {
			t.Fatalf("sample %d: got %v, want square render %v", i, out[i], w)
		}
	}
}

func TestTriggerIgnoresInvalidNotes(t *testing.T) {
	e := testEngine()
	e.Trigger(0, 1)
	e.Trigger(440, 0)
	e.Trigger(-1, -1)
	if n := e.pool.count(); n != 0 {
		t.Errorf("invalid triggers created %d voices", n)
	}
}

func TestPropValidation(t *testing.T) {
	e := testEngine()
	tests := []struct {
		prop  string
		value interface{}
		ok    bool
	}{
		{PropWave, "sawtooth", true},
		{PropWave, "kazoo", false},
		{PropAttack, 0.01, true},
		{PropAttack, 0.0001, false},
		{PropAttack, 1.0, false},
		{PropDecay, 0.02, true},
		{PropDecay, 3.0, false},
	}
	for _, tt := range tests {
		err := e.Set(tt.prop, tt.value)
		if tt.ok && err != nil {
			t.Errorf("Set(%s, %v): unexpected error %v", tt.prop, tt.value, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("Set(%s, %v): invalid value accepted", tt.prop, tt.value)
		}
	}
}

func TestRenderConfigSnapshot(t *testing.T) {
	e := testEngine()
	if err := e.Set(PropWave, "triangle"); err != nil {
		t.Fatal(err)
	}
	if err := e.Set(PropAttack, 0.01); err != nil {
		t.Fatal(err)
	}
	rc := e.RenderConfig()
	if rc.Wave != Triangle || rc.Attack != 0.01 || rc.SampleRate != testRate {
		t.Errorf("snapshot does not reflect settings: %+v", rc)
	}
}
