package audio

import (
	"math"
	"testing"
)

func testVoice(freq float64, total int) *voice {
	return &voice{freq: freq, wave: Square, volume: voiceVolume, total: total}
}

func TestPoolBounded(t *testing.T) {
	p := newPool(4, 64, testRate)
	for i := 0; i < 20; i++ {
		p.trigger(testVoice(440, 1000))
		if n := p.count(); n > 4 {
			t.Fatalf("pool grew to %d voices, limit is 4", n)
		}
	}
}

func TestPoolEvictsOldest(t *testing.T) {
	p := newPool(4, 64, testRate)
	for i := 1; i <= 5; i++ {
		p.trigger(testVoice(float64(i*100), 1000))
	}
	want := []float64{200, 300, 400, 500}
	if len(p.voices) != len(want) {
		t.Fatalf("got %d voices, want %d", len(p.voices), len(want))
	}
	for i, v := range p.voices {
		if v.freq != want[i] {
			t.Errorf("voice %d: freq %v, want %v", i, v.freq, want[i])
		}
	}
}

func TestPoolRejectsInvalidVoices(t *testing.T) {
	p := newPool(4, 64, testRate)
	p.trigger(testVoice(0, 1000))
	p.trigger(testVoice(-440, 1000))
	p.trigger(testVoice(440, 0))
	p.trigger(testVoice(440, -10))
	if n := p.count(); n != 0 {
		t.Errorf("invalid voices were admitted: count %d", n)
	}
}

func TestPoolPrunesFinishedVoices(t *testing.T) {
	p := newPool(4, 64, testRate)
	p.trigger(testVoice(440, 100))
	dst := make([]float64, 64)

	p.renderBlock(dst)
	if p.voices[0].elapsed != 64 {
		t.Errorf("elapsed after one block: %d, want 64", p.voices[0].elapsed)
	}
	p.renderBlock(dst)
	if n := p.count(); n != 0 {
		t.Errorf("finished voice not pruned: count %d", n)
	}
}

func TestPoolRenderAccumulates(t *testing.T) {
	p := newPool(4, 64, testRate)
	v := &voice{freq: 441, wave: Sine, volume: 0.3, total: 1000}
	p.trigger(v)
	dst := make([]float64, 64)
	p.renderBlock(dst)
	for i := range dst {
		want := 0.3 * math.Sin(twoPi*441*float64(i)/testRate)
		if math.Abs(dst[i]-want) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, dst[i], want)
		}
	}
}

func TestPoolRenderMixesVoices(t *testing.T) {
	p := newPool(4, 64, testRate)
	p.trigger(&voice{freq: 441, wave: Sine, volume: 0.3, total: 1000})
	p.trigger(&voice{freq: 441, wave: Sine, volume: 0.3, total: 1000})
	dst := make([]float64, 64)
	p.renderBlock(dst)

	single := make([]float64, 64)
	Sine.Generate(single, 441, testRate, 0)
	for i := range dst {
		want := 2 * 0.3 * single[i]
		if math.Abs(dst[i]-want) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, dst[i], want)
		}
	}
}
