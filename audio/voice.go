package audio

import "sync"

// voice is one sounding note instance. The pool owns it for its entire
// lifetime; only renderBlock advances elapsed, and elapsed never exceeds
// total. The waveform kind is captured at trigger time, so changing the
// engine's current waveform never retunes a note that is already sounding.
type voice struct {
	freq    float64
	wave    Waveform
	volume  float64
	elapsed int
	total   int
	attack  int
	decay   int
}

func (v *voice) done() bool { return v.elapsed >= v.total }

// pool is the bounded collection of active voices. A single mutex
// serializes trigger against renderBlock; neither holds it for more than
// max voices worth of per-block work.
type pool struct {
	mu      sync.Mutex
	voices  []*voice
	max     int
	rate    float64
	scratch []float64
}

func newPool(max, blockSize int, sampleRate float64) *pool {
	return &pool{
		max:     max,
		rate:    sampleRate,
		scratch: make([]float64, blockSize),
	}
}

// trigger inserts a new voice, evicting the oldest-inserted one when the
// pool is full. Voices with a non-positive frequency or duration are
// dropped silently; they come from programmatic callers, not user input.
func (p *pool) trigger(v *voice) {
	if v.freq <= 0 || v.total <= 0 {
		return
	}
	p.mu.Lock()
	if len(p.voices) >= p.max {
		n := copy(p.voices, p.voices[1:])
		p.voices = p.voices[:n]
	}
	p.voices = append(p.voices, v)
	p.mu.Unlock()
}

// renderBlock mixes every active voice into dst and prunes voices that
// have played out. dst is accumulated into, not zeroed.
func (p *pool) renderBlock(dst []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	active := p.voices[:0]
	for _, v := range p.voices {
		n := min(len(dst), v.total-v.elapsed)
		if n > 0 {
			chunk := p.scratch[:n]
			v.wave.Generate(chunk, v.freq, p.rate, v.elapsed)
			applyEnvelope(chunk, v.elapsed, v.attack, v.decay, v.total)
			for i, s := range chunk {
				dst[i] += s * v.volume
			}
			v.elapsed += n
		}
		if !v.done() {
			active = append(active, v)
		}
	}
	p.voices = active
}

func (p *pool) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.voices)
}
