package audio

import (
	"math"
	"math/rand"
)

const twoPi = 2 * math.Pi

// Waveform selects the oscillator shape used to synthesize a voice.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
	Pulse
	Noise
)

var waveformNames = map[string]Waveform{
	"sine":     Sine,
	"square":   Square,
	"sawtooth": Sawtooth,
	"triangle": Triangle,
	"pulse":    Pulse,
	"noise":    Noise,
}

// ParseWaveform maps a name to its waveform kind. Unknown names fall back
// to a sine wave rather than failing.
func ParseWaveform(name string) Waveform {
	if w, ok := waveformNames[name]; ok {
		return w
	}
	return Sine
}

func (w Waveform) String() string {
	switch w {
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	case Pulse:
		return "pulse"
	case Noise:
		return "noise"
	default:
		return "sine"
	}
}

// Generate fills dst with samples of the waveform at the given frequency.
// Sample i is evaluated at t = (phase+i)/sampleRate, so a voice rendered
// in block-sized chunks across callbacks resumes exactly where the
// previous chunk left off. All output lies in [-1, 1]. Noise is the only
// non-deterministic kind.
func (w Waveform) Generate(dst []float64, freq, sampleRate float64, phase int) {
	sample := w.fn(freq, sampleRate)
	for i := range dst {
		dst[i] = sample(phase + i)
	}
}

func (w Waveform) fn(freq, sampleRate float64) func(i int) float64 {
	at := func(i int) float64 { return float64(i) / sampleRate }
	switch w {
	case Square:
		return func(i int) float64 {
			return sign(math.Sin(twoPi * freq * at(i)))
		}
	case Sawtooth:
		return func(i int) float64 {
			ft := freq * at(i)
			return 2 * (ft - math.Floor(ft+0.5))
		}
	case Triangle:
		return func(i int) float64 {
			ft := freq * at(i)
			return 2*math.Abs(2*(ft-math.Floor(ft+0.5))) - 1
		}
	case Pulse:
		// 25% duty cycle
		return func(i int) float64 {
			if math.Sin(twoPi*freq*at(i)) > 0.5 {
				return 1
			}
			return -1
		}
	case Noise:
		return func(int) float64 {
			return rand.Float64()*2 - 1
		}
	default:
		return func(i int) float64 {
			return math.Sin(twoPi * freq * at(i))
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
