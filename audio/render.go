package audio

import (
	"errors"
	"fmt"
	"io"

	wav "github.com/youpy/go-wav"

	"kokesynth/pattern"
)

// ErrEmptyPattern is returned when a bounce is requested for a pattern
// with nothing in it. Callers check for it before touching the file
// system.
var ErrEmptyPattern = errors.New("pattern has no notes")

const (
	// exportGain scales each synthesized note before mixing.
	exportGain = 0.3
	// headroom is the peak level the final mix is normalized to, leaving
	// room below full scale for the 16-bit quantization.
	headroom = 0.8
)

// RenderConfig is a read-only snapshot of the engine settings used for an
// offline bounce.
type RenderConfig struct {
	SampleRate int
	Wave       Waveform
	Attack     float64 // seconds
	Decay      float64 // seconds
	Loops      int
}

// RenderPattern bounces a pattern to a mono sample buffer, repeating it
// Loops times. It reconstructs the real-time pipeline note by note with
// the same generator and envelope, so the two paths stay numerically
// consistent, but runs without deadlines and owns its output buffer
// privately. The result is normalized; quantize with Quantize.
func RenderPattern(pat pattern.Pattern, cfg RenderConfig) ([]float64, error) {
	if pat.Empty() {
		return nil, ErrEmptyPattern
	}
	return renderPattern(pat, cfg), nil
}

func renderPattern(pat pattern.Pattern, cfg RenderConfig) []float64 {
	if cfg.Loops < 1 {
		cfg.Loops = 1
	}
	rate := float64(cfg.SampleRate)
	stepDur := pat.StepDuration()
	stepSamples := stepDur * rate
	out := make([]float64, int(float64(pat.Steps*cfg.Loops)*stepSamples))

	attack := int(cfg.Attack * rate)
	decay := int(cfg.Decay * rate)

	synth := func(freq float64, numSamples, offset int) {
		if numSamples <= 0 {
			return
		}
		buf := make([]float64, numSamples)
		cfg.Wave.Generate(buf, freq, rate, 0)
		applyEnvelope(buf, 0, attack, decay, numSamples)
		mix(out, buf, offset, exportGain)
	}

	for loop := 0; loop < cfg.Loops; loop++ {
		loopStart := loop * pat.Steps
		for _, note := range pat.Notes() {
			synth(pattern.RowFrequency(note.Row),
				int(float64(note.Length)*stepSamples),
				int(float64(loopStart+note.Start)*stepSamples))
		}
		// Melody-curve notes are bounced too: the export contains what
		// live playback plays for the same pattern.
		for step := 0; step < pat.Steps; step++ {
			row, ok := pat.Melody.RowAt(float64(step))
			if !ok {
				continue
			}
			synth(pattern.InterpolateFrequency(row),
				int(0.8*stepSamples),
				int(float64(loopStart+step)*stepSamples))
		}
	}

	normalizeTo(out, headroom)
	return out
}

// mix adds src into dst at offset, clipped to dst's end.
func mix(dst, src []float64, offset int, gain float64) {
	if offset < 0 || offset >= len(dst) {
		return
	}
	n := min(len(src), len(dst)-offset)
	for i, s := range src[:n] {
		dst[offset+i] += s * gain
	}
}

// normalizeTo scales the buffer so its peak lands at target. A silent
// buffer is left untouched.
func normalizeTo(buf []float64, target float64) {
	var peak float64
	for _, s := range buf {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak == 0 {
		return
	}
	scale := target / peak
	for i := range buf {
		buf[i] *= scale
	}
}

// Quantize converts normalized samples to signed 16-bit PCM.
func Quantize(buf []float64) []int16 {
	out := make([]int16, len(buf))
	for i, s := range buf {
		out[i] = int16(s * 32767)
	}
	return out
}

// WriteWAV encodes mono 16-bit PCM at the given sample rate.
func WriteWAV(w io.Writer, pcm []int16, sampleRate int) error {
	enc := wav.NewWriter(w, uint32(len(pcm)), 1, uint32(sampleRate), 16)
	samples := make([]wav.Sample, len(pcm))
	for i, s := range pcm {
		samples[i].Values[0] = int(s)
	}
	if err := enc.WriteSamples(samples); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}
