package audio

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 2048
	DefaultMaxVoices  = 16

	// masterGain is applied to every output block after normalization.
	masterGain = 0.5
	// voiceVolume is the fixed per-voice level before mixing.
	voiceVolume = 0.3
)

// Property keys for the engine's mutable settings. They take effect for
// voices created after the change.
const (
	PropWave   = "osc.wave"
	PropAttack = "env.attack"
	PropDecay  = "env.decay"
)

// Config fixes the engine parameters that cannot change while the output
// stream is running.
type Config struct {
	SampleRate int
	BlockSize  int
	MaxVoices  int
}

func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.BlockSize <= 0 {
		c.BlockSize = DefaultBlockSize
	}
	if c.MaxVoices <= 0 {
		c.MaxVoices = DefaultMaxVoices
	}
	return c
}

// Engine owns the voice pool and the mono output stream. All mutable
// settings live in the props registry and are read once per trigger.
type Engine struct {
	*Props
	cfg    Config
	pool   *pool
	buf    []float64
	stream *portaudio.Stream

	wave   *atomic.Value
	attack *atomic.Value
	decay  *atomic.Value
}

// NewEngine initializes portaudio and opens the default output device.
// The instrument cannot operate without one, so any failure here is
// returned immediately instead of degrading silently.
func NewEngine(cfg Config) (*Engine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	e := newEngine(cfg)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(e.cfg.SampleRate), e.cfg.BlockSize, e.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open output stream: %w", err)
	}
	e.stream = stream
	return e, nil
}

func newEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	props := NewProps()
	return &Engine{
		Props:  props,
		cfg:    cfg,
		pool:   newPool(cfg.MaxVoices, cfg.BlockSize, float64(cfg.SampleRate)),
		buf:    make([]float64, cfg.BlockSize),
		wave:   props.MustRegister(PropWave, setWaveform, "square"),
		attack: props.MustRegister(PropAttack, setSeconds(0.001, 0.5), 0.05),
		decay:  props.MustRegister(PropDecay, setSeconds(0.02, 2), 0.2),
	}
}

func (e *Engine) Start() error {
	return e.stream.Start()
}

func (e *Engine) Close() error {
	if e.stream == nil {
		return nil
	}
	err := e.stream.Close()
	portaudio.Terminate()
	e.stream = nil
	return err
}

func (e *Engine) SampleRate() int { return e.cfg.SampleRate }

// Trigger inserts a new voice built from the current settings. A note
// plays to completion once triggered; there is no way to cut it short.
func (e *Engine) Trigger(freq, duration float64) {
	rate := float64(e.cfg.SampleRate)
	e.pool.trigger(&voice{
		freq:   freq,
		wave:   ParseWaveform(e.wave.Load().(string)),
		volume: voiceVolume,
		total:  int(duration * rate),
		attack: int(e.attack.Load().(float64) * rate),
		decay:  int(e.decay.Load().(float64) * rate),
	})
}

// RenderConfig snapshots the current settings for an offline bounce.
func (e *Engine) RenderConfig() RenderConfig {
	return RenderConfig{
		SampleRate: e.cfg.SampleRate,
		Wave:       ParseWaveform(e.wave.Load().(string)),
		Attack:     e.attack.Load().(float64),
		Decay:      e.decay.Load().(float64),
	}
}

// process runs on the audio thread once per block. It performs no I/O and
// no allocation; the only lock it takes is the pool mutex, whose critical
// section is bounded by the voice limit.
func (e *Engine) process(out []float32) {
	buf := e.buf[:len(out)]
	for i := range buf {
		buf[i] = 0
	}
	e.pool.renderBlock(buf)
	normalize(buf)
	for i, s := range buf {
		out[i] = float32(s * masterGain)
	}
}

// normalize rescales the block only when its peak exceeds full scale, so
// overlapping voices don't clip but quiet mixes aren't boosted.
func normalize(buf []float64) {
	var peak float64
	for _, s := range buf {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak > 1 {
		for i := range buf {
			buf[i] /= peak
		}
	}
}
