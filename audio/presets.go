package audio

import "fmt"

// Device is anything with settable properties; the engine satisfies it.
type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

// presets bundle a waveform with envelope times that suit it.
var presets = map[string]preset{
	"chiptune": {
		PropWave:   "square",
		PropAttack: 0.01,
		PropDecay:  0.25,
	},
	"buzzy": {
		PropWave:   "sawtooth",
		PropAttack: 0.02,
		PropDecay:  0.2,
	},
	"mellow": {
		PropWave:   "triangle",
		PropAttack: 0.05,
		PropDecay:  0.4,
	},
	"retro": {
		PropWave:   "pulse",
		PropAttack: 0.005,
		PropDecay:  0.15,
	},
	"drums": {
		PropWave:   "noise",
		PropAttack: 0.001,
		PropDecay:  0.08,
	},
}

func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	for k, v := range p {
		if err := d.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// PresetNames lists the available presets for the help output.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
