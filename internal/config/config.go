package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/sim"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

const (
	DefaultDt              = 1.0 / 1200.0
	DefaultSubSteps        = 20
	DefaultGravityY        = 9.81
	DefaultAlpha           = 0.6
	DefaultBeta            = 4e-4
	DefaultDuration        = 10.0
	DefaultImpulse         = 500.0
	DefaultImpulseDuration = 4.0
)

type Config struct {
	Preset   string        `yaml:"preset"`
	Dt       float64       `yaml:"dt"`
	SubSteps int           `yaml:"sub_steps"`
	Duration float64       `yaml:"duration"`
	Gravity  GravityConfig `yaml:"gravity"`
	Damping  DampingConfig `yaml:"damping"`
	Impulse  ImpulseConfig `yaml:"impulse"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type DampingConfig struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

type ImpulseConfig struct {
	Magnitude float64 `yaml:"magnitude"`
	Duration  float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:   "warren",
		Dt:       DefaultDt,
		SubSteps: DefaultSubSteps,
		Duration: DefaultDuration,
		Gravity:  GravityConfig{Y: DefaultGravityY},
		Damping:  DampingConfig{Alpha: DefaultAlpha, Beta: DefaultBeta},
		Impulse:  ImpulseConfig{Magnitude: DefaultImpulse, Duration: DefaultImpulseDuration},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig converts the file representation into integration parameters.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:           c.Dt,
		SubSteps:     c.SubSteps,
		Gravity:      truss.Vec2{X: c.Gravity.X, Y: c.Gravity.Y},
		AlphaDamping: c.Damping.Alpha,
		BetaDamping:  c.Damping.Beta,
	}
}
