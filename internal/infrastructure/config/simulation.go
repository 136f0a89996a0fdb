package config

import "time"

// SimulationConfig bounds what-if simulation runs
type SimulationConfig struct {
	// Maximum events one advance may process before giving up
	MaxEvents int `mapstructure:"max_events" validate:"min=1"`

	// Horizon used by `colony simulate` when neither --until nor --for is given
	DefaultHorizon time.Duration `mapstructure:"default_horizon" validate:"min=1m,max=8760h"`
}
