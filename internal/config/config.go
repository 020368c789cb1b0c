package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

const EnvPrefix = "BATTLESIM"

type BoardConfig struct {
	Width  int   `mapstructure:"width"`
	Height int   `mapstructure:"height"`
	Counts []int `mapstructure:"counts"`
}

type SimConfig struct {
	Trials          int           `mapstructure:"trials"`
	Workers         int           `mapstructure:"workers"`
	Seed            uint64        `mapstructure:"seed"`
	PlacementBudget time.Duration `mapstructure:"placementBudget"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	Jobs      int64  `mapstructure:"jobs"`
	MaxTrials int    `mapstructure:"maxTrials"`

	// Per worker fleet generation limit for /simulate jobs.
	PlacementBudget time.Duration `mapstructure:"placementBudget"`
}

type Settings struct {
	LogLevel string       `mapstructure:"logLevel"`
	LogJSON  bool         `mapstructure:"logJSON"`
	Board    BoardConfig  `mapstructure:"board"`
	Sim      SimConfig    `mapstructure:"sim"`
	Server   ServerConfig `mapstructure:"server"`
}

// Converts board settings into a field configuration.
func (s *Settings) Configuration() (field.Configuration, error) {
	conf := field.Configuration{
		W: s.Board.Width,
		H: s.Board.Height,
	}

	if len(s.Board.Counts) != len(conf.Counts) {
		return conf, fmt.Errorf("expected %d ship counts, got %d", len(conf.Counts), len(s.Board.Counts))
	}
	copy(conf.Counts[:], s.Board.Counts)

	if err := conf.IsValid(); err != nil {
		return conf, err
	}

	return conf, nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logJSON", false)

	v.SetDefault("board.width", 10)
	v.SetDefault("board.height", 10)
	v.SetDefault("board.counts", []int{4, 3, 2, 1})

	v.SetDefault("sim.trials", 100000)
	v.SetDefault("sim.workers", 1)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.placementBudget", "0s")

	v.SetDefault("server.addr", "127.0.0.1:4239")
	v.SetDefault("server.jobs", 4)
	v.SetDefault("server.maxTrials", 1000000)
	v.SetDefault("server.placementBudget", "1m")
}

// Load reads settings from defaults, an optional config file and
// BATTLESIM_* environment variables, in increasing priority.
// Values already set on v (e.g. bound flags) take precedence over all of them.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("battlesim")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	return &s, nil
}
