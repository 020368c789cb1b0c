package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mrsobakin/battlesim/internal/config"
	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
	"github.com/mrsobakin/battlesim/internal/logging"
	"github.com/mrsobakin/battlesim/internal/sim"
)

var (
	configFile = pflag.StringP("config", "c", "", "path to a config file (json, yaml or toml)")
	asJSON     = pflag.Bool("json", false, "print the full report as JSON")
	render     = pflag.Bool("render", false, "print a sample board before and after firing")
)

func bindFlags(v *viper.Viper) {
	pflag.Int("width", 10, "board width")
	pflag.Int("height", 10, "board height")
	pflag.IntSlice("counts", []int{4, 3, 2, 1}, "ship counts: submarines,boats,destroyers,carriers")
	pflag.Int("trials", 100000, "number of games to play")
	pflag.Int("workers", 1, "number of parallel workers")
	pflag.Uint64("seed", 0, "random seed, 0 picks one")
	pflag.Duration("placement-budget", 0, "per worker time limit for fleet generation, 0 means none")
	pflag.String("log-level", "info", "trace, debug, info, warn or error")

	pflag.Parse()

	for key, flag := range map[string]string{
		"board.width":         "width",
		"board.height":        "height",
		"board.counts":        "counts",
		"sim.trials":          "trials",
		"sim.workers":         "workers",
		"sim.seed":            "seed",
		"sim.placementBudget": "placement-budget",
		"logLevel":            "log-level",
	} {
		if err := v.BindPFlag(key, pflag.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// Plays one game from seed and prints the board before and after.
func renderSample(conf field.Configuration, seed uint64) {
	b := field.NewBoard(conf)
	layout := field.NewPlacementGrid(b)

	stats := game.NewRandomPlacer(rand.New(rand.NewPCG(seed, 0))).Generate(layout)
	if !layout.IsFull() {
		fmt.Printf("could not place the fleet after %d attempts\n", stats.Attempts)
		return
	}

	fmt.Println(b)

	target := field.NewShootingGrid(b)
	shots := game.NewHuntShooter(rand.New(rand.NewPCG(seed, 1))).Shoot(target)

	fmt.Println(b)
	fmt.Printf("sunk in %d shots\n\n", shots)
}

func run(log zerolog.Logger, s *config.Settings) error {
	conf, err := s.Configuration()
	if err != nil {
		return fmt.Errorf("%w: %w", sim.ErrInvalidConfiguration, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simulator := sim.Simulator{
		Conf:            conf,
		Trials:          s.Sim.Trials,
		Workers:         s.Sim.Workers,
		Seed:            s.Sim.Seed,
		PlacementBudget: s.Sim.PlacementBudget,
		Logger:          log,
	}

	report, err := simulator.Run(ctx)
	if err != nil {
		return err
	}

	if *render {
		renderSample(conf, report.Seed)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(report.MeanShots)
	return nil
}

func main() {
	v := viper.New()
	bindFlags(v)

	s, err := config.Load(v, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.New(os.Stderr, s.LogLevel, s.LogJSON)

	if err := run(log, s); err != nil {
		log.Error().Err(err).Msg("simulation failed")
		os.Exit(1)
	}
}
