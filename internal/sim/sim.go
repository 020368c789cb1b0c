package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNoCompletedTrials    = errors.New("no trial got a complete fleet")
	ErrFleetSurvived        = errors.New("fleet survived the fire phase")
	ErrPlacementBudget      = errors.New("placement time budget exhausted")
)

// Simulator plays many unattended games and reports how many
// shots it takes to clear a board.
//
// Each worker owns its board and random sources, derived from Seed
// and the worker index, so a run is reproducible for a given Seed
// and Workers pair.
type Simulator struct {
	Conf    field.Configuration
	Trials  int
	Workers int

	// Zero picks a random seed, reported back in Report.Seed.
	Seed uint64

	// Total time a single worker may spend generating fleets.
	// Non-positive means no limit.
	PlacementBudget time.Duration

	Logger zerolog.Logger
}

// Splits n trials between workers as evenly as possible.
func splitTrials(n, workers int) []int {
	shares := make([]int, workers)
	for i := range shares {
		shares[i] = n / workers
		if i < n%workers {
			shares[i]++
		}
	}
	return shares
}

func (s *Simulator) Run(ctx context.Context) (Report, error) {
	if err := s.Conf.IsValid(); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if s.Trials <= 0 {
		return Report{}, fmt.Errorf("%w: non-positive trial count %d", ErrInvalidConfiguration, s.Trials)
	}

	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	workers := max(1, min(s.Workers, s.Trials))

	m, err := newMetrics()
	if err != nil {
		return Report{}, err
	}

	log := s.Logger.With().
		Uint64("seed", seed).
		Int("width", s.Conf.W).
		Int("height", s.Conf.H).
		Ints("counts", s.Conf.Counts[:]).
		Logger()

	log.Debug().Int("trials", s.Trials).Int("workers", workers).Msg("simulation started")

	started := time.Now()
	tallies := make([]*tally, workers)
	eg, egCtx := errgroup.WithContext(ctx)

	for i, share := range splitTrials(s.Trials, workers) {
		w := newWorker(s.Conf, seed, i, m, log)
		tallies[i] = w.tally

		eg.Go(func() error {
			return w.run(egCtx, share, s.PlacementBudget)
		})
	}

	if err := eg.Wait(); err != nil {
		log.Error().Err(err).Msg("simulation failed")
		return Report{}, err
	}

	total := newTally(0)
	for _, t := range tallies {
		total.merge(t)
	}

	report := total.report(seed)

	if report.Trials == 0 {
		return report, fmt.Errorf("%w: %d trials discarded", ErrNoCompletedTrials, report.Discarded)
	}

	log.Info().
		Int("trials", report.Trials).
		Int("discarded", report.Discarded).
		Float64("mean_shots", report.MeanShots).
		Dur("elapsed", time.Since(started)).
		Msg("simulation finished")

	return report, nil
}
