package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
	"github.com/mrsobakin/battlesim/internal/utils"
)

type worker struct {
	board  *field.Board
	layout *field.PlacementGrid
	target *field.ShootingGrid

	placer  game.Placer
	shooter game.Shooter

	tally   *tally
	metrics *metrics
	attrs   metric.MeasurementOption
	log     zerolog.Logger
}

func newWorker(conf field.Configuration, seed uint64, idx int, m *metrics, log zerolog.Logger) *worker {
	board := field.NewBoard(conf)
	stream := uint64(idx) * 2

	return &worker{
		board:   board,
		layout:  field.NewPlacementGrid(board),
		target:  field.NewShootingGrid(board),
		placer:  game.NewRandomPlacer(rand.New(rand.NewPCG(seed, stream))),
		shooter: game.NewHuntShooter(rand.New(rand.NewPCG(seed, stream+1))),
		tally:   newTally(conf.W * conf.H),
		metrics: m,
		attrs:   metric.WithAttributes(attribute.Int("worker", idx)),
		log:     log.With().Int("worker", idx).Logger(),
	}
}

func (w *worker) run(ctx context.Context, trials int, placementBudget time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctx, placementSW := utils.NewStopwatchContext(ctx, placementBudget, ErrPlacementBudget)
	defer placementSW.Close()

	firingSW := utils.NewStopwatch(0, nil)

	defer func() {
		w.tally.placementTime = placementSW.Elapsed()
		w.tally.firingTime = firingSW.Elapsed()
	}()

	for i := 0; i < trials; i++ {
		if ctx.Err() != nil {
			err := context.Cause(ctx)
			w.log.Warn().Err(err).Int("trial", i).Msg("worker stopped")
			return err
		}

		if err := w.trial(ctx, i, placementSW, firingSW); err != nil {
			return err
		}
	}

	return nil
}

// Plays a single game on a clean board and leaves the board clean.
func (w *worker) trial(ctx context.Context, i int, placementSW, firingSW *utils.Stopwatch) error {
	defer w.board.Reset()

	placementSW.Resume()
	stats := w.placer.Generate(w.layout)
	placementSW.Pause()

	w.tally.restarts += int64(stats.Restarts)
	w.metrics.restarts.Add(ctx, int64(stats.Restarts), w.attrs)

	if !w.layout.IsFull() {
		w.tally.discarded++
		w.metrics.discarded.Add(ctx, 1, w.attrs)
		w.log.Warn().
			Int("trial", i).
			Int("placed", w.board.Placed()).
			Int("failures", stats.Failures).
			Bool("aborted", stats.Aborted).
			Msg("fleet placement incomplete, trial discarded")
		return nil
	}

	firingSW.Resume()
	shots := w.shooter.Shoot(w.target)
	firingSW.Pause()

	if !w.target.AllSunk() {
		w.log.Error().Int("trial", i).Str("board", w.board.String()).Msg("fleet survived")
		return fmt.Errorf("trial %d: %w: %d ships left after %d shots", i, ErrFleetSurvived, w.target.ShipCount(), shots)
	}

	w.tally.record(shots)
	w.metrics.trials.Add(ctx, 1, w.attrs)
	w.metrics.shots.Add(ctx, int64(shots), w.attrs)

	return nil
}
