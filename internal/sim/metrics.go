package sim

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/mrsobakin/battlesim/internal/sim"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	trials    metric.Int64Counter
	discarded metric.Int64Counter
	shots     metric.Int64Counter
	restarts  metric.Int64Counter
}

// Instruments come from the global OTel provider, which is a
// no-op unless the embedding program configures one.
func newMetrics() (*metrics, error) {
	m := meter()

	var err error
	var s metrics

	s.trials, err = m.Int64Counter(
		"battlesim.trials",
		metric.WithDescription("Trials played to the end"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trials counter: %w", err)
	}

	s.discarded, err = m.Int64Counter(
		"battlesim.trials.discarded",
		metric.WithDescription("Trials dropped because the fleet could not be placed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating discarded counter: %w", err)
	}

	s.shots, err = m.Int64Counter(
		"battlesim.shots",
		metric.WithDescription("Shots fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	s.restarts, err = m.Int64Counter(
		"battlesim.placement.restarts",
		metric.WithDescription("Fleet placements thrown away and started over"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restarts counter: %w", err)
	}

	return &s, nil
}
