package sim

import (
	"encoding/json"
	"time"

	"github.com/dolthub/swiss"
)

type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

type Report struct {
	Seed      uint64 `json:"seed"`
	Trials    int    `json:"trials"`
	Discarded int    `json:"discarded"`

	MeanShots  float64 `json:"mean_shots"`
	MinShots   int     `json:"min_shots"`
	MaxShots   int     `json:"max_shots"`
	TotalShots int64   `json:"total_shots"`

	// Number of shots per trial -> number of trials.
	Histogram map[int]int `json:"histogram"`

	Restarts      int64    `json:"restarts"`
	PlacementTime Duration `json:"placement_time"`
	FiringTime    Duration `json:"firing_time"`
}

// Per worker accumulator.
type tally struct {
	trials    int
	discarded int

	totalShots int64
	minShots   int
	maxShots   int
	histogram  *swiss.Map[int, int]

	restarts      int64
	placementTime time.Duration
	firingTime    time.Duration
}

func newTally(sizeHint int) *tally {
	return &tally{
		histogram: swiss.NewMap[int, int](uint32(sizeHint)),
	}
}

func (t *tally) record(shots int) {
	if t.trials == 0 || shots < t.minShots {
		t.minShots = shots
	}
	if t.trials == 0 || shots > t.maxShots {
		t.maxShots = shots
	}

	t.trials++
	t.totalShots += int64(shots)

	count, _ := t.histogram.Get(shots)
	t.histogram.Put(shots, count+1)
}

func (t *tally) merge(other *tally) {
	if other.trials > 0 {
		if t.trials == 0 || other.minShots < t.minShots {
			t.minShots = other.minShots
		}
		if t.trials == 0 || other.maxShots > t.maxShots {
			t.maxShots = other.maxShots
		}
	}

	t.trials += other.trials
	t.discarded += other.discarded
	t.totalShots += other.totalShots
	t.restarts += other.restarts
	t.placementTime += other.placementTime
	t.firingTime += other.firingTime

	other.histogram.Iter(func(shots int, n int) (stop bool) {
		count, _ := t.histogram.Get(shots)
		t.histogram.Put(shots, count+n)
		return
	})
}

func (t *tally) report(seed uint64) Report {
	r := Report{
		Seed:          seed,
		Trials:        t.trials,
		Discarded:     t.discarded,
		MinShots:      t.minShots,
		MaxShots:      t.maxShots,
		TotalShots:    t.totalShots,
		Histogram:     make(map[int]int, t.histogram.Count()),
		Restarts:      t.restarts,
		PlacementTime: Duration(t.placementTime),
		FiringTime:    Duration(t.firingTime),
	}

	if t.trials > 0 {
		r.MeanShots = float64(t.totalShots) / float64(t.trials)
	}

	t.histogram.Iter(func(shots int, n int) (stop bool) {
		r.Histogram[shots] = n
		return
	})

	return r
}
