package game

import (
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

const (
	// Failed attempts after which the whole fleet is thrown away.
	RestartThreshold = 200

	// Failed attempts over the whole run after which generation gives up.
	AbortThreshold = 1_000_000
)

// Places ships at random anchors and orientations, largest first.
//
// A fleet that gets stuck is discarded wholesale: there is no
// per-ship backtracking.
type RandomPlacer struct {
	rng *rand.Rand
}

func NewRandomPlacer(rng *rand.Rand) *RandomPlacer {
	return &RandomPlacer{rng}
}

func (g *RandomPlacer) Generate(l Layout) PlacementStats {
	var stats PlacementStats
	conf := l.Config()

	sinceRestart := 0

restart:
	for {
		for i := len(field.ShipTypes) - 1; i >= 0; i-- {
			t := field.ShipTypes[i]

			for l.TypeCount(t) < conf.Counts[t] {
				stats.Attempts++

				p := field.Pos{
					X: g.rng.IntN(conf.W),
					Y: g.rng.IntN(conf.H),
				}
				o := field.Orientations[g.rng.IntN(len(field.Orientations))]

				if l.Place(p, t, o) != field.NoShip {
					continue
				}

				stats.Failures++
				sinceRestart++

				if stats.Failures >= AbortThreshold {
					stats.Aborted = true
					return stats
				}

				if sinceRestart >= RestartThreshold {
					l.Reset()
					stats.Restarts++
					sinceRestart = 0
					continue restart
				}
			}
		}

		return stats
	}
}
