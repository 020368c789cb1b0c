package game

import (
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Scans the board in random order. After a hit, probes in straight
// lines from the hit cell until the ship goes down.
type HuntShooter struct {
	rng   *rand.Rand
	order []int
}

func NewHuntShooter(rng *rand.Rand) *HuntShooter {
	return &HuntShooter{rng: rng}
}

func (s *HuntShooter) shuffle(n int) {
	if len(s.order) != n {
		s.order = make([]int, n)
		for i := range s.order {
			s.order[i] = i
		}
	}

	s.rng.Shuffle(n, func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// Ships never touch each other nor the border, so a cell next
// to the border or to a sunk ship can't hold a live ship.
func mayHoldShip(t Target, p field.Pos) bool {
	for _, shift := range field.NeighborShifts {
		n := p.Add(shift)
		if !t.InBounds(n) || t.WasSunk(n) {
			return false
		}
	}
	return true
}

func (s *HuntShooter) hunt(t Target, hit field.Pos) {
	for _, o := range field.Orientations {
		step := o.Step()

		for cur := hit.Add(step); ; cur = cur.Add(step) {
			status := t.Attack(cur).Status
			if status == field.Sunk {
				return
			}
			if status != field.Damaged {
				break
			}
		}
	}
}

func (s *HuntShooter) Shoot(t Target) int {
	conf := t.Config()
	start := t.ShotsFired()

	s.shuffle(conf.W * conf.H)

	for _, i := range s.order {
		if t.AllSunk() {
			break
		}

		p := field.Pos{X: i % conf.W, Y: i / conf.W}

		if t.WasShot(p) || !mayHoldShip(t, p) {
			continue
		}

		if t.Attack(p).Status == field.Damaged {
			s.hunt(t, p)
		}
	}

	return t.ShotsFired() - start
}

// Fires at every cell, row by row. Slow, but sinks any fleet.
type SweepShooter struct{}

func (SweepShooter) Shoot(t Target) int {
	conf := t.Config()
	start := t.ShotsFired()

	for y := 0; y < conf.H && !t.AllSunk(); y++ {
		for x := 0; x < conf.W && !t.AllSunk(); x++ {
			t.Attack(field.Pos{X: x, Y: y})
		}
	}

	return t.ShotsFired() - start
}
