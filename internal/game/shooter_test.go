package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
)

type attack struct {
	pos    field.Pos
	status field.HitStatus
}

type recordingTarget struct {
	game.Target
	attacks []attack
}

func (r *recordingTarget) Attack(p field.Pos) field.AttackResult {
	res := r.Target.Attack(p)
	r.attacks = append(r.attacks, attack{p, res.Status})
	return res
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func generate(t *testing.T, conf field.Configuration, seed uint64) (*field.Board, *field.ShootingGrid) {
	t.Helper()

	b := field.NewBoard(conf)
	layout := field.NewPlacementGrid(b)
	game.NewRandomPlacer(newRNG(seed)).Generate(layout)
	require.True(t, layout.IsFull())

	return b, field.NewShootingGrid(b)
}

func TestHuntShooter_SinksFleet(t *testing.T) {
	confs := []field.Configuration{
		classicConf,
		{W: 8, H: 8, Counts: [4]int{1, 1, 1, 0}},
		{W: 20, H: 7, Counts: [4]int{5, 4, 3, 2}},
	}

	for _, conf := range confs {
		for seed := uint64(1); seed <= 30; seed++ {
			b, target := generate(t, conf, seed)
			shooter := game.NewHuntShooter(newRNG(seed + 1000))

			shots := shooter.Shoot(target)

			require.True(t, target.AllSunk(), "seed %d, board:\n%s", seed, b)
			assert.Equal(t, target.ShotsFired(), shots)
			assert.LessOrEqual(t, shots, conf.W*conf.H)

			cells := 0
			for _, st := range field.ShipTypes {
				cells += conf.Counts[st] * st.Length()
			}
			assert.GreaterOrEqual(t, shots, cells)
		}
	}
}

func TestHuntShooter_ReusedAcrossTrials(t *testing.T) {
	b := field.NewBoard(classicConf)
	layout := field.NewPlacementGrid(b)
	target := field.NewShootingGrid(b)

	placer := game.NewRandomPlacer(newRNG(1))
	shooter := game.NewHuntShooter(newRNG(2))

	total := 0
	for i := 0; i < 20; i++ {
		placer.Generate(layout)
		require.True(t, layout.IsFull())

		shots := shooter.Shoot(target)
		require.True(t, target.AllSunk())

		total += shots
		assert.Equal(t, total, target.ShotsFired(), "shot counter keeps running across resets")

		layout.Reset()
	}
}

func TestHuntShooter_Reproducible(t *testing.T) {
	_, a := generate(t, classicConf, 5)
	_, b := generate(t, classicConf, 5)

	shotsA := game.NewHuntShooter(newRNG(9)).Shoot(a)
	shotsB := game.NewHuntShooter(newRNG(9)).Shoot(b)

	assert.Equal(t, shotsA, shotsB)
}

// Hunting starts at a Damaged scan hit and has to walk away from it
// in straight lines, one cell at a time, until the ship sinks.
func TestHuntShooter_HuntIsCollinear(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		_, grid := generate(t, classicConf, seed)
		target := &recordingTarget{Target: grid}

		game.NewHuntShooter(newRNG(seed)).Shoot(target)
		require.True(t, grid.AllSunk())

		var hunting bool
		var origin field.Pos
		var hits map[field.Pos]bool

		for _, a := range target.attacks {
			assert.NotEqual(t, field.Malformed, a.status, "seed %d: attack out of bounds at %v", seed, a.pos)

			if !hunting {
				assert.NotEqual(t, field.Repeated, a.status, "seed %d: scan repeated a shot at %v", seed, a.pos)

				if a.status == field.Damaged {
					hunting = true
					origin = a.pos
					hits = map[field.Pos]bool{origin: true}
				}
				continue
			}

			dx, dy := a.pos.X-origin.X, a.pos.Y-origin.Y
			require.True(t, (dx == 0) != (dy == 0), "seed %d: %v is not collinear with hit %v", seed, a.pos, origin)

			step := field.Pos{X: sign(dx), Y: sign(dy)}
			for c := origin.Add(step); c != a.pos; c = c.Add(step) {
				assert.True(t, hits[c], "seed %d: hunt from %v skipped %v on the way to %v", seed, origin, c, a.pos)
			}

			switch a.status {
			case field.Damaged:
				hits[a.pos] = true
			case field.Sunk:
				hunting = false
			}
		}

		assert.False(t, hunting, "seed %d: hunt did not finish the ship", seed)
	}
}

// Scanning never wastes shots on the border or next to a sunk ship.
func TestHuntShooter_ScanSkipsImpossibleCells(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		b, grid := generate(t, classicConf, seed)
		target := &recordingTarget{Target: grid}

		game.NewHuntShooter(newRNG(seed)).Shoot(target)

		// Replay attacks on a fresh copy of the layout to know
		// which ships were sunk at the time of each scan shot.
		replay := field.NewBoard(classicConf)
		require.NoError(t, field.LoadShips(field.NewPlacementGrid(replay), b.Ships()))
		replayGrid := field.NewShootingGrid(replay)

		hunting := false
		for _, a := range target.attacks {
			if !hunting {
				for _, shift := range field.NeighborShifts {
					n := a.pos.Add(shift)
					assert.True(t, replay.InBounds(n), "seed %d: scan shot at border %v", seed, a.pos)
					assert.False(t, replayGrid.WasSunk(n), "seed %d: scan shot next to sunk ship at %v", seed, a.pos)
				}
			}

			res := replayGrid.Attack(a.pos)
			require.Equal(t, a.status, res.Status)

			switch {
			case !hunting && res.Status == field.Damaged:
				hunting = true
			case hunting && res.Status == field.Sunk:
				hunting = false
			}
		}
	}
}

func TestHuntShooter_NothingToSink(t *testing.T) {
	b, target := generate(t, classicConf, 3)
	game.SweepShooter{}.Shoot(target)
	require.True(t, target.AllSunk())

	before := b.String()
	shots := game.NewHuntShooter(newRNG(1)).Shoot(target)

	assert.Zero(t, shots)
	assert.Equal(t, before, b.String())
}

func TestSweepShooter_SinksFleet(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		_, target := generate(t, classicConf, seed)
		rec := &recordingTarget{Target: target}

		shots := game.SweepShooter{}.Shoot(rec)

		assert.True(t, target.AllSunk())
		assert.Equal(t, len(rec.attacks), shots)
		assert.LessOrEqual(t, shots, classicConf.W*classicConf.H)

		for i, a := range rec.attacks {
			assert.Equal(t, field.Pos{X: i % classicConf.W, Y: i / classicConf.W}, a.pos)
		}
	}
}
