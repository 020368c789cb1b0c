package game

import (
	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Layout is what a Placer needs from the board during setup.
// Implemented by *field.PlacementGrid.
type Layout interface {
	Config() field.Configuration
	TypeCount(field.ShipType) int
	IsFull() bool

	// Returns field.NoShip if the ship can't be placed.
	Place(field.Pos, field.ShipType, field.Orientation) field.ShipID

	// Removes every ship placed so far.
	Reset()
}

// Target is what a Shooter needs from the board during the fire phase.
// Implemented by *field.ShootingGrid.
type Target interface {
	Config() field.Configuration
	InBounds(field.Pos) bool
	AllSunk() bool
	WasShot(field.Pos) bool
	WasSunk(field.Pos) bool
	ShotsFired() int
	Attack(field.Pos) field.AttackResult
}

type PlacementStats struct {
	Attempts int
	Failures int
	Restarts int

	// Set when the generator gave up. The layout is then left
	// in whatever partial state it was in.
	Aborted bool
}

type Placer interface {
	// Fills the layout with a fleet. Callers must check
	// Layout.IsFull afterwards: generation may give up.
	Generate(Layout) PlacementStats
}

type Shooter interface {
	// Fires at the target until its fleet is gone. Returns the
	// number of shots fired during this call.
	Shoot(Target) int
}
