package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Messages shown to the player. The driver prints these verbatim.
const (
	MsgStench     = "You smell a terrible stench!"
	MsgBreeze     = "You feel a cold breeze!"
	MsgMissed     = "Missed!"
	MsgPitDeath   = "You stumble into a bottomless pit. You are dead."
	MsgWumpusKill = "The wumpus is waiting for you. You are dead."
	MsgWumpusSlay = "Your arrow strikes true. The wumpus is dead!"
)

var (
	// ErrInvalidDirection means the direction has no exit from the
	// current room. The state is left unchanged.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrNoArrows means the hunter's quiver is empty. Shooting with
	// no arrows is a no-op; the wumpus does not move.
	ErrNoArrows = errors.New("no arrows left")

	// ErrGameOver means the session already reached a terminal outcome.
	ErrGameOver = errors.New("game is over")
)

// TurnResult describes what happened during one player action.
type TurnResult struct {
	Outcome Outcome  `json:"outcome"`
	Events  []string `json:"events,omitempty"`
}

// Move walks the hunter in the given direction. Unknown directions
// leave the state byte-for-byte unchanged. Entering a pit room or the
// wumpus's room loses the game. Otherwise the hunter relocates and the
// wumpus takes one random step.
func (g *GameState) Move(direction string) (*TurnResult, error) {
	if g.Outcome.Terminal() {
		return nil, ErrGameOver
	}
	room := g.CurrentRoom()
	target, ok := room.Exits[normalizeDirection(direction)]
	if !ok {
		return nil, ErrInvalidDirection
	}

	dest := g.Cave[target]
	if dest.HasHazard(HazardPit) {
		g.end(OutcomeLost)
		return &TurnResult{Outcome: OutcomeLost, Events: []string{MsgPitDeath}}, nil
	}
	if dest.ID == g.WumpusRoom {
		g.end(OutcomeLost)
		return &TurnResult{Outcome: OutcomeLost, Events: []string{MsgWumpusKill}}, nil
	}

	g.Hunter().Room = dest.ID
	g.moveWumpus()
	g.tick()
	return &TurnResult{
		Outcome: OutcomePlaying,
		Events:  []string{fmt.Sprintf("You move %s.", normalizeDirection(direction)), dest.Description},
	}, nil
}

// Shoot fires an arrow in the given direction. An empty quiver is a
// no-op and the wumpus stays put. An unknown direction costs nothing.
// A valid shot always spends one arrow; a hit wins the game, a miss
// startles the wumpus into a random step.
func (g *GameState) Shoot(direction string) (*TurnResult, error) {
	if g.Outcome.Terminal() {
		return nil, ErrGameOver
	}
	hunter := g.Hunter()
	if hunter.Arrows <= 0 {
		return nil, ErrNoArrows
	}
	room := g.CurrentRoom()
	target, ok := room.Exits[normalizeDirection(direction)]
	if !ok {
		return nil, ErrInvalidDirection
	}

	hunter.Arrows--
	if target == g.WumpusRoom {
		g.end(OutcomeWon)
		return &TurnResult{Outcome: OutcomeWon, Events: []string{MsgWumpusSlay}}, nil
	}

	g.moveWumpus()
	g.tick()
	return &TurnResult{Outcome: OutcomePlaying, Events: []string{MsgMissed}}, nil
}

// moveWumpus relocates the wumpus to a uniformly-random exit of its
// current room. A room with no exits traps it where it is.
func (g *GameState) moveWumpus() {
	room, ok := g.Cave[g.WumpusRoom]
	if !ok || len(room.Exits) == 0 {
		return
	}
	dirs := room.ExitDirections()
	if g.rng == nil {
		g.AttachRand(nil)
	}
	g.WumpusRoom = room.Exits[dirs[g.rng.Intn(len(dirs))]]
}

func (g *GameState) end(o Outcome) {
	g.Outcome = o
	g.tick()
}

func (g *GameState) tick() {
	g.Turns++
	g.UpdatedAt = time.Now().UTC()
}

func normalizeDirection(direction string) string {
	return strings.ToLower(strings.TrimSpace(direction))
}
