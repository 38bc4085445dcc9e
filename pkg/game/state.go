package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal status of a game session. Terminal outcomes
// are returned from the transition functions; the driver decides
// whether to exit, save, or start over.
type Outcome string

const (
	OutcomePlaying Outcome = "playing"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool {
	return o == OutcomeWon || o == OutcomeLost
}

const (
	StartingArrows = 3
	StartingHealth = 100
)

// Player is a hunter in the cave.
type Player struct {
	Name      string   `json:"name"`
	Room      int      `json:"room"`
	Arrows    int      `json:"arrows"`
	Health    int      `json:"health"`
	Inventory []string `json:"inventory,omitempty"`
}

// GameState is the whole authoritative state of one hunt. It is
// mutated in place by the turn handlers and serialized wholesale
// on save.
type GameState struct {
	ID         uuid.UUID `json:"id"`
	Cave       Cave      `json:"cave"`
	Players    []Player  `json:"players"` // index 0 is the active hunter
	WumpusRoom int       `json:"wumpus_room"`
	Turns      int       `json:"turns"`
	Outcome    Outcome   `json:"outcome"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`

	rng *rand.Rand
}

// NewGameState starts a fresh hunt in the given cave. A nil rng
// gets a time-seeded source; tests inject a fixed seed.
func NewGameState(name string, cave Cave, wumpusRoom int, rng *rand.Rand) (*GameState, error) {
	if _, ok := cave[wumpusRoom]; !ok {
		return nil, fmt.Errorf("wumpus room %d does not exist in cave", wumpusRoom)
	}
	start, err := startRoom(cave, wumpusRoom)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := time.Now().UTC()
	return &GameState{
		ID:   uuid.New(),
		Cave: cave,
		Players: []Player{{
			Name:   name,
			Room:   start,
			Arrows: StartingArrows,
			Health: StartingHealth,
		}},
		WumpusRoom: wumpusRoom,
		Outcome:    OutcomePlaying,
		CreatedAt:  now,
		UpdatedAt:  now,
		rng:        rng,
	}, nil
}

// startRoom picks the lowest-numbered room that is safe to begin in.
func startRoom(cave Cave, wumpusRoom int) (int, error) {
	best := -1
	for id, room := range cave {
		if id == wumpusRoom || room.HasHazard(HazardPit) {
			continue
		}
		if best == -1 || id < best {
			best = id
		}
	}
	if best == -1 {
		return 0, fmt.Errorf("cave has no safe starting room")
	}
	return best, nil
}

// AttachRand sets the random source used for wumpus movement. Call
// after restoring a state from storage; the source is not serialized.
// A nil rng gets a time-seeded source.
func (g *GameState) AttachRand(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.rng = rng
}

// Hunter returns the active player.
func (g *GameState) Hunter() *Player {
	return &g.Players[0]
}

// CurrentRoom returns the hunter's room.
func (g *GameState) CurrentRoom() Room {
	return g.Cave[g.Hunter().Room]
}

// Validate checks a restored state against its own cave graph.
// Saves are not versioned, so a load can carry dangling IDs.
func (g *GameState) Validate() error {
	if _, err := NewCave(g.Cave); err != nil {
		return fmt.Errorf("invalid cave in saved state: %w", err)
	}
	if len(g.Players) == 0 {
		return fmt.Errorf("saved state has no players")
	}
	if _, ok := g.Cave[g.Hunter().Room]; !ok {
		return fmt.Errorf("player room %d does not exist in cave", g.Hunter().Room)
	}
	if _, ok := g.Cave[g.WumpusRoom]; !ok {
		return fmt.Errorf("wumpus room %d does not exist in cave", g.WumpusRoom)
	}
	if g.Hunter().Arrows < 0 {
		return fmt.Errorf("player has negative arrow count %d", g.Hunter().Arrows)
	}
	return nil
}

// Warnings returns the hazard warnings for the hunter's current room:
// a stench for each adjacent room holding the wumpus, a breeze for
// each adjacent pit. Order follows the sorted exit directions.
func (g *GameState) Warnings() []string {
	var warnings []string
	room := g.CurrentRoom()
	for _, dir := range room.ExitDirections() {
		adjacent := g.Cave[room.Exits[dir]]
		if adjacent.ID == g.WumpusRoom {
			warnings = append(warnings, MsgStench)
		}
		if adjacent.HasHazard(HazardPit) {
			warnings = append(warnings, MsgBreeze)
		}
	}
	return warnings
}
