package game

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// HazardPit marks a room that kills the hunter on entry.
const HazardPit = "pit"

// Room is a node in the cave graph. Rooms are immutable after the
// cave is constructed.
type Room struct {
	ID          int            `json:"id"`
	Description string         `json:"description,omitempty"`
	Exits       map[string]int `json:"exits,omitempty"`   // direction → room ID
	Hazards     []string       `json:"hazards,omitempty"` // e.g. "pit"
}

// HasHazard reports whether the room carries the given hazard tag.
func (r *Room) HasHazard(tag string) bool {
	for _, h := range r.Hazards {
		if h == tag {
			return true
		}
	}
	return false
}

// ExitDirections returns the room's exit directions in sorted order,
// for stable display.
func (r *Room) ExitDirections() []string {
	dirs := make([]string, 0, len(r.Exits))
	for d := range r.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Cave is the static room graph, keyed by room ID.
type Cave map[int]Room

// NewCave builds a cave from a set of rooms, validating referential
// integrity: every exit must target a room that exists in the cave.
func NewCave(rooms map[int]Room) (Cave, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("cave must contain at least one room")
	}
	for id, room := range rooms {
		if room.ID != id {
			return nil, fmt.Errorf("room %d: ID field %d does not match map key", id, room.ID)
		}
		for dir, target := range room.Exits {
			if dir == "" {
				return nil, fmt.Errorf("room %d: exit with empty direction", id)
			}
			if _, ok := rooms[target]; !ok {
				return nil, fmt.Errorf("room %d: exit %q targets nonexistent room %d", id, dir, target)
			}
		}
	}
	return Cave(rooms), nil
}

// LoadCave reads and validates a cave map from a JSON file.
func LoadCave(path string) (Cave, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cave file: %w", err)
	}
	var rooms map[int]Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to parse cave file: %w", err)
	}
	return NewCave(rooms)
}

// Room returns the room with the given ID.
func (c Cave) Room(id int) (Room, bool) {
	r, ok := c[id]
	return r, ok
}

// DefaultCave is the built-in four-room cave. Room 1 is the entrance,
// room 4 holds a pit, and the wumpus starts in room 2.
func DefaultCave() Cave {
	return Cave{
		1: {
			ID:          1,
			Description: "You stand at the cave entrance. Cold air drifts up from the dark passages ahead.",
			Exits:       map[string]int{"north": 2, "east": 3},
		},
		2: {
			ID:          2,
			Description: "A narrow tunnel. The walls press close and something has scratched deep grooves in the stone.",
			Exits:       map[string]int{"south": 1},
		},
		3: {
			ID:          3,
			Description: "An echoing chamber. Water drips somewhere far overhead.",
			Exits:       map[string]int{"west": 1, "north": 4},
		},
		4: {
			ID:          4,
			Description: "The floor falls away into a yawning chasm.",
			Exits:       map[string]int{"south": 3},
			Hazards:     []string{HazardPit},
		},
	}
}

// DefaultWumpusRoom is the wumpus's starting room in the default cave.
const DefaultWumpusRoom = 2
