package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <cave.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &CaveValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Cave file is valid!")
}

type CaveValidator struct {
	errors []string
}

func (v *CaveValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("cave file must have .json extension: %s", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var rooms map[int]game.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return fmt.Errorf("failed to parse cave file: %w", err)
	}

	v.errors = nil
	cave, err := game.NewCave(rooms)
	if err != nil {
		return err
	}

	v.checkRooms(cave)
	v.checkPlayability(cave)

	if len(v.errors) > 0 {
		return fmt.Errorf("cave has %d problem(s):\n  - %s", len(v.errors), strings.Join(v.errors, "\n  - "))
	}
	return nil
}

func (v *CaveValidator) checkRooms(cave game.Cave) {
	for id, room := range cave {
		if room.Description == "" {
			v.errors = append(v.errors, fmt.Sprintf("room %d has no description", id))
		}
		for _, hazard := range room.Hazards {
			if hazard != game.HazardPit {
				v.errors = append(v.errors, fmt.Sprintf("room %d has unknown hazard tag %q", id, hazard))
			}
		}
		for dir, target := range room.Exits {
			if target == id {
				v.errors = append(v.errors, fmt.Sprintf("room %d exit %q loops back to itself", id, dir))
			}
		}
	}
}

// checkPlayability requires at least one hazard-free room to start in
// and at least one other hazard-free room for the wumpus.
func (v *CaveValidator) checkPlayability(cave game.Cave) {
	safe := 0
	for _, room := range cave {
		if !room.HasHazard(game.HazardPit) {
			safe++
		}
	}
	if safe < 2 {
		v.errors = append(v.errors, fmt.Sprintf("cave needs at least 2 hazard-free rooms (hunter and wumpus), found %d", safe))
	}
}
