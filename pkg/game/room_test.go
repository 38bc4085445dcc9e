package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCave_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rooms   map[int]Room
		wantErr string
	}{
		{
			name:    "empty cave",
			rooms:   map[int]Room{},
			wantErr: "at least one room",
		},
		{
			name: "dangling exit",
			rooms: map[int]Room{
				1: {ID: 1, Exits: map[string]int{"north": 99}},
			},
			wantErr: "nonexistent room 99",
		},
		{
			name: "mismatched ID",
			rooms: map[int]Room{
				1: {ID: 7},
			},
			wantErr: "does not match map key",
		},
		{
			name: "empty direction",
			rooms: map[int]Room{
				1: {ID: 1, Exits: map[string]int{"": 1}},
			},
			wantErr: "empty direction",
		},
		{
			name: "valid two rooms",
			rooms: map[int]Room{
				1: {ID: 1, Exits: map[string]int{"north": 2}},
				2: {ID: 2, Exits: map[string]int{"south": 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cave, err := NewCave(tt.rooms)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cave)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cave, len(tt.rooms))
		})
	}
}

func TestDefaultCave_IsValid(t *testing.T) {
	cave := DefaultCave()
	_, err := NewCave(cave)
	require.NoError(t, err)

	// The layout the game relies on.
	assert.Equal(t, map[string]int{"north": 2, "east": 3}, cave[1].Exits)
	assert.Equal(t, map[string]int{"south": 1}, cave[2].Exits)
	assert.Equal(t, map[string]int{"west": 1, "north": 4}, cave[3].Exits)

	room4 := cave[4]
	assert.True(t, room4.HasHazard(HazardPit))
	for id := 1; id <= 3; id++ {
		r := cave[id]
		assert.False(t, r.HasHazard(HazardPit), "room %d must be safe", id)
	}
}

func TestRoom_ExitDirectionsSorted(t *testing.T) {
	r := Room{ID: 1, Exits: map[string]int{"west": 2, "east": 3, "north": 4}}
	assert.Equal(t, []string{"east", "north", "west"}, r.ExitDirections())
}

func TestLoadCave(t *testing.T) {
	dir := t.TempDir()

	rooms := map[int]Room{
		1: {ID: 1, Description: "start", Exits: map[string]int{"north": 2}},
		2: {ID: 2, Description: "end", Exits: map[string]int{"south": 1}, Hazards: []string{HazardPit}},
	}
	data, err := json.Marshal(rooms)
	require.NoError(t, err)

	path := filepath.Join(dir, "cave.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cave, err := LoadCave(path)
	require.NoError(t, err)
	assert.Len(t, cave, 2)
	room2, ok := cave.Room(2)
	require.True(t, ok)
	assert.True(t, room2.HasHazard(HazardPit))

	_, err = LoadCave(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0o644))
	_, err = LoadCave(badPath)
	assert.Error(t, err)
}
