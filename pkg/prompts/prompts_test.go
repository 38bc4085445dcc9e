package prompts

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/wumpus-hunt/pkg/chat"
	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

func newTestGame(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState("Hunter", game.DefaultCave(), game.DefaultWumpusRoom, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return gs
}

func TestAdviceMessages(t *testing.T) {
	gs := newTestGame(t)

	messages := AdviceMessages(gs)
	require.Len(t, messages, 2)
	assert.Equal(t, chat.ChatRoleSystem, messages[0].Role)
	assert.Equal(t, BaseSystemPrompt, messages[0].Content)

	assert.Equal(t, chat.ChatRoleUser, messages[1].Role)
	prompt := messages[1].Content
	assert.Contains(t, prompt, gs.CurrentRoom().Description)
	assert.Contains(t, prompt, "east, north")
	assert.Contains(t, prompt, game.MsgStench, "start room is adjacent to the wumpus")
	assert.Contains(t, prompt, "Arrows left: 3")
}

func TestPlayMessages_EmbedsFullState(t *testing.T) {
	gs := newTestGame(t)

	messages, err := PlayMessages(gs)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	stateJSON, err := json.Marshal(gs)
	require.NoError(t, err)
	assert.Contains(t, messages[1].Content, string(stateJSON))
	assert.Contains(t, messages[1].Content, `"action"`)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    *Action
		wantErr bool
	}{
		{
			name:  "clean JSON",
			reply: `{"action":"move","direction":"north","message":"The stench is to the east."}`,
			want:  &Action{Action: "move", Direction: "north", Message: "The stench is to the east."},
		},
		{
			name:  "markdown fenced",
			reply: "```json\n{\"action\":\"shoot\",\"direction\":\"east\",\"message\":\"Going for the kill.\"}\n```",
			want:  &Action{Action: "shoot", Direction: "east", Message: "Going for the kill."},
		},
		{
			name:  "surrounded by chatter",
			reply: `Here is my choice: {"action":"move","direction":"south","message":"Retreating."} Good luck!`,
			want:  &Action{Action: "move", Direction: "south", Message: "Retreating."},
		},
		{
			name:  "invalid action kind is allowed",
			reply: `{"action":"invalid","message":"No safe move exists."}`,
			want:  &Action{Action: "invalid", Message: "No safe move exists."},
		},
		{
			name:    "no JSON at all",
			reply:   "I think you should move north.",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			reply:   `{"action":"move","direction":"north"`,
			wantErr: true,
		},
		{
			name:    "unknown action",
			reply:   `{"action":"dance","message":"?"}`,
			wantErr: true,
		},
		{
			name:    "move without direction",
			reply:   `{"action":"move","message":"Somewhere."}`,
			wantErr: true,
		},
		{
			name:    "malformed JSON object",
			reply:   `{"action": move}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := ParseAction(tt.reply)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr), "error must be a ParseError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}
}

func TestExtractJSONObject_IgnoresBracesInStrings(t *testing.T) {
	reply := `{"action":"invalid","message":"beware the {pit}"}`
	assert.Equal(t, reply, extractJSONObject(reply))
}
