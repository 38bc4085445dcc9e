package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/wumpus-hunt/pkg/chat"
	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

// BaseSystemPrompt frames the LLM as a cave guide. It never sees more
// of the world than the prompt embeds.
const BaseSystemPrompt = `You are a seasoned guide helping a hunter survive a cave in a game of Hunt the Wumpus. The cave is a small graph of rooms. One room holds the wumpus; entering it is fatal. Rooms tagged "pit" are fatal to enter. The hunter can move through exits or shoot an arrow through an exit to kill the wumpus. A stench means the wumpus is in an adjacent room. A breeze means a pit is adjacent. Be concise and practical.`

const adviceInstructions = `Give the hunter one or two sentences of advice for the current situation. Do not invent rooms or exits.`

const playInstructions = `Choose the hunter's next action. Respond with ONLY a JSON object, no other text, in this exact shape:
{"action": "move" | "shoot" | "invalid", "direction": "<one of the current room's exits>", "message": "<one sentence explaining the choice>"}
Use "shoot" only when you believe the wumpus is behind that exit. Use "invalid" with an explanatory message if no sensible action exists.`

// AdviceMessages builds the conversation for a hint request. The
// prompt embeds the current room's description, exits and warnings.
func AdviceMessages(gs *game.GameState) []chat.ChatMessage {
	room := gs.CurrentRoom()
	var sb strings.Builder
	sb.WriteString("Current room: ")
	sb.WriteString(room.Description)
	sb.WriteString("\nExits: ")
	sb.WriteString(strings.Join(room.ExitDirections(), ", "))
	if warnings := gs.Warnings(); len(warnings) > 0 {
		sb.WriteString("\nWarnings: ")
		sb.WriteString(strings.Join(warnings, " "))
	}
	sb.WriteString(fmt.Sprintf("\nArrows left: %d", gs.Hunter().Arrows))
	sb.WriteString("\n\n")
	sb.WriteString(adviceInstructions)

	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: BaseSystemPrompt},
		{Role: chat.ChatRoleUser, Content: sb.String()},
	}
}

// PlayMessages builds the conversation for one autonomous turn. The
// full serialized game state goes into the prompt so the model can
// reason about the whole cave.
func PlayMessages(gs *game.GameState) ([]chat.ChatMessage, error) {
	stateJSON, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize game state: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Full game state:\n")
	sb.Write(stateJSON)
	sb.WriteString("\n\n")
	sb.WriteString(playInstructions)

	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: BaseSystemPrompt},
		{Role: chat.ChatRoleUser, Content: sb.String()},
	}, nil
}

const (
	ActionMove    = "move"
	ActionShoot   = "shoot"
	ActionInvalid = "invalid"
)

// Action is the structured command the model returns in play mode.
type Action struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	Message   string `json:"message"`
}

// ParseError means the model's reply could not be read as an Action.
// Callers swallow it with a generic message; transport errors are a
// different kind and end AI play loudly.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid AI action: " + e.Reason
}

// ParseAction extracts an Action from an LLM reply. Models wrap JSON
// in markdown fences or chatter often enough that we scan for the
// first balanced object rather than unmarshaling the raw reply.
func ParseAction(reply string) (*Action, error) {
	raw := extractJSONObject(reply)
	if raw == "" {
		return nil, &ParseError{Reason: "no JSON object in reply"}
	}

	var action Action
	if err := json.Unmarshal([]byte(raw), &action); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	switch action.Action {
	case ActionMove, ActionShoot:
		if action.Direction == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("action %q requires a direction", action.Action)}
		}
	case ActionInvalid:
	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unknown action %q", action.Action)}
	}
	return &action, nil
}

// extractJSONObject returns the first brace-balanced substring of s,
// or "" when none exists.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
