package game

import "strings"

type CommandType string

const (
	CmdMove  CommandType = "move"
	CmdShoot CommandType = "shoot"
	CmdAsk   CommandType = "ask"
	CmdPlay  CommandType = "play"
	CmdSave  CommandType = "save"
	CmdQuit  CommandType = "quit"
	CmdNone  CommandType = "" // unrecognized input
)

// Command is one parsed line of player input.
type Command struct {
	Type      CommandType
	Direction string // argument for move and shoot
	Raw       string
}

// ParseCommand turns a raw input line into a Command. Unrecognized
// actions come back as CmdNone with the raw text preserved.
func ParseCommand(input string) Command {
	known := map[string]CommandType{
		"move":  CmdMove,
		"m":     CmdMove,
		"go":    CmdMove,
		"shoot": CmdShoot,
		"s":     CmdShoot,
		"ask":   CmdAsk,
		"play":  CmdPlay,
		"save":  CmdSave,
		"quit":  CmdQuit,
		"q":     CmdQuit,
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Type: CmdNone, Raw: input}
	}

	fields := strings.Fields(strings.ToLower(trimmed))
	cmd, ok := known[fields[0]]
	if !ok {
		return Command{Type: CmdNone, Raw: trimmed}
	}

	c := Command{Type: cmd, Raw: trimmed}
	if len(fields) > 1 {
		c.Direction = fields[1]
	}
	return c
}
