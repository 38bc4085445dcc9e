package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/wumpus-hunt/internal/config"
	"github.com/jwebster45206/wumpus-hunt/internal/services"
	"github.com/jwebster45206/wumpus-hunt/internal/storage"
	"github.com/jwebster45206/wumpus-hunt/pkg/game"
	"github.com/jwebster45206/wumpus-hunt/pkg/prompts"
)

const (
	GuideName       = "Guide"
	PlaceHolderText = "move north · shoot east · ask · play · save · quit"

	llmTimeout = 60 * time.Second
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	cfg   *config.Config
	llm   services.LLMService
	store storage.Storage
	gs    *game.GameState
	log   *slog.Logger

	viewport   viewport.Model
	textarea   textarea.Model
	transcript []string
	ready      bool
	width      int
	height     int
	loading    bool

	// AI play mode state
	aiPlaying bool

	// Modal state
	showQuitModal bool
	gameOver      bool
}

type adviceMsg struct {
	reply string
	err   error
}

type aiActionMsg struct {
	action *prompts.Action
	err    error
}

type saveDoneMsg struct {
	err error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	guideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

var titleCaser = cases.Title(language.English)

func NewConsoleUI(cfg *config.Config, llm services.LLMService, store storage.Storage, gs *game.GameState, log *slog.Logger) *ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	ui := &ConsoleUI{
		cfg:      cfg,
		llm:      llm,
		store:    store,
		gs:       gs,
		log:      log,
		viewport: vp,
		textarea: ta,
	}

	ui.append(titleStyle.Render("HUNT THE WUMPUS"))
	ui.append(narratorStyle.Render("Somewhere in this cave lurks the wumpus. Find it before it finds you."))
	ui.append(narratorStyle.Render(gs.CurrentRoom().Description))
	ui.describeRoom()
	return ui
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		ui.viewport.Width = msg.Width - 4
		ui.viewport.Height = msg.Height - 5
		ui.textarea.SetWidth(msg.Width - 4)
		ui.ready = true
		ui.refresh()
		return ui, nil

	case tea.KeyMsg:
		return ui.handleKey(msg)

	case adviceMsg:
		ui.loading = false
		if msg.err != nil {
			ui.log.Warn("Advice request failed", "error", msg.err)
			ui.append(errorStyle.Render(fmt.Sprintf("The guide is unreachable: %v", msg.err)))
		} else {
			ui.append(guideStyle.Render(GuideName+": ") + narratorStyle.Render(msg.reply))
		}
		return ui, nil

	case aiActionMsg:
		return ui.handleAIAction(msg)

	case saveDoneMsg:
		ui.loading = false
		if msg.err != nil {
			ui.append(errorStyle.Render(fmt.Sprintf("Save failed: %v", msg.err)))
		} else {
			ui.append(narratorStyle.Render("Game saved."))
		}
		return ui, nil
	}

	var taCmd, vpCmd tea.Cmd
	ui.textarea, taCmd = ui.textarea.Update(msg)
	ui.viewport, vpCmd = ui.viewport.Update(msg)
	return ui, tea.Batch(taCmd, vpCmd)
}

func (ui *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if ui.showQuitModal {
		switch msg.String() {
		case "y", "Y", "enter":
			return ui, tea.Quit
		case "n", "N", "esc":
			ui.showQuitModal = false
		}
		return ui, nil
	}

	if ui.gameOver {
		switch msg.String() {
		case "n", "N":
			return ui.startNewGame()
		case "q", "Q", "ctrl+c", "enter":
			return ui, tea.Quit
		}
		return ui, nil
	}

	switch msg.String() {
	case "ctrl+c":
		ui.showQuitModal = true
		return ui, nil
	case "ctrl+y":
		_ = clipboard.WriteAll(stripANSI(strings.Join(ui.transcript, "\n")))
		return ui, nil
	case "enter":
		line := strings.TrimSpace(ui.textarea.Value())
		ui.textarea.Reset()
		if line == "" {
			return ui, nil
		}
		return ui, ui.handleInput(line)
	}

	var taCmd, vpCmd tea.Cmd
	ui.textarea, taCmd = ui.textarea.Update(msg)
	ui.viewport, vpCmd = ui.viewport.Update(msg)
	return ui, tea.Batch(taCmd, vpCmd)
}

// handleInput dispatches one line of player input. Returns a command
// when the action needs async work (LLM call, save).
func (ui *ConsoleUI) handleInput(line string) tea.Cmd {
	ui.append(userStyle.Render("> " + line))

	if ui.aiPlaying {
		if strings.EqualFold(line, "stop") {
			ui.aiPlaying = false
			ui.append(narratorStyle.Render("AI play stopped. You have the torch again."))
		} else {
			ui.append(statusStyle.Render("The guide is playing. Type 'stop' to take over."))
		}
		return nil
	}

	if ui.loading {
		ui.append(statusStyle.Render("Waiting for the guide..."))
		return nil
	}

	cmd := game.ParseCommand(line)
	switch cmd.Type {
	case game.CmdMove:
		if cmd.Direction == "" {
			ui.append(statusStyle.Render("Move where? Try: move north"))
			return nil
		}
		res, err := ui.gs.Move(cmd.Direction)
		ui.applyTurn(res, err)
		return nil

	case game.CmdShoot:
		if cmd.Direction == "" {
			ui.append(statusStyle.Render("Shoot where? Try: shoot north"))
			return nil
		}
		res, err := ui.gs.Shoot(cmd.Direction)
		ui.applyTurn(res, err)
		return nil

	case game.CmdAsk:
		ui.loading = true
		ui.append(statusStyle.Render("Asking the guide..."))
		return ui.adviceCmd()

	case game.CmdPlay:
		ui.aiPlaying = true
		ui.loading = true
		ui.append(narratorStyle.Render("The guide takes the torch. Type 'stop' to take over."))
		return ui.aiTurnCmd()

	case game.CmdSave:
		ui.loading = true
		return ui.saveCmd()

	case game.CmdQuit:
		ui.showQuitModal = true
		return nil

	default:
		ui.append(errorStyle.Render("Invalid action.") + statusStyle.Render(" Commands: move, shoot, ask, play, save, quit"))
		return nil
	}
}

// applyTurn renders the result of one move or shot, then the room,
// warnings and status when the hunt continues.
func (ui *ConsoleUI) applyTurn(res *game.TurnResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, game.ErrInvalidDirection):
			ui.append(errorStyle.Render("Invalid direction!"))
		case errors.Is(err, game.ErrNoArrows):
			ui.append(errorStyle.Render("Your quiver is empty!"))
		default:
			ui.append(errorStyle.Render(err.Error()))
		}
		return
	}

	for _, event := range res.Events {
		ui.append(narratorStyle.Render(event))
	}

	if res.Outcome.Terminal() {
		ui.gameOver = true
		ui.aiPlaying = false
		return
	}
	ui.describeRoom()
}

func (ui *ConsoleUI) describeRoom() {
	room := ui.gs.CurrentRoom()
	for _, w := range ui.gs.Warnings() {
		ui.append(warningStyle.Render(w))
	}

	dirs := room.ExitDirections()
	for i, d := range dirs {
		dirs[i] = titleCaser.String(d)
	}
	ui.append(statusStyle.Render(fmt.Sprintf("Room %d · Exits: %s · Arrows: %d · Turn %d",
		room.ID, strings.Join(dirs, ", "), ui.gs.Hunter().Arrows, ui.gs.Turns)))
}

func (ui *ConsoleUI) handleAIAction(msg aiActionMsg) (tea.Model, tea.Cmd) {
	ui.loading = false
	if !ui.aiPlaying {
		// Player typed stop while the request was in flight.
		return ui, nil
	}

	if msg.err != nil {
		ui.aiPlaying = false
		var parseErr *prompts.ParseError
		if errors.As(msg.err, &parseErr) {
			ui.append(errorStyle.Render("AI response was invalid."))
		} else {
			ui.log.Warn("AI play failed", "error", msg.err)
			ui.append(errorStyle.Render(fmt.Sprintf("AI play ended: %v", msg.err)))
		}
		return ui, nil
	}

	action := msg.action
	ui.append(guideStyle.Render(GuideName+": ") + narratorStyle.Render(action.Message))

	switch action.Action {
	case prompts.ActionMove:
		res, err := ui.gs.Move(action.Direction)
		ui.applyTurn(res, err)
	case prompts.ActionShoot:
		res, err := ui.gs.Shoot(action.Direction)
		ui.applyTurn(res, err)
	default:
		ui.aiPlaying = false
		ui.append(narratorStyle.Render("The guide hesitates and hands back the torch."))
		return ui, nil
	}

	if ui.gameOver || !ui.aiPlaying {
		return ui, nil
	}

	ui.loading = true
	return ui, ui.aiTurnCmd()
}

func (ui *ConsoleUI) adviceCmd() tea.Cmd {
	messages := prompts.AdviceMessages(ui.gs)
	llm := ui.llm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()
		resp, err := llm.Chat(ctx, messages)
		if err != nil {
			return adviceMsg{err: err}
		}
		return adviceMsg{reply: resp.Message}
	}
}

func (ui *ConsoleUI) aiTurnCmd() tea.Cmd {
	messages, err := prompts.PlayMessages(ui.gs)
	llm := ui.llm
	return func() tea.Msg {
		if err != nil {
			return aiActionMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()
		resp, chatErr := llm.Chat(ctx, messages)
		if chatErr != nil {
			return aiActionMsg{err: chatErr}
		}
		action, parseErr := prompts.ParseAction(resp.Message)
		if parseErr != nil {
			return aiActionMsg{err: parseErr}
		}
		return aiActionMsg{action: action}
	}
}

func (ui *ConsoleUI) saveCmd() tea.Cmd {
	store := ui.store
	gs := ui.gs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return saveDoneMsg{err: store.SaveGameState(ctx, gs)}
	}
}

func (ui *ConsoleUI) startNewGame() (tea.Model, tea.Cmd) {
	gs, err := newGame(ui.cfg)
	if err != nil {
		ui.append(errorStyle.Render(fmt.Sprintf("Could not start a new hunt: %v", err)))
		return ui, tea.Quit
	}
	ui.gs = gs
	ui.gameOver = false
	ui.aiPlaying = false
	ui.transcript = nil
	ui.append(titleStyle.Render("HUNT THE WUMPUS"))
	ui.append(narratorStyle.Render("A fresh hunt begins."))
	ui.append(narratorStyle.Render(gs.CurrentRoom().Description))
	ui.describeRoom()
	return ui, nil
}

func (ui *ConsoleUI) append(line string) {
	ui.transcript = append(ui.transcript, line)
	ui.refresh()
}

func (ui *ConsoleUI) refresh() {
	width := ui.viewport.Width
	if width <= 0 {
		width = 80
	}
	content := wordwrap.String(strings.Join(ui.transcript, "\n"), width)
	ui.viewport.SetContent(content)
	ui.viewport.GotoBottom()
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Lighting the torch..."
	}

	if ui.showQuitModal {
		return ui.overlay(modalTitleStyle.Render("Leave the cave?") + "\n\n[y] quit    [n] keep hunting")
	}
	if ui.gameOver {
		verdict := "The wumpus lives on."
		if ui.gs.Outcome == game.OutcomeWon {
			verdict = "The cave is safe once more."
		}
		return ui.overlay(modalTitleStyle.Render("The hunt is over.") + "\n" + verdict + "\n\n[n] new hunt    [q] quit")
	}

	status := ""
	if ui.loading {
		status = statusStyle.Render(" · thinking")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.viewport.View(),
		statusStyle.Render(strings.Repeat("─", max(ui.width-2, 1)))+status,
		ui.textarea.View(),
	)
}

func (ui *ConsoleUI) overlay(content string) string {
	return lipgloss.Place(ui.width, ui.height,
		lipgloss.Center, lipgloss.Center,
		modalStyle.Render(content))
}

// stripANSI removes styling before the transcript reaches the
// system clipboard.
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
