// Package tui is the interactive terminal driver for a blackjack session.
package tui

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/input"
)

// Stage is the prompt the player is answering
type Stage int

const (
	StageName Stage = iota
	StageBankroll
	StageBet
	StageDecision
	StageQuit
	StageRebuy
	StageRebuyAmount
	StageDone
)

// Config configures a session
type Config struct {
	Name        string
	Bankroll    float64 // Suggested starting bankroll
	RNG         *rand.Rand
	Logger      *log.Logger
	GameOptions []game.Option
}

// Model represents the Bubble Tea model for a blackjack session
type Model struct {
	cfg    Config
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	stage    Stage
	name     string
	game     *game.Game
	bet      float64
	gameLog  []entry
	lastErr  string
	quitting bool

	width  int
	height int
}

// New creates a new TUI model
func New(cfg Config) *Model {
	if cfg.RNG == nil {
		panic("rng is required for the tui")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	vp := viewport.New(60, 12)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 32
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		cfg:         cfg,
		logger:      cfg.Logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
	}
	m.setStage(StageName)
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = max(msg.Width-2, 1)
		m.logViewport.Height = max(msg.Height-10, 3)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			m.submit(line)
			if m.stage == StageDone {
				return m, m.quit()
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.stage = StageDone
	return tea.Quit
}

// submit handles one line of input for the current stage
func (m *Model) submit(line string) {
	m.lastErr = ""

	switch m.stage {
	case StageName:
		m.name = line
		if m.name == "" {
			m.name = m.cfg.Name
		}
		m.setStage(StageBankroll)

	case StageBankroll:
		amount, err := m.amountOrDefault(line, m.cfg.Bankroll)
		if err != nil {
			m.fail(err)
			return
		}
		if err := m.startGame(amount); err != nil {
			m.fail(err)
			return
		}
		m.addLog(entry{text: fmt.Sprintf("Welcome %s! Bankroll: %s", m.name, input.FormatMoney(amount)), style: kindInfo})
		m.setStage(StageBet)

	case StageBet:
		bet, err := input.ParseAmount(line)
		if err != nil {
			m.fail(err)
			return
		}
		if err := m.game.ValidateBet(bet); err != nil {
			m.fail(fmt.Errorf("bet must be at most %s", input.FormatMoney(m.game.CurrentBankroll())))
			return
		}
		m.bet = bet
		m.deal()

	case StageDecision:
		d, err := input.ParseDecision(line)
		if err != nil {
			m.fail(errors.New("please enter H to hit or S to stand"))
			return
		}
		res, err := m.game.ApplyPlayerDecision(d)
		if err != nil {
			m.abort(err)
			return
		}
		if res.TurnOver {
			m.finishRound()
		}

	case StageQuit:
		yes, err := input.ParseYesNo(line)
		if err != nil {
			m.fail(err)
			return
		}
		if yes {
			m.setStage(StageDone)
			return
		}
		m.setStage(StageBet)

	case StageRebuy:
		yes, err := input.ParseYesNo(line)
		if err != nil {
			m.fail(err)
			return
		}
		if !yes {
			m.addLog(entry{text: "Out of money. Thanks for playing!", style: kindWarning})
			m.setStage(StageDone)
			return
		}
		m.setStage(StageRebuyAmount)

	case StageRebuyAmount:
		amount, err := input.ParseAmount(line)
		if err != nil {
			m.fail(err)
			return
		}
		if err := m.game.Rebuy(amount); err != nil {
			m.fail(err)
			return
		}
		m.setStage(StageBet)
	}
}

func (m *Model) amountOrDefault(line string, def float64) (float64, error) {
	if line == "" && def > 0 {
		return def, nil
	}
	return input.ParseAmount(line)
}

func (m *Model) startGame(bankroll float64) error {
	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
		for _, en := range formatEvent(e) {
			m.addLog(en)
		}
	}))
	bus.Subscribe(game.NewLogSubscriber(m.cfg.Logger))

	opts := append([]game.Option{game.WithEventBus(bus), game.WithLogger(m.cfg.Logger)}, m.cfg.GameOptions...)
	g, err := game.NewGame(m.cfg.RNG, bankroll, opts...)
	if err != nil {
		return err
	}
	m.game = g
	m.logger.Info("Session started", "player", m.name, "bankroll", bankroll)
	return nil
}

func (m *Model) deal() {
	m.addLog(entry{text: fmt.Sprintf("--- Round %d: bet %s ---", m.game.RoundsPlayed()+1, input.FormatMoney(m.bet)), style: kindInfo})

	r, err := m.game.StartRound()
	if err != nil {
		m.abort(err)
		return
	}
	if r.Phase() == game.PhaseDealerTurn {
		m.finishRound()
		return
	}
	m.setStage(StageDecision)
}

func (m *Model) finishRound() {
	if _, err := m.game.RunDealerTurn(); err != nil {
		m.abort(err)
		return
	}
	if _, err := m.game.Settle(m.bet); err != nil {
		m.abort(err)
		return
	}

	if m.game.IsBroke() {
		m.setStage(StageRebuy)
		return
	}
	m.setStage(StageQuit)
}

// abort reports an error that ended the round and returns to betting
func (m *Model) abort(err error) {
	m.logger.Error("Round failed", "error", err)
	m.fail(err)
	if r := m.game.CurrentRound(); r != nil && r.Phase().Done() {
		m.setStage(StageBet)
	}
}

func (m *Model) fail(err error) {
	m.lastErr = err.Error()
}

func (m *Model) setStage(s Stage) {
	m.stage = s
	m.input.Placeholder = m.placeholder()
}

func (m *Model) placeholder() string {
	switch m.stage {
	case StageName:
		return m.cfg.Name
	case StageBankroll:
		if m.cfg.Bankroll > 0 {
			return input.FormatMoney(m.cfg.Bankroll)
		}
	case StageDecision:
		return "H or S"
	case StageQuit, StageRebuy:
		return "yes or no"
	}
	return ""
}

// addLog appends to the game log and scrolls to it
func (m *Model) addLog(e entry) {
	m.gameLog = append(m.gameLog, e)
	lines := make([]string, len(m.gameLog))
	for i, en := range m.gameLog {
		lines[i] = en.render()
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	m.logViewport.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("♠ Blackjack ♥"))
	if m.game != nil {
		b.WriteString("  ")
		b.WriteString(BankrollStyle.Render(fmt.Sprintf("%s: %s", m.name, input.FormatMoney(m.game.CurrentBankroll()))))
	}
	b.WriteString("\n\n")

	if len(m.gameLog) > 0 {
		b.WriteString(m.logViewport.View())
		b.WriteString("\n\n")
	}

	if m.stage == StageDecision {
		b.WriteString(m.renderTable())
		b.WriteString("\n")
	}

	b.WriteString(PromptStyle.Render(m.prompt()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(ErrorStyle.Render(m.lastErr))
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("Enter to submit • Ctrl+C to quit"))
	return b.String()
}

func (m *Model) renderTable() string {
	r := m.game.CurrentRound()
	if r == nil {
		return ""
	}
	player := r.PlayerHand()
	return HandInfoStyle.Render("Dealer: ") + formatCards([]deck.Card{r.DealerUpcard()}) + HiddenCardStyle.Render(" [??]") + "\n" +
		HandInfoStyle.Render("You:    ") + formatCards(player.Cards()) + HandInfoStyle.Render(fmt.Sprintf(" (%d)", player.Value()))
}

func (m *Model) prompt() string {
	switch m.stage {
	case StageName:
		return "What is your name?"
	case StageBankroll:
		return "How much money are you bringing to the table?"
	case StageBet:
		return fmt.Sprintf("Place your bet (up to %s):", input.FormatMoney(m.game.CurrentBankroll()))
	case StageDecision:
		return "Hit or stand? (H/S)"
	case StageQuit:
		return "Would you like to quit? (yes/no)"
	case StageRebuy:
		return "You are out of money. Buy back in? (yes/no)"
	case StageRebuyAmount:
		return "How much would you like to buy back in for?"
	}
	return ""
}

// Stage returns the prompt currently shown
func (m *Model) Stage() Stage { return m.stage }

// Game returns the session, or nil before the bankroll is entered
func (m *Model) Game() *game.Game { return m.game }

// Name returns the player's name
func (m *Model) Name() string { return m.name }

// LastError returns the message shown for the last rejected input
func (m *Model) LastError() string { return m.lastErr }

// Log returns the plain text of the game log
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	for i, e := range m.gameLog {
		out[i] = e.text
	}
	return out
}

// Run starts the interactive program and blocks until the player quits
func Run(m *Model, opts ...tea.ProgramOption) error {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*Model); ok && fm.game != nil {
		m.logger.Info("Session ended",
			"player", fm.name,
			"rounds", fm.game.RoundsPlayed(),
			"bankroll", fm.game.CurrentBankroll())
		fmt.Printf("Thanks for playing, %s. You leave with %s.\n", fm.name, input.FormatMoney(fm.game.CurrentBankroll()))
	}
	return nil
}
