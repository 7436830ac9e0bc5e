package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/storage"
)

// ErrNoFactory is returned when a session has no way to build games.
var ErrNoFactory = errors.New("tui: session needs a game factory")

// GameFactory builds a fresh arena with the given gun preset.
type GameFactory func(gun string) (Game, error)

// SessionOptions configure a player session.
type SessionOptions struct {
	Guns    []config.WeaponConfig
	NewGame GameFactory
	Store   *storage.Store // Optional run history
	Config  core.RuntimeConfig
	Gun     string // Preselected gun; skips the picker on start
	User    string
	Logger  *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

var sessionErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// SessionModel manages the whole flow: gun picker -> arena -> gun picker,
// with the scoreboard one key away. It is the top-level model for both local
// play and SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	id       string
	logger   *log.Logger
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	scores   ScoreboardModel
	game     *Model
	status   string
	quitting bool
}

// NewSessionModel creates a session. With opts.Gun set the arena starts
// right away.
func NewSessionModel(opts SessionOptions) (SessionModel, error) {
	if opts.NewGame == nil {
		return SessionModel{}, ErrNoFactory
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	id := uuid.NewString()
	m := SessionModel{
		opts:   opts,
		id:     id,
		logger: opts.Logger.With("session", id),
		config: opts.Config,
		menu:   NewMenuModel(opts.Guns, opts.Config),
	}

	if opts.Gun != "" {
		if err := m.startGame(opts.Gun); err != nil {
			return SessionModel{}, err
		}
	}
	m.logger.Info("session started", "user", opts.User)
	return m, nil
}

// ID returns the session's unique id.
func (m SessionModel) ID() string {
	return m.id
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Guns, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		m.menu = m.freshMenu()
		return m, nil

	case m.menu.Selected() != nil:
		gun := m.menu.Selected().ID
		m.menu = m.freshMenu()
		if err := m.startGame(gun); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		m.logger.Debug("back to gun picker", "gun", m.game.game.Gun().ID)
		m.game = nil
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// startGame builds an arena for gun and switches to it.
func (m *SessionModel) startGame(gun string) error {
	g, err := m.opts.NewGame(gun)
	if err != nil {
		m.logger.Error("cannot start game", "gun", gun, "error", err)
		return fmt.Errorf("tui: cannot start game: %w", err)
	}

	model := NewModel(g, m.opts.Store, m.config, m.logger)
	m.game = &model
	m.screen = screenGame
	m.status = ""
	m.logger.Info("game started", "gun", g.Gun().ID)
	return nil
}

func (m SessionModel) freshMenu() MenuModel {
	menu := NewMenuModel(m.opts.Guns, m.config)
	menu.cursor = m.menu.cursor
	return menu
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.logger.Info("session ended", "user", m.opts.User)
	return m, tea.Quit
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.status != "" {
		view += "\n" + centerText(sessionErrorStyle.Render(m.status), m.config.ScreenW)
	}
	return view
}

// Run starts a local session in the alternate screen and blocks until the
// player quits.
func Run(opts SessionOptions) error {
	model, err := NewSessionModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
