package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
)

// MenuKeyMap defines the key bindings for the gun picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Scores, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuDetailWidth = 44

// MenuModel is the Bubble Tea model for the gun picker.
type MenuModel struct {
	guns           []config.WeaponConfig
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *config.WeaponConfig
	openScoreboard bool
}

// NewMenuModel creates a gun picker over the given presets.
func NewMenuModel(guns []config.WeaponConfig, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		guns:   guns,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.guns)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.guns) > 0 {
			gun := m.guns[m.cursor]
			m.selected = &gun
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("G U N   J A M"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a gun", m.width))
	b.WriteString("\n\n")

	for i, gun := range m.guns {
		line := "  " + gun.Name
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + gun.Name)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.guns) > 0 {
		b.WriteString("\n")
		for _, l := range gunDetails(m.guns[m.cursor]) {
			b.WriteString(centerText(menuDetailStyle.Render(l), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// gunDetails describes a preset in a few short lines.
func gunDetails(w config.WeaponConfig) []string {
	lines := []string{}
	if w.Description != "" {
		lines = append(lines, truncate(w.Description, menuDetailWidth))
	}
	pellets := ""
	if w.BulletsPerShot > 1 {
		pellets = fmt.Sprintf(" x%d", w.BulletsPerShot)
	}
	lines = append(lines,
		fmt.Sprintf("damage %g%s   ammo %d   reload %gs", w.Damage, pellets, w.MaxAmmo, w.ReloadTime),
		fmt.Sprintf("fire delay %gs   jam %.1f%%   repairs %d", w.FireDelay, w.JamChance*100, w.RepairsNeeded),
	)
	if w.Burst.Enabled {
		lines = append(lines, fmt.Sprintf("burst of %d", w.Burst.Count))
	}
	return lines
}

// Selected returns the chosen gun, or nil if none was picked.
func (m MenuModel) Selected() *config.WeaponConfig {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
