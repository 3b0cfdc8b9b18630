package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// MenuItem represents a selectable tank class in the menu.
type MenuItem struct {
	Class tanks.Class
	Stats tanks.ClassStats
	Best  int // best recorded score with this class
}

// MenuModel is the Bubble Tea model for the class picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	renderer       *lipgloss.Renderer
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user picks a class
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The store, when present, supplies
// the best score per class.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	best := make(map[string]int)
	if store != nil {
		stats, err := store.VariantStats(tanks.GameID)
		if err != nil {
			logger.Warn("could not load class stats", "error", err)
		}
		for _, s := range stats {
			best[s.Variant] = s.HighScore
		}
	}

	classes := tanks.Classes()
	items := make([]MenuItem, 0, len(classes))
	for _, c := range classes {
		items = append(items, MenuItem{
			Class: c,
			Stats: c.Stats(),
			Best:  best[c.String()],
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		renderer:  lipgloss.DefaultRenderer(),
		keyMapper: NewKeyMapper(),
	}
}

// WithRenderer returns a copy of m that styles text for r.
func (m MenuModel) WithRenderer(r *lipgloss.Renderer) MenuModel {
	if r != nil {
		m.renderer = r
	}
	return m
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  T A N K S  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose your tank", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.renderer.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}

		s := item.Stats
		line := fmt.Sprintf("%s%c %-8s speed %.1f  reload %4dms  shell %.0f",
			cursor, s.Barrel[tanks.DirUp], s.Name, s.Speed, s.FireRate.Milliseconds(), s.BulletSpeed)
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")

		detail := s.Blurb
		if item.Best > 0 {
			detail = fmt.Sprintf("%s  (best %d)", detail, item.Best)
		}
		b.WriteString(dimStyle.Render(centerText(detail, m.width)))
		b.WriteString("\n\n")
	}

	controls := "Up/Down: Navigate  |  Enter: Deploy  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
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
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Class           tanks.Class
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result, nil
	}

	result.Class = m.Selected().Class
	return result, nil
}
