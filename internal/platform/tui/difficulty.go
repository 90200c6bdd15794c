package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/core"
)

// difficultyOptions lists the presets in menu order.
var difficultyOptions = []struct {
	preset config.DifficultyPreset
	label  string
	hint   string
}{
	{config.DifficultyEasy, "Easy", "slower ball, faster paddle"},
	{config.DifficultyNormal, "Normal", "the configured speeds"},
	{config.DifficultyHard, "Hard", "faster ball, slower paddle"},
}

// DifficultyModel lets users choose a difficulty preset for the selected layout.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  config.DifficultyPreset
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty picker with the cursor on initial.
func NewDifficultyModel(title string, initial string, width, height int) DifficultyModel {
	cursor := 1
	for i, opt := range difficultyOptions {
		if string(opt.preset) == initial {
			cursor = i
		}
	}

	return DifficultyModel{
		title:     title,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = difficultyOptions[m.cursor].preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		line := fmt.Sprintf("%-8s %s", opt.label, menuDimStyle.Render(opt.hint))
		if i == m.cursor {
			line = menuCursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or "" while still choosing.
func (m DifficultyModel) Selected() string {
	return string(m.selected)
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the picker and returns the preset, or "" if the user backed out.
func RunDifficultySelector(title, initial string, cfg core.RuntimeConfig) (preset string, quit bool, err error) {
	model := NewDifficultyModel(title, initial, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return "", true, nil
	}

	return m.Selected(), m.IsQuitting(), nil
}
