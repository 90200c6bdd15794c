package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return sm
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(openTestStore(t), testRuntime(), nil)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = sessionUpdate(t, m, enter)
	if m.screen != screenDifficulty {
		t.Fatalf("screen = %v after picking a layout, expected difficulty", m.screen)
	}
	if m.gameID != "classic" {
		t.Errorf("gameID = %q, expected the first layout", m.gameID)
	}

	// Pick hard
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionUpdate(t, m, enter)
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, expected a running game", m.screen)
	}
	if m.quitting {
		t.Fatal("starting a game must not end the session")
	}
	if got := difficultyOf(m.gameModel.game); got != "hard" {
		t.Errorf("difficulty = %q, expected hard", got)
	}
	if m.lastPreset != "hard" {
		t.Errorf("lastPreset = %q, expected hard", m.lastPreset)
	}

	// Pause, then back to the menu
	m = sessionUpdate(t, m, runeKey('p'))
	m = sessionUpdate(t, m, TickMsg{Gen: m.gameModel.gen})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.gameModel != nil {
		t.Errorf("screen = %v, expected menu after leaving a paused game", m.screen)
	}
}

func TestSessionModelDifficultyBack(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), nil)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after backing out", m.screen)
	}
	if m.quitting {
		t.Error("backing out of the difficulty picker must not end the session")
	}
}

func TestSessionModelScoreboard(t *testing.T) {
	m := NewSessionModel(openTestStore(t), testRuntime(), nil)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, expected scoreboard", m.screen)
	}
	if m.View() == "" {
		t.Error("scoreboard should render")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after leaving the scoreboard", m.screen)
	}
}

func TestSessionModelQuit(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), nil)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(SessionModel).quitting || next.View() != "" {
		t.Error("session should be quitting and render nothing")
	}
}
