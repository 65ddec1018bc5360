package main

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copySelectedTitle puts the selected card's title on the system
// clipboard.
func (m *model) copySelectedTitle() tea.Cmd {
	if m.selected == nil {
		return nil
	}
	e, ok := m.store.Get(*m.selected)
	if !ok {
		return nil
	}
	if err := clipboard.WriteAll(e.Title); err != nil {
		return m.setError("clipboard: " + err.Error())
	}
	return m.setSuccess("copied \"" + e.Title + "\"")
}
