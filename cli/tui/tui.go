package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raidreplay/tobengine/types"
)

// Run starts the inspector over an already-loaded challenge. Blocks
// until the user quits.
func Run(challenge *types.Challenge) error {
	_, err := tea.NewProgram(newModel(challenge), tea.WithAltScreen()).Run()
	return err
}
