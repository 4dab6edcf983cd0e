package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raidreplay/tobengine/types"
)

type keyMap struct {
	Up, Down, Left, Right, Quit key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous player")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next player")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous tick, or stage with shift")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tick, or stage with shift")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// model is the inspector's state: the selected stage, tick, and party
// member within an already-loaded, immutable challenge.
type model struct {
	challenge *types.Challenge
	stages    []*types.StageInfo

	stageIdx  int
	tick      uint32
	playerIdx int

	width, height int
	quitting      bool
}

func newModel(challenge *types.Challenge) model {
	return model{
		challenge: challenge,
		stages:    challenge.StageInfos(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.playerIdx = movePlayer(m.playerIdx, len(m.challenge.Party), -1)
		case key.Matches(msg, keys.Down):
			m.playerIdx = movePlayer(m.playerIdx, len(m.challenge.Party), 1)
		case msg.String() == "H":
			m.stageIdx, m.tick = moveStage(m.stageIdx, len(m.stages), -1)
		case msg.String() == "L":
			m.stageIdx, m.tick = moveStage(m.stageIdx, len(m.stages), 1)
		case key.Matches(msg, keys.Left):
			m.tick = moveTick(m.tick, m.currentTotalTicks(), -1)
		case key.Matches(msg, keys.Right):
			m.tick = moveTick(m.tick, m.currentTotalTicks(), 1)
		}
	}
	return m, nil
}

func (m model) currentTotalTicks() uint32 {
	stage := m.currentStage()
	if stage == nil {
		return 0
	}
	return stage.Events.TotalTicks
}

func (m model) currentStage() *types.StageInfo {
	if m.stageIdx < 0 || m.stageIdx >= len(m.stages) {
		return nil
	}
	return m.stages[m.stageIdx]
}

func (m model) currentPlayer() string {
	if m.playerIdx < 0 || m.playerIdx >= len(m.challenge.Party) {
		return ""
	}
	return m.challenge.Party[m.playerIdx]
}

// movePlayer clamps idx + delta to [0, count).
func movePlayer(idx, count, delta int) int {
	return clamp(idx+delta, count)
}

// moveStage clamps idx + delta to [0, count) and resets tick to 0,
// since a tick position only makes sense relative to its own stage.
func moveStage(idx, count, delta int) (int, uint32) {
	return clamp(idx+delta, count), 0
}

// moveTick clamps tick + delta to [0, total). total == 0 means the
// stage has no ticks and tick stays 0.
func moveTick(tick uint32, total uint32, delta int) uint32 {
	if total == 0 {
		return 0
	}
	signed := int(tick) + delta
	switch {
	case signed < 0:
		return 0
	case signed >= int(total):
		return total - 1
	default:
		return uint32(signed)
	}
}

func clamp(idx, count int) int {
	if count == 0 {
		return 0
	}
	switch {
	case idx < 0:
		return 0
	case idx >= count:
		return count - 1
	default:
		return idx
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s", m.challenge.Type, m.challenge.Mode)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n\n", labelStyle.Render("status:"), valueStyle.Render(m.challenge.Status.String())))

	b.WriteString(m.renderStageHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderRoster())
	b.WriteString("\n")
	b.WriteString(m.renderPlayerDetail())

	help := helpStyle.Render("↑/↓ player · ←/→ tick · shift+h/shift+l stage · q quit")
	return boxStyle.Render(b.String()) + "\n" + help
}

func (m model) renderStageHeader() string {
	stage := m.currentStage()
	if stage == nil {
		return labelStyle.Render("stage:") + valueStyle.Render("none")
	}
	return fmt.Sprintf("%s %s\n%s %d / %d",
		labelStyle.Render("stage:"), valueStyle.Render(stage.Stage.String()),
		labelStyle.Render("tick:"), m.tick, stage.Events.TotalTicks)
}

func (m model) renderRoster() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("party:"))
	b.WriteString("\n")
	for i, username := range m.challenge.Party {
		if i == m.playerIdx {
			b.WriteString("  " + selectedPlayerStyle.Render("> "+username))
		} else {
			b.WriteString("  " + valueStyle.Render("  "+username))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderPlayerDetail() string {
	stage := m.currentStage()
	username := m.currentPlayer()
	if stage == nil || username == "" {
		return ""
	}

	states, ok := stage.PlayerState(username)
	if !ok {
		return valueStyle.Render(username + ": no recorded state this stage")
	}
	state := states.GetTick(int(m.tick))
	if state == nil {
		return valueStyle.Render(username + ": no state at this tick")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("player:"), valueStyle.Render(username)))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("death:"), deathStyle(state.DeathState)))

	b.WriteString(labelStyle.Render("gear:"))
	b.WriteString("\n")
	for _, slot := range types.EquipmentSlots() {
		item := state.EquippedItem(slot)
		if item == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: item %d x%d\n", slot, item.ID, item.Quantity))
	}
	return b.String()
}

func deathStyle(d types.DeathState) string {
	switch d {
	case types.Alive:
		return aliveStyle.Render("alive")
	case types.JustDied:
		return deadStyle.Render("just died")
	case types.Dead:
		return deadStyle.Render("dead")
	default:
		return valueStyle.Render("unknown")
	}
}
