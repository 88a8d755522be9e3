package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoBot struct{ got []string }

func (b *echoBot) Reply(message string) string {
	b.got = append(b.got, message)
	return "喜びを感じていますか？"
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func TestInitialView(t *testing.T) {
	m := New(&echoBot{})
	assert.Equal(t, "Loading...", m.View())

	m = sized(t, m)
	require.Len(t, m.History(), 1)
	assert.Contains(t, m.History()[0], Greeting)
	assert.Contains(t, m.View(), "名言ボット")
}

func TestEnterSendsMessage(t *testing.T) {
	bot := &echoBot{}
	m := sized(t, New(bot))

	for _, r := range "嬉しい" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Equal(t, []string{"嬉しい"}, bot.got)
	history := m.History()
	require.Len(t, history, 3)
	assert.Contains(t, history[1], "嬉しい")
	assert.Contains(t, history[2], "喜びを感じていますか？")
	assert.Equal(t, "", m.input.Value())
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	bot := &echoBot{}
	m := sized(t, New(bot))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Empty(t, bot.got)
	assert.Len(t, m.History(), 1)
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc} {
		_, cmd := New(&echoBot{}).Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
