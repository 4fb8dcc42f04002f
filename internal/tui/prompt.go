package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel asks for the numeric ID of the resource to attach to the
// current scope, e.g. the template a user is granted.
type promptModel struct {
	title  string
	input  textinput.Model
	errMsg string
}

func newPromptModel(title string) *promptModel {
	in := textinput.New()
	in.Placeholder = "ID"
	in.CharLimit = 19
	in.Width = 20
	in.Focus()
	return &promptModel{title: title, input: in}
}

// value returns the entered ID; only positive integers are accepted.
func (m *promptModel) value() (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(m.input.Value()), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (m *promptModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *promptModel) View() string {
	content := m.title + "\n\n" + m.input.View()
	if m.errMsg != "" {
		content += "\n" + errorStyle.Render(m.errMsg)
	}
	content += "\n\nenter подтвердить    esc отмена"
	return overlayBoxStyle.Render(content)
}
