package tui

// confirmModel asks to confirm a destructive action on one row.
type confirmModel struct {
	action string
	target string
}

func (m confirmModel) View() string {
	action := m.action
	if action == "" {
		action = "Удалить"
	}
	content := action + " \"" + m.target + "\"?\n\n"
	content += "y да    n / esc нет"
	return overlayBoxStyle.Render(content)
}
