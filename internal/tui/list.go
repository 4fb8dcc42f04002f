package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type column struct {
	title string
	width int
}

// listRow is one rendered line of a list page. id is what "c" copies and
// what remove receives.
type listRow struct {
	id    int64
	name  string
	cells []string
}

// listPage is one loaded page of rows. pages is zero for lists the backend
// does not paginate.
type listPage struct {
	rows    []listRow
	total   int64
	current int
	pages   int
}

// listConfig describes one resource list. open, remove and add are
// optional. add attaches the resource with the entered ID to the scope.
type listConfig struct {
	page    string
	title   string
	columns []column
	back    string

	// scoped lists need a parent (scopeMsg) before they can load
	scoped bool

	load   func(ctx context.Context, scopeID int64, page int) (listPage, error)
	remove func(ctx context.Context, scopeID int64, row listRow) error
	open   func(row listRow) tea.Cmd
	add    func(ctx context.Context, scopeID, id int64) error

	removeAction string
	openHint     string
	addAction    string
	addHint      string
}

// ListModel is a resource list page: navigation, paging, reload, copy of
// the row ID and delete with confirmation.
type ListModel struct {
	ctx context.Context
	cfg listConfig

	scopeID    int64
	scopeLabel string

	rows    []listRow
	idx     int
	page    int
	pages   int
	total   int64
	loading bool
	spinner spinner.Model

	status  string
	errMsg  string
	confirm *confirmModel
	prompt  *promptModel
	overlay *errorOverlayModel
}

func NewListModel(ctx context.Context, cfg listConfig) *ListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &ListModel{ctx: ctx, cfg: cfg, spinner: s}
}

// Init reloads the current page; entering a list always shows fresh data.
func (m *ListModel) Init() tea.Cmd {
	if m.cfg.scoped && m.scopeID == 0 {
		return nil
	}
	return m.reload()
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scopeMsg:
		if msg.page != m.cfg.page {
			return m, nil
		}
		m.scopeID = msg.id
		m.scopeLabel = msg.label
		m.page = 0
		m.idx = 0
		m.rows = nil
		return m, m.reload()

	case itemsLoadedMsg:
		if msg.page != m.cfg.page {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, sessionAware(msg.err)
		}
		m.errMsg = ""
		m.rows = msg.data.rows
		m.total = msg.data.total
		m.pages = msg.data.pages
		m.page = msg.data.current
		if m.idx >= len(m.rows) {
			m.idx = len(m.rows) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case itemDeletedMsg:
		if msg.page != m.cfg.page {
			return m, nil
		}
		if msg.err != nil {
			if cmd := sessionAware(msg.err); cmd != nil {
				return m, cmd
			}
			m.overlay = &errorOverlayModel{message: humanizeError(msg.err)}
			return m, nil
		}
		m.status = "Удалено: " + msg.row.name
		return m, m.reload()

	case itemAddedMsg:
		if msg.page != m.cfg.page {
			return m, nil
		}
		if msg.err != nil {
			if cmd := sessionAware(msg.err); cmd != nil {
				return m, cmd
			}
			m.overlay = &errorOverlayModel{message: humanizeError(msg.err)}
			return m, nil
		}
		m.status = fmt.Sprintf("Готово: %s %d", m.cfg.addAction, msg.id)
		return m, m.reload()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.prompt != nil {
		return m, m.prompt.update(msg)
	}
	return m, nil
}

func (m *ListModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay != nil {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.overlay = nil
		}
		return m, nil
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			row, ok := m.current()
			if !ok {
				return m, nil
			}
			return m, m.cmdRemove(row)
		case key.Matches(msg, keys.no, keys.esc):
			m.confirm = nil
			m.status = "Отменено"
		}
		return m, nil
	}

	if m.prompt != nil {
		return m.updatePrompt(msg)
	}

	switch {
	case key.Matches(msg, keys.esc):
		return m, navigate(m.cfg.back, nil)
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.rows)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.left):
		if m.pages > 0 && m.page > 0 && !m.loading {
			m.page--
			m.idx = 0
			return m, m.reload()
		}
	case key.Matches(msg, keys.right):
		if m.pages > 0 && m.page < m.pages-1 && !m.loading {
			m.page++
			m.idx = 0
			return m, m.reload()
		}
	case key.Matches(msg, keys.reload):
		if m.loading {
			return m, nil
		}
		m.status = ""
		return m, m.reload()
	case key.Matches(msg, keys.copy):
		row, ok := m.current()
		if !ok {
			m.status = "Нечего копировать"
			return m, nil
		}
		if err := writeClipboard(strconv.FormatInt(row.id, 10)); err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("ID %d скопирован", row.id)
	case key.Matches(msg, keys.delete):
		if m.cfg.remove == nil {
			return m, nil
		}
		row, ok := m.current()
		if !ok {
			m.status = "Нет записей"
			return m, nil
		}
		m.confirm = &confirmModel{action: m.cfg.removeAction, target: row.name}
	case key.Matches(msg, keys.grant):
		if m.cfg.add == nil || (m.cfg.scoped && m.scopeID == 0) {
			return m, nil
		}
		m.status = ""
		m.prompt = newPromptModel(m.cfg.addAction)
		return m, textinput.Blink
	case key.Matches(msg, keys.enter):
		if m.cfg.open == nil {
			return m, nil
		}
		row, ok := m.current()
		if !ok {
			m.status = "Нет записей"
			return m, nil
		}
		return m, m.cfg.open(row)
	}

	return m, nil
}

func (m *ListModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.prompt = nil
		m.status = "Отменено"
		return m, nil
	case key.Matches(msg, keys.enter):
		id, ok := m.prompt.value()
		if !ok {
			m.prompt.errMsg = "Введите положительный числовой ID"
			return m, nil
		}
		m.prompt = nil
		return m, m.cmdAdd(id)
	}
	return m, m.prompt.update(msg)
}

func (m *ListModel) current() (listRow, bool) {
	if len(m.rows) == 0 || m.idx < 0 || m.idx >= len(m.rows) {
		return listRow{}, false
	}
	return m.rows[m.idx], true
}

func (m *ListModel) reload() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *ListModel) cmdLoad() tea.Cmd {
	ctx, cfg := m.ctx, m.cfg
	scopeID, page := m.scopeID, m.page

	return func() tea.Msg {
		data, err := cfg.load(ctx, scopeID, page)
		return itemsLoadedMsg{page: cfg.page, data: data, err: err}
	}
}

func (m *ListModel) cmdRemove(row listRow) tea.Cmd {
	ctx, cfg := m.ctx, m.cfg
	scopeID := m.scopeID

	return func() tea.Msg {
		err := cfg.remove(ctx, scopeID, row)
		return itemDeletedMsg{page: cfg.page, row: row, err: err}
	}
}

func (m *ListModel) cmdAdd(id int64) tea.Cmd {
	ctx, cfg := m.ctx, m.cfg
	scopeID := m.scopeID

	return func() tea.Msg {
		err := cfg.add(ctx, scopeID, id)
		return itemAddedMsg{page: cfg.page, id: id, err: err}
	}
}

func (m *ListModel) View() string {
	title := m.cfg.title
	if m.scopeLabel != "" {
		title += ": " + m.scopeLabel
	}

	if m.overlay != nil {
		return renderPage(title, m.overlay.View(), "")
	}
	if m.confirm != nil {
		return renderPage(title, m.confirm.View(), "")
	}
	if m.prompt != nil {
		return renderPage(title, m.prompt.View(), "")
	}

	var b strings.Builder

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Загрузка...\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		if !m.loading {
			b.WriteString("Записей нет\n")
		}
	} else {
		b.WriteString(m.viewTable())
	}

	if m.pages > 0 {
		fmt.Fprintf(&b, "\nСтраница %d из %d, всего %d\n", m.page+1, m.pages, m.total)
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), m.hotKeys())
}

func (m *ListModel) viewTable() string {
	var b strings.Builder

	header := make([]string, 0, len(m.cfg.columns))
	rule := make([]string, 0, len(m.cfg.columns))
	for _, c := range m.cfg.columns {
		header = append(header, padRight(c.title, c.width))
		rule = append(rule, strings.Repeat("─", c.width))
	}
	b.WriteString("  ")
	b.WriteString(strings.Join(header, " │ "))
	b.WriteString("\n──")
	b.WriteString(strings.Join(rule, "─┼─"))
	b.WriteString("\n")

	for i, row := range m.rows {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		cells := make([]string, 0, len(m.cfg.columns))
		for j, c := range m.cfg.columns {
			var v string
			if j < len(row.cells) {
				v = row.cells[j]
			}
			cells = append(cells, padRight(fitText(v, c.width), c.width))
		}
		b.WriteString(cursor)
		b.WriteString(strings.Join(cells, " │ "))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *ListModel) hotKeys() string {
	parts := []string{"↑/↓: нав."}
	if m.cfg.open != nil {
		parts = append(parts, "enter: "+m.cfg.openHint)
	}
	if m.pages > 1 {
		parts = append(parts, "←/→: стр.")
	}
	parts = append(parts, "c: копировать ID", "r: обновить")
	if m.cfg.add != nil {
		parts = append(parts, "g: "+m.cfg.addHint)
	}
	if m.cfg.remove != nil {
		parts = append(parts, "d: удалить")
	}
	parts = append(parts, "esc: назад")
	return strings.Join(parts, " │ ")
}
