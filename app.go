package menufig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UI hosts a Session in the terminal. It owns the event ordering
// contract the core relies on: bubbletea delivers key messages one at
// a time, and every message is fully dispatched before the next.
type UI struct {
	session *Session
	theme   Theme
}

// NewUI builds a session for the schema and wraps it in a terminal
// host. When no download sink is configured, exported settings are
// written to the current directory.
func NewUI(schema *Schema, cfg Config) (*UI, error) {
	if cfg.Download == nil {
		cfg.Download = func(doc SettingsDocument) error {
			return os.WriteFile(doc.Filename, []byte(doc.Content), 0o644)
		}
	}
	session, err := NewSession(schema, cfg)
	if err != nil {
		return nil, err
	}
	return &UI{
		session: session,
		theme:   ThemeByName(cfg.Theme),
	}, nil
}

// Session returns the hosted session.
func (u *UI) Session() *Session {
	return u.session
}

// Run starts the interactive terminal program and blocks until the
// user quits.
func (u *UI) Run() error {
	model := newUIModel(u.session, u.theme)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// uiModel is the bubbletea model translating key input into session
// events and painting the widget tree.
type uiModel struct {
	session *Session
	theme   Theme

	width      int
	height     int
	status     string
	navbarC    int  // navbar cursor: which menu button is highlighted
	inControls bool // focus is inside the controls rather than the navbar
	focusC     int  // control cursor within the visible controls
	optC       int  // option cursor within a focused selector
}

func newUIModel(session *Session, theme Theme) *uiModel {
	return &uiModel{session: session, theme: theme}
}

func (m *uiModel) Init() tea.Cmd {
	return nil
}

func (m *uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *uiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "left":
		if n := len(s.Tree().Menus); n > 0 {
			m.navbarC = (m.navbarC + n - 1) % n
		}
		return m, nil
	case "right":
		if n := len(s.Tree().Menus); n > 0 {
			m.navbarC = (m.navbarC + 1) % n
		}
		return m, nil

	case "enter":
		if ctl := m.focusedControl(); ctl != nil {
			m.edit(ctl, msg)
			return m, nil
		}
		if n := len(s.Tree().Menus); n > 0 {
			m.report(s.OpenMenu(s.Tree().Menus[m.navbarC].ID))
			m.inControls, m.focusC, m.optC = true, 0, 0
		}
		return m, nil

	case "esc":
		if m.inControls {
			m.inControls = false
			return m, nil
		}
		m.report(s.CloseMenu())
		m.focusC = 0
		return m, nil

	case "tab":
		if n := len(m.visibleControls()); n > 0 {
			if m.inControls {
				m.focusC = (m.focusC + 1) % n
			} else {
				m.inControls, m.focusC = true, 0
			}
			m.optC = 0
		}
		return m, nil
	case "shift+tab":
		if n := len(m.visibleControls()); n > 0 && m.inControls {
			m.focusC = (m.focusC + n - 1) % n
			m.optC = 0
		}
		return m, nil

	case "ctrl+r":
		m.report(s.Redraw())
		return m, nil
	case "ctrl+x":
		m.report(s.CloseAndRedraw())
		m.inControls, m.focusC = false, 0
		return m, nil
	case "ctrl+d":
		if err := s.Export(); err != nil {
			m.report(err)
		} else {
			m.status = "settings downloaded"
		}
		return m, nil
	}

	if ctl := m.focusedControl(); ctl != nil {
		m.edit(ctl, msg)
	}
	return m, nil
}

// edit applies a key to the focused control and dispatches the
// resulting value change.
func (m *uiModel) edit(ctl *Control, msg tea.KeyMsg) {
	s := m.session
	current := s.Snapshot()[ctl.ElemID]
	key := msg.String()

	switch ctl.Type {
	case TypeDropdown:
		if len(ctl.Options) == 0 {
			return
		}
		switch key {
		case " ", "enter", "down":
			m.report(s.SetValue(ctl.ElemID, nextOption(ctl.Options, current, 1)))
		case "up":
			m.report(s.SetValue(ctl.ElemID, nextOption(ctl.Options, current, -1)))
		}

	case TypeCheckbox:
		if key == " " || key == "enter" {
			if checkboxChecked(current) {
				m.report(s.SetValue(ctl.ElemID, []any{}))
			} else {
				m.report(s.SetValue(ctl.ElemID, []any{Checked}))
			}
		}

	case TypeSelector:
		switch key {
		case "down":
			if m.optC < len(ctl.Options)-1 {
				m.optC++
			}
		case "up":
			if m.optC > 0 {
				m.optC--
			}
		case " ", "enter":
			if m.optC < len(ctl.Options) {
				m.report(s.SetValue(ctl.ElemID, toggleSelection(current, ctl.Options[m.optC].Value)))
			}
		}

	case TypeSlider:
		v, _ := asFloat(current)
		switch key {
		case "+", "=", "up":
			v += ctl.Step
		case "-", "down":
			v -= ctl.Step
		default:
			return
		}
		v = min(max(v, ctl.Min), ctl.Max)
		m.report(s.SetValue(ctl.ElemID, v))

	case TypeInput:
		text := inputText(current)
		switch {
		case key == "backspace":
			if text == "" {
				return
			}
			text = text[:len(text)-1]
		case msg.Type == tea.KeyRunes:
			text += string(msg.Runes)
		case key == " ":
			text += " "
		default:
			return
		}
		m.report(s.SetValue(ctl.ElemID, coerceInput(ctl.InputType, text)))
	}
}

func (m *uiModel) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// visibleControls flattens the controls the cursor can reach: the open
// menu's containers that the visibility engine currently leaves open,
// followed by the header menu's.
func (m *uiModel) visibleControls() []*Control {
	s := m.session
	var out []*Control
	collect := func(pane *MenuPane) {
		for ci := range pane.Columns {
			for wi := range pane.Columns[ci] {
				c := &pane.Columns[ci][wi]
				if s.CollapseOpen(c.ID) {
					out = append(out, &c.Control)
				}
			}
		}
	}
	if open := s.OpenMenuID(); open != "" {
		for i := range s.Tree().Menus {
			if s.Tree().Menus[i].ID == open {
				collect(&s.Tree().Menus[i])
			}
		}
	}
	if s.Tree().Header != nil {
		collect(s.Tree().Header)
	}
	return out
}

func (m *uiModel) focusedControl() *Control {
	if !m.inControls {
		return nil
	}
	controls := m.visibleControls()
	if len(controls) == 0 {
		m.inControls = false
		return nil
	}
	if m.focusC >= len(controls) {
		m.focusC = len(controls) - 1
	}
	return controls[m.focusC]
}

func (m *uiModel) View() string {
	s := m.session
	t := m.theme
	var b strings.Builder

	// Navbar: brand plus one open button per menu.
	parts := []string{t.Brand.Render(s.Config().Title)}
	for i := range s.Tree().Menus {
		style := t.Button
		if i == m.navbarC || s.coord.IsOpen(s.Tree().Menus[i].ID) {
			style = t.ButtonActive
		}
		parts = append(parts, style.Render(s.Tree().Menus[i].Label))
	}
	b.WriteString(t.Navbar.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...)))
	b.WriteString("\n")

	// The single open parameter menu, if any.
	if open := s.OpenMenuID(); open != "" {
		for i := range s.Tree().Menus {
			if s.Tree().Menus[i].ID == open {
				b.WriteString(m.viewPane(&s.Tree().Menus[i]))
				b.WriteString("\n")
			}
		}
	}

	// Header menu, always visible.
	if s.Tree().Header != nil {
		b.WriteString(m.viewPane(s.Tree().Header))
		b.WriteString("\n")
	}

	// Figure panes and their toasts.
	for _, slot := range s.Slots() {
		b.WriteString(t.Figure.Render(fmt.Sprint(slot.Artifact())))
		b.WriteString("\n")
		if note := slot.Notification(); note.Open {
			b.WriteString(t.Toast.Render("Notification: " + note.Message))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString(t.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(t.Muted.Render("←/→ menu · enter open · tab focus · ^R redraw · ^X close+redraw · ^D download · q quit"))
	return b.String()
}

// viewPane paints one menu card: columns side by side, footer actions
// underneath.
func (m *uiModel) viewPane(pane *MenuPane) string {
	t := m.theme
	focused := m.focusedControl()

	cols := make([]string, 0, len(pane.Columns))
	for ci := range pane.Columns {
		var rows []string
		for wi := range pane.Columns[ci] {
			c := &pane.Columns[ci][wi]
			if !m.session.CollapseOpen(c.ID) {
				continue
			}
			isFocused := focused != nil && focused.ElemID == c.Control.ElemID
			rows = append(rows, m.viewControl(&c.Control, isFocused))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	footer := make([]string, 0, len(pane.Footer))
	for _, action := range pane.Footer {
		footer = append(footer, t.Button.Render(footerLabel(action)))
	}
	return t.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		body,
		lipgloss.JoinHorizontal(lipgloss.Top, footer...),
	))
}

func (m *uiModel) viewControl(ctl *Control, focused bool) string {
	t := m.theme
	style := t.Control
	if focused {
		style = t.ControlFocus
	}
	value := m.session.Snapshot()[ctl.ElemID]

	var body string
	switch ctl.Type {
	case TypeDropdown:
		body = "▾ " + optionLabel(ctl.Options, value)

	case TypeCheckbox:
		if checkboxChecked(value) {
			body = "[x]"
		} else {
			body = "[ ]"
		}

	case TypeSelector:
		var lines []string
		for oi, opt := range ctl.Options {
			mark := "[ ]"
			if selectionHas(value, opt.Value) {
				mark = "[x]"
			}
			cursor := "  "
			if focused && oi == m.optC {
				cursor = "> "
			}
			lines = append(lines, cursor+mark+" "+opt.Label)
		}
		body = strings.Join(lines, "\n")

	case TypeSlider:
		marks := make([]string, 0, len(ctl.Marks))
		for _, mk := range ctl.Marks {
			marks = append(marks, mk.Label)
		}
		body = fmt.Sprintf("%v  %s", value, t.Muted.Render(strings.Join(marks, " ─ ")))

	case TypeInput:
		body = inputText(value)
		if focused {
			body += "▏"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Label.Render(ctl.Label),
		style.Render(body),
	)
}

func footerLabel(action string) string {
	switch action {
	case ActionRedraw:
		return "Redraw (^R)"
	case ActionClose:
		return "Close Menu & Redraw (^X)"
	case ActionDownload:
		return "Download Settings (^D)"
	}
	return action
}

// --- value helpers ---

// nextOption cycles to the adjacent visible option relative to the
// current value.
func nextOption(options []Option, current any, step int) any {
	at := 0
	for i, opt := range options {
		if valueEq(opt.Value, current) {
			at = i
			break
		}
	}
	n := len(options)
	return options[(at+step+n)%n].Value
}

func optionLabel(options []Option, value any) string {
	for _, opt := range options {
		if valueEq(opt.Value, value) {
			return opt.Label
		}
	}
	return fmt.Sprint(value)
}

func checkboxChecked(value any) bool {
	return selectionHas(value, Checked)
}

func selectionHas(value any, member any) bool {
	list, ok := value.([]any)
	if !ok {
		return false
	}
	return containsValue(list, member)
}

// toggleSelection adds or removes member from a selector's value set.
func toggleSelection(value any, member any) []any {
	list, _ := value.([]any)
	out := make([]any, 0, len(list)+1)
	removed := false
	for _, v := range list {
		if valueEq(v, member) {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, member)
	}
	return out
}

func inputText(value any) string {
	if value == nil {
		return ""
	}
	if list, ok := value.([]any); ok && len(list) == 0 {
		return ""
	}
	return fmt.Sprint(value)
}

// coerceInput keeps numeric inputs numeric when they parse; anything
// else stays a string and the render function decides what to do with
// it.
func coerceInput(inputType, text string) any {
	if inputType == "number" {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}
	return text
}
