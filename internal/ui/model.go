// Package ui renders the single agenda screen: a two-field form, a transient
// success banner and the list of stored people.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/agenda/internal/models"
	"github.com/mmynk/agenda/internal/phonemask"
)

// DefaultBannerDuration is how long the success banner stays visible.
const DefaultBannerDuration = 3 * time.Second

const bannerText = "Saved successfully!"

// ViewModel is the presentation state the screen drives.
type ViewModel interface {
	Submit(name, phone string) bool
	Update(person models.Person, name, phone string) bool
	Remove(person models.Person)
}

type focus int

const (
	focusName focus = iota
	focusPhone
	focusList
	focusCount
)

type (
	peopleMsg        []models.Person
	updatesClosedMsg struct{}
	errMsg           struct{ err error }

	// bannerExpiredMsg hides the banner only if no newer banner replaced it.
	bannerExpiredMsg struct{ gen int }
)

// Options configures the screen.
type Options struct {
	// Updates carries live snapshots of the stored people.
	Updates <-chan []models.Person
	// Errors carries background failures to show as notices.
	Errors <-chan error
	// BannerDuration defaults to DefaultBannerDuration.
	BannerDuration time.Duration
}

// Model is the bubbletea model for the screen.
type Model struct {
	vm      ViewModel
	updates <-chan []models.Person
	errs    <-chan error

	name  textinput.Model
	phone textinput.Model
	table table.Model
	focus focus

	people  []models.Person
	editing *models.Person

	banner         bool
	bannerGen      int
	bannerDuration time.Duration
	notice         string

	width  int
	height int
	styles Styles
}

// New creates the screen model.
func New(vm ViewModel, opts Options) Model {
	if opts.BannerDuration <= 0 {
		opts.BannerDuration = DefaultBannerDuration
	}

	name := textinput.New()
	name.Placeholder = "Name"
	name.Prompt = ""
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	phone := textinput.New()
	phone.Placeholder = "(00) 00000-0000"
	phone.Prompt = ""
	phone.Width = 40

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 30},
			{Title: "Phone", Width: 18},
		}),
		table.WithHeight(10),
	)

	return Model{
		vm:             vm,
		updates:        opts.Updates,
		errs:           opts.Errors,
		name:           name,
		phone:          phone,
		table:          t,
		focus:          focusName,
		bannerDuration: opts.BannerDuration,
		styles:         DefaultStyles(),
	}
}

// Init starts listening for snapshots and errors.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForPeople(), m.waitForError())
}

func (m Model) waitForPeople() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		people, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return peopleMsg(people)
	}
}

func (m Model) waitForError() tea.Cmd {
	if m.errs == nil {
		return nil
	}
	ch := m.errs
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return errMsg{err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case peopleMsg:
		m.setPeople(msg)
		return m, m.waitForPeople()

	case updatesClosedMsg:
		return m, nil

	case errMsg:
		m.notice = msg.err.Error()
		return m, m.waitForError()

	case bannerExpiredMsg:
		if msg.gen == m.bannerGen {
			m.banner = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		// Invalidate any pending banner tick before tearing down.
		m.bannerGen++
		m.banner = false
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "esc":
		if m.editing != nil {
			m.editing = nil
			m.clearForm()
			return m.setFocus(focusName)
		}
		return m, nil
	}

	if m.focus == focusList {
		switch msg.String() {
		case "enter", "e":
			return m.startEdit()
		case "d", "delete":
			if p, ok := m.selected(); ok {
				m.vm.Remove(p)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	if msg.Type == tea.KeyEnter {
		return m.submit()
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusPhone:
		prev := m.phone.Value()
		m.phone, cmd = m.phone.Update(msg)
		if next := m.phone.Value(); next != prev {
			m.phone.SetValue(maskPhone(prev, next))
			m.phone.CursorEnd()
		}
	case focusList:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// maskPhone applies the mask to an edited value. Deleting a mask character
// leaves the digits unchanged, so the last digit goes with it; otherwise the
// mask would immediately put the character back.
func maskPhone(prev, next string) string {
	digits := phonemask.Digits(next)
	if len(next) < len(prev) && digits == phonemask.Digits(prev) && digits != "" {
		digits = digits[:len(digits)-1]
	}
	return phonemask.Format(digits)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	name, phone := m.name.Value(), m.phone.Value()

	var ok bool
	if m.editing != nil {
		ok = m.vm.Update(*m.editing, name, phone)
	} else {
		ok = m.vm.Submit(name, phone)
	}
	if !ok {
		return m, nil
	}

	m.editing = nil
	m.notice = ""
	m.clearForm()
	m.banner = true
	m.bannerGen++
	gen := m.bannerGen

	m, focusCmd := m.focusTo(focusName)
	expire := tea.Tick(m.bannerDuration, func(time.Time) tea.Msg {
		return bannerExpiredMsg{gen: gen}
	})
	return m, tea.Batch(focusCmd, expire)
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.editing = &p
	m.name.SetValue(p.Name)
	m.name.CursorEnd()
	m.phone.SetValue(p.Phone)
	m.phone.CursorEnd()
	return m.setFocus(focusName)
}

func (m Model) selected() (models.Person, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.people) {
		return models.Person{}, false
	}
	return m.people[i], true
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	return m.focusTo(f)
}

func (m Model) focusTo(f focus) (Model, tea.Cmd) {
	m.focus = f
	m.name.Blur()
	m.phone.Blur()
	m.table.Blur()

	switch f {
	case focusName:
		return m, m.name.Focus()
	case focusPhone:
		return m, m.phone.Focus()
	default:
		m.table.Focus()
		return m, nil
	}
}

func (m *Model) clearForm() {
	m.name.SetValue("")
	m.phone.SetValue("")
}

func (m *Model) setPeople(people []models.Person) {
	m.people = people

	rows := make([]table.Row, len(people))
	for i, p := range people {
		rows[i] = table.Row{p.Name, p.Phone}
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}

	// The record being edited was deleted elsewhere: keep the form, drop the ID.
	if m.editing != nil {
		found := false
		for _, p := range people {
			if p.ID == m.editing.ID {
				found = true
				break
			}
		}
		if !found {
			m.editing = nil
		}
	}
}

func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h
	if h > 16 {
		m.table.SetHeight(h - 16)
	}
	if w > 8 {
		nameWidth := (w - 8) * 6 / 10
		m.table.SetColumns([]table.Column{
			{Title: "Name", Width: nameWidth},
			{Title: "Phone", Width: w - 8 - nameWidth},
		})
	}
}

// View renders the screen.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Agenda"))
	sb.WriteString("\n\n")

	if m.banner {
		sb.WriteString(m.styles.Banner.Render(bannerText))
		sb.WriteString("\n\n")
	}
	if m.notice != "" {
		sb.WriteString(m.styles.Notice.Render(m.notice))
		sb.WriteString("\n\n")
	}
	if m.editing != nil {
		sb.WriteString(m.styles.Editing.Render("Editing " + m.editing.Name + " (esc to cancel)"))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderField("Name", m.name.View(), m.focus == focusName))
	sb.WriteString("\n")
	sb.WriteString(m.renderField("Phone", m.phone.View(), m.focus == focusPhone))
	sb.WriteString("\n\n")

	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	if len(m.people) == 0 {
		sb.WriteString(m.styles.Muted.Render("No one registered yet."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("[Enter] Save  [Tab] Next  [e] Edit  [d] Delete  [Ctrl+C] Quit"))
	return sb.String()
}

func (m Model) renderField(label, input string, focused bool) string {
	style := m.styles.Field
	if focused {
		style = m.styles.Focused
	}
	return m.styles.Label.Render(label) + "\n" + style.Render(input)
}
