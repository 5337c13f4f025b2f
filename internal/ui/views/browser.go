package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/ui/keys"
	"github.com/tgienger/worklog/internal/ui/styles"
)

// BrowseAction is what the user chose to do with the entry on screen
type BrowseAction int

const (
	BrowseBack BrowseAction = iota
	BrowseEdit
	BrowseDelete
)

// BrowserView pages through search results one entry at a time
type BrowserView struct {
	entries []models.Entry
	index   int
	action  BrowseAction
	notice  string
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	aborted bool
}

func NewBrowserView(entries []models.Entry, index int) *BrowserView {
	v := &BrowserView{
		entries: entries,
		index:   min(max(index, 0), max(len(entries)-1, 0)),
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
	}
	v.updateKeys()
	return v
}

// updateKeys hides next/previous at either end of the results
func (v *BrowserView) updateKeys() {
	v.keys.Next.SetEnabled(v.index < len(v.entries)-1)
	v.keys.Prev.SetEnabled(v.index > 0)
}

func (v *BrowserView) Init() tea.Cmd {
	return nil
}

func (v *BrowserView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		v.notice = ""
		switch {
		case key.Matches(msg, v.keys.Quit):
			v.aborted = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Return):
			v.action = BrowseBack
			return v, tea.Quit
		case key.Matches(msg, v.keys.Next):
			v.index++
			v.updateKeys()
			return v, nil
		case key.Matches(msg, v.keys.Prev):
			v.index--
			v.updateKeys()
			return v, nil
		case len(v.entries) == 0:
		case key.Matches(msg, v.keys.Edit):
			v.action = BrowseEdit
			return v, tea.Quit
		case key.Matches(msg, v.keys.Delete):
			v.action = BrowseDelete
			return v, tea.Quit
		}
		v.notice = fmt.Sprintf("Sorry, %q is not an option. Please try again.", msg.String())
	}

	return v, nil
}

// Index is the position of the entry on screen
func (v *BrowserView) Index() int { return v.index }

// Action is the last action chosen
func (v *BrowserView) Action() BrowseAction { return v.action }

// Aborted reports whether the user quit the program from the browser
func (v *BrowserView) Aborted() bool { return v.aborted }

// Actions lists the lettered actions available for the entry on screen
func (v *BrowserView) Actions() []string {
	actions := []string{"[E]dit", "[D]elete"}
	if v.keys.Next.Enabled() {
		actions = append(actions, "[N]ext")
	}
	if v.keys.Prev.Enabled() {
		actions = append(actions, "[P]revious")
	}
	return append(actions, "[B]ack")
}

func (v *BrowserView) View() string {
	s := v.styles

	if len(v.entries) == 0 {
		return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left,
			s.TitleMuted.Render("No entries found."),
			s.RenderHelp(v.keys.Return),
		), v.width, v.height)
	}

	e := v.entries[v.index]
	field := func(name, value string) string {
		return s.FieldName.Render(name) + s.FieldValue.Render(value)
	}
	card := s.Card.Width(styles.ContentWidth(v.width) - 4).Render(lipgloss.JoinVertical(lipgloss.Left,
		field("Date", e.DateString()),
		field("Task", e.Task),
		field("Employee", e.Employee),
		field("Minutes", strconv.Itoa(e.Duration)),
		field("Notes", e.Notes),
	))

	parts := []string{
		card,
		s.TitleMuted.Render(fmt.Sprintf("Entry %d of %d", v.index+1, len(v.entries))),
		"",
		s.Label.Render(strings.Join(v.Actions(), " ")),
	}
	if v.notice != "" {
		parts = append(parts, s.Notice.Render(v.notice))
	}
	parts = append(parts, s.RenderHelp(v.keys.Edit, v.keys.Delete, v.keys.Next, v.keys.Prev, v.keys.Return))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, parts...), v.width, v.height)
}
