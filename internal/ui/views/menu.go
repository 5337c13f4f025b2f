package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/worklog/internal/ui/keys"
	"github.com/tgienger/worklog/internal/ui/styles"
)

// Option is one lettered menu choice
type Option struct {
	Key   string
	Label string
}

type optionItem struct {
	option Option
}

func (i optionItem) FilterValue() string { return i.option.Label }

type optionDelegate struct {
	styles *styles.Styles
	width  int
}

func (d optionDelegate) Height() int                               { return 1 }
func (d optionDelegate) Spacing() int                              { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	o, ok := item.(optionItem)
	if !ok {
		return
	}

	width := max(d.width-4, 20)
	style := d.styles.ListItem.Width(width)
	if index == m.Index() {
		style = d.styles.ListSelected.Width(width)
	}

	fmt.Fprint(w, style.Render(d.styles.ListKey.Render(o.option.Key+")")+" "+o.option.Label))
}

// MenuView lets the user pick one Option by letter or by cursor
type MenuView struct {
	list     list.Model
	delegate *optionDelegate
	options  []Option
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	chosen   int
	aborted  bool
}

func NewMenuView(title string, options []Option, selected int) *MenuView {
	s := styles.NewStyles()

	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = optionItem{option: o}
	}

	delegate := &optionDelegate{styles: s, width: styles.MaxWidth}

	l := list.New(items, delegate, styles.MaxWidth-4, len(options)+4)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = s.Title
	if selected >= 0 && selected < len(options) {
		l.Select(selected)
	}

	return &MenuView{
		list:     l,
		delegate: delegate,
		options:  options,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		chosen:   -1,
	}
}

func (v *MenuView) Init() tea.Cmd {
	return nil
}

func (v *MenuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, len(v.options)+4)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit), key.Matches(msg, v.keys.Back):
			v.aborted = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Enter):
			v.chosen = v.list.Index()
			return v, tea.Quit
		case key.Matches(msg, v.keys.Up):
			v.list.CursorUp()
			return v, nil
		case key.Matches(msg, v.keys.Down):
			v.list.CursorDown()
			return v, nil
		}

		pressed := strings.ToLower(msg.String())
		for i, o := range v.options {
			if strings.ToLower(o.Key) == pressed {
				v.chosen = i
				return v, tea.Quit
			}
		}
	}

	return v, nil
}

// Chosen is the index of the picked option, or -1 when none was picked
func (v *MenuView) Chosen() int { return v.chosen }

// Aborted reports whether the user left the menu without choosing
func (v *MenuView) Aborted() bool { return v.aborted }

func (v *MenuView) View() string {
	content := v.list.View() + "\n" + v.styles.RenderHelp(v.keys.Up, v.keys.Down, v.keys.Enter, v.keys.Back)
	return styles.CenterView(content, v.width, v.height)
}
