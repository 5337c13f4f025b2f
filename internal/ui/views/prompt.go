package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/prompt"
	"github.com/tgienger/worklog/internal/ui/keys"
	"github.com/tgienger/worklog/internal/ui/styles"
)

// PromptView reads a single line of input for a prompt.Request
type PromptView struct {
	req     prompt.Request
	input   textinput.Model
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	done    bool
	aborted bool
}

func NewPromptView(req prompt.Request) *PromptView {
	input := textinput.New()
	input.Placeholder = req.Label
	input.CharLimit = models.MaxTextLength
	input.Focus()

	return &PromptView{
		req:    req,
		input:  input,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *PromptView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *PromptView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.input.Width = styles.ContentWidth(msg.Width) - 8
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit), key.Matches(msg, v.keys.Back):
			v.aborted = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Enter):
			v.done = true
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// Value is the submitted text
func (v *PromptView) Value() string { return v.input.Value() }

// Aborted reports whether the user backed out instead of submitting
func (v *PromptView) Aborted() bool { return v.aborted }

func (v *PromptView) View() string {
	s := v.styles
	var b strings.Builder

	if v.req.Title != "" {
		b.WriteString(s.Title.Render(v.req.Title) + "\n")
	}
	for _, item := range v.req.Items {
		b.WriteString(s.ListItem.Render(item) + "\n")
	}
	if v.req.Title != "" || len(v.req.Items) > 0 {
		b.WriteString("\n")
	}
	if v.req.Notice != "" {
		b.WriteString(s.Notice.Render(v.req.Notice) + "\n\n")
	}

	width := styles.ContentWidth(v.width) - 4
	content := lipgloss.JoinVertical(lipgloss.Left,
		b.String()+s.Label.Render(v.req.Label),
		s.InputFocused.Width(width).Render(v.input.View()),
		s.RenderHelp(v.keys.Enter, v.keys.Back),
	)
	return styles.CenterView(content, v.width, v.height)
}
