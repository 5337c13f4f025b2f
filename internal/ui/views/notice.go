package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/worklog/internal/ui/styles"
)

// NoticeView shows a message until any key is pressed
type NoticeView struct {
	message string
	styles  *styles.Styles
	width   int
	height  int
}

func NewNoticeView(message string) *NoticeView {
	return &NoticeView{message: message, styles: styles.NewStyles()}
}

func (v *NoticeView) Init() tea.Cmd {
	return nil
}

func (v *NoticeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		return v, tea.Quit
	}
	return v, nil
}

func (v *NoticeView) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Success.Render(v.message),
		v.styles.TitleMuted.Render("Press any key to continue"),
	)
	return styles.CenterView(content, v.width, v.height)
}
