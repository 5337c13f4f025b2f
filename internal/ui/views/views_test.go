package views_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/prompt"
	"github.com/tgienger/worklog/internal/ui/views"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func requireQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPromptView_submit(t *testing.T) {
	v := views.NewPromptView(prompt.Request{Label: "Employee name"})

	for _, r := range "Ann" {
		v.Update(runes(string(r)))
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	requireQuit(t, cmd)
	assert.False(t, v.Aborted())
	assert.Equal(t, "Ann", v.Value())
}

func TestPromptView_escAborts(t *testing.T) {
	v := views.NewPromptView(prompt.Request{Label: "Employee name"})
	v.Update(runes("A"))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	requireQuit(t, cmd)
	assert.True(t, v.Aborted())
}

func TestPromptView_render(t *testing.T) {
	v := views.NewPromptView(prompt.Request{
		Title:  "EMPLOYEES",
		Items:  []string{"Ann", "Anna"},
		Notice: "Sorry. None found. Please try again.",
		Label:  "Please choose an employee",
	})

	out := v.View()
	for _, want := range []string{"EMPLOYEES", "Ann", "Anna", "Sorry. None found.", "Please choose an employee"} {
		assert.Contains(t, out, want)
	}
}

var menuOptions = []views.Option{
	{Key: "a", Label: "Add an entry"},
	{Key: "b", Label: "Search entries"},
	{Key: "c", Label: "Quit"},
}

func TestMenuView_letterChooses(t *testing.T) {
	v := views.NewMenuView("WORK LOG", menuOptions, 0)

	_, cmd := v.Update(runes("c"))

	requireQuit(t, cmd)
	assert.Equal(t, 2, v.Chosen())
	assert.False(t, v.Aborted())
}

func TestMenuView_upperCaseLetterChooses(t *testing.T) {
	v := views.NewMenuView("WORK LOG", menuOptions, 0)

	v.Update(runes("B"))

	assert.Equal(t, 1, v.Chosen())
}

func TestMenuView_cursorAndEnter(t *testing.T) {
	v := views.NewMenuView("WORK LOG", menuOptions, 0)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	requireQuit(t, cmd)
	assert.Equal(t, 1, v.Chosen())
}

func TestMenuView_preselected(t *testing.T) {
	v := views.NewMenuView("SEARCH ENTRIES", menuOptions, 2)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 2, v.Chosen())
}

func TestMenuView_unknownLetterIgnored(t *testing.T) {
	v := views.NewMenuView("WORK LOG", menuOptions, 0)

	_, cmd := v.Update(runes("z"))

	assert.Nil(t, cmd)
	assert.Equal(t, -1, v.Chosen())
}

func TestMenuView_escAborts(t *testing.T) {
	v := views.NewMenuView("WORK LOG", menuOptions, 0)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	requireQuit(t, cmd)
	assert.True(t, v.Aborted())
	assert.Equal(t, -1, v.Chosen())
}

func browseFixtures() []models.Entry {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return []models.Entry{
		{Task: "Dig", Employee: "Ann", Date: day, Duration: 30},
		{Task: "Fill", Employee: "Bob", Date: day, Duration: 45},
		{Task: "Plant", Employee: "Cy", Date: day, Duration: 60},
	}
}

func TestBrowserView_paging(t *testing.T) {
	v := views.NewBrowserView(browseFixtures(), 0)

	assert.Equal(t, []string{"[E]dit", "[D]elete", "[N]ext", "[B]ack"}, v.Actions())
	assert.Contains(t, v.View(), "Entry 1 of 3")

	v.Update(runes("n"))
	assert.Equal(t, 1, v.Index())
	assert.Equal(t, []string{"[E]dit", "[D]elete", "[N]ext", "[P]revious", "[B]ack"}, v.Actions())

	v.Update(runes("N"))
	assert.Equal(t, 2, v.Index())
	assert.Equal(t, []string{"[E]dit", "[D]elete", "[P]revious", "[B]ack"}, v.Actions())
	assert.Contains(t, v.View(), "Entry 3 of 3")

	// next is hidden on the last entry
	_, cmd := v.Update(runes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, v.Index())
	assert.Contains(t, v.View(), "is not an option")

	v.Update(runes("p"))
	assert.Equal(t, 1, v.Index())
}

func TestBrowserView_singleEntryHasNoPaging(t *testing.T) {
	v := views.NewBrowserView(browseFixtures()[:1], 0)

	assert.Equal(t, []string{"[E]dit", "[D]elete", "[B]ack"}, v.Actions())
}

func TestBrowserView_actions(t *testing.T) {
	tests := []struct {
		key  string
		want views.BrowseAction
	}{
		{"e", views.BrowseEdit},
		{"E", views.BrowseEdit},
		{"d", views.BrowseDelete},
		{"b", views.BrowseBack},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := views.NewBrowserView(browseFixtures(), 1)

			_, cmd := v.Update(runes(tt.key))

			requireQuit(t, cmd)
			assert.Equal(t, tt.want, v.Action())
			assert.Equal(t, 1, v.Index())
			assert.False(t, v.Aborted())
		})
	}
}

func TestBrowserView_ctrlCAborts(t *testing.T) {
	v := views.NewBrowserView(browseFixtures(), 0)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	requireQuit(t, cmd)
	assert.True(t, v.Aborted())
}

func TestBrowserView_render(t *testing.T) {
	v := views.NewBrowserView(browseFixtures(), 0)

	out := v.View()
	for _, want := range []string{"01-02-2024", "Dig", "Ann", "30"} {
		assert.Contains(t, out, want)
	}
}

func TestNoticeView_anyKeyCloses(t *testing.T) {
	v := views.NewNoticeView("Entry saved!")
	assert.Contains(t, v.View(), "Entry saved!")

	_, cmd := v.Update(runes("x"))

	requireQuit(t, cmd)
}
