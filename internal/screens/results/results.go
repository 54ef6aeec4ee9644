// Package results displays a finished session's outcome.
package results

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/quiz"
	"github.com/seojin/labquiz/internal/router"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/ui/components"
	"github.com/seojin/labquiz/internal/ui/layout"
	"github.com/seojin/labquiz/internal/ui/theme"
)

// ResultsScreen shows the outcome and follow-up actions.
type ResultsScreen struct {
	outcome *quiz.Outcome
	menu    components.Menu
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for a finalized session. onRetry, when
// non-nil, restarts a practice run over the missed questions; the play screen
// supplies it to avoid a dependency cycle between the two screens.
func New(outcome *quiz.Outcome, onRetry func() tea.Cmd) *ResultsScreen {
	var items []components.MenuItem
	if len(outcome.MissedIDs) > 0 && onRetry != nil {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("오답 다시 풀기 (%d)", len(outcome.MissedIDs)),
			Action: onRetry,
		})
	}
	items = append(items, components.MenuItem{
		Label: "메뉴로 돌아가기",
		Action: func() tea.Cmd {
			return popTwice()
		},
	})

	return &ResultsScreen{
		outcome: outcome,
		menu:    components.NewMenu(items),
	}
}

// popTwice unwinds both the results screen and the play screen beneath it.
func popTwice() tea.Cmd {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	return tea.Sequence(pop, pop)
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	if r.outcome.Mode == quiz.ModeExam {
		return "모의고사 결과"
	}
	return "결과"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "선택"},
	}
}

// HandlesEsc maps esc to the double pop so the finalized play screen is
// never revisited.
func (r *ResultsScreen) HandlesEsc() bool { return true }

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return r, popTwice()
	}

	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *ResultsScreen) View(width, height int) string {
	out := r.outcome
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("수고하셨습니다!"))
	b.WriteString("\n\n")

	mins := int(out.Duration.Minutes())
	secs := int(out.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("소요 시간: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("문항: %d        정답: %d        정답률: %.0f%%",
		out.Total, out.Score, out.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	if out.Slowest != nil {
		slowSecs := out.Slowest.Elapsed.Seconds()
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("가장 오래 걸린 문제: #%d (%.0f초)", out.Slowest.QuestionID, slowSecs)))
		b.WriteString("\n")
	}

	if out.HistoryEntry != nil {
		b.WriteString("\n")
		b.WriteString(r.renderBreakdown(width))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, r.menu.View()))

	return b.String()
}

// renderBreakdown lists per-subject exam results, sorted by subject name.
func (r *ResultsScreen) renderBreakdown(width int) string {
	breakdown := r.outcome.HistoryEntry.SubjectBreakdown

	subjects := make([]string, 0, len(breakdown))
	for subject := range breakdown {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("과목별 결과")))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 50)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, subject := range subjects {
		tally := breakdown[subject]
		line := fmt.Sprintf("%-12s %d/%d (%.0f%%)", subject, tally.Correct, tally.Total, tally.Accuracy())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
