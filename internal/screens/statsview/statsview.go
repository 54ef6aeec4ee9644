// Package statsview displays cumulative practice statistics and exam history.
package statsview

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/stats"
	"github.com/seojin/labquiz/internal/store"
	"github.com/seojin/labquiz/internal/ui/components"
	"github.com/seojin/labquiz/internal/ui/layout"
	"github.com/seojin/labquiz/internal/ui/theme"
)

// historyShown caps the exam list at the most recent entries.
const historyShown = 10

type tab int

const (
	tabPractice tab = iota
	tabExam
)

// loadedMsg delivers the persisted records read at screen start.
type loadedMsg struct {
	Stats   stats.SubjectStats
	History []exam.HistoryEntry
	Err     error
}

// StatsScreen shows per-subject accuracy and past exam results.
type StatsScreen struct {
	bank   *question.Bank
	repo   *store.Repo
	period question.Period

	tab      tab
	stats    stats.SubjectStats
	history  []exam.HistoryEntry
	selected int // index into the shown history list
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen for the period.
func New(bank *question.Bank, repo *store.Repo, period question.Period) *StatsScreen {
	return &StatsScreen{bank: bank, repo: repo, period: period}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		st, err := s.repo.SubjectStats(ctx, s.period)
		if err != nil {
			return loadedMsg{Err: err}
		}
		// Subjects the learner has never attempted still get a row.
		if subjects, err := s.bank.Subjects(s.period); err == nil {
			st = st.WithSubjects(subjects)
		}
		history, err := s.repo.ExamHistory(ctx, s.period)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Stats: st, History: history}
	}
}

func (s *StatsScreen) Title() string {
	return "성적 보기"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if s.hasExamTab() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "탭 전환"})
	}
	if s.tab == tabExam {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "회차 선택"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "뒤로"})
	return hints
}

// hasExamTab reports whether the exam history tab applies: mock exams exist
// for the practical period only.
func (s *StatsScreen) hasExamTab() bool {
	return s.period == question.PeriodPractical
}

// shown returns the most recent history entries, newest first.
func (s *StatsScreen) shown() []exam.HistoryEntry {
	n := len(s.history)
	start := n - historyShown
	if start < 0 {
		start = 0
	}
	recent := s.history[start:]

	out := make([]exam.HistoryEntry, len(recent))
	for i := range recent {
		out[i] = recent[len(recent)-1-i]
	}
	return out
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.stats = msg.Stats
		s.history = msg.History
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if !s.hasExamTab() {
				break
			}
			if s.tab == tabPractice {
				s.tab = tabExam
			} else {
				s.tab = tabPractice
			}
			s.selected = 0
		case "up", "k":
			if s.tab == tabExam && s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.tab == tabExam && s.selected < len(s.shown())-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n오류: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n불러오는 중...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	if s.tab == tabPractice {
		b.WriteString(s.renderPractice(width))
	} else {
		b.WriteString(s.renderExam(width))
	}
	return b.String()
}

func (s *StatsScreen) renderTabs(width int) string {
	practice := "  연습 통계  "
	examTab := "  모의고사 기록  "
	active := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(theme.TextDim)

	if !s.hasExamTab() {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, active.Render(practice))
	}

	if s.tab == tabPractice {
		practice = active.Render(practice)
		examTab = inactive.Render(examTab)
	} else {
		practice = inactive.Render(practice)
		examTab = active.Render(examTab)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, practice+examTab)
}

// renderPractice shows overall accuracy, weak/strong subjects, and ranked
// per-subject bars.
func (s *StatsScreen) renderPractice(width int) string {
	var b strings.Builder

	_, total := s.stats.Totals()
	if total == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("아직 푼 문제가 없습니다.")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("전체 정답률 %.1f%% (%d문제)", s.stats.Overall(), total)))
	b.WriteString("\n\n")

	if weak, strong, ok := s.stats.Extremes(); ok {
		line := fmt.Sprintf("취약 과목: %s (%.0f%%)        강점 과목: %s (%.0f%%)",
			weak.Subject, weak.Accuracy, strong.Subject, strong.Accuracy)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(line))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("과목별 분석은 %d문제 이상 푼 과목부터 표시됩니다", stats.MinAttempts)))
	}
	b.WriteString("\n\n")

	barWidth := min(width-8, 56)
	for _, sa := range s.stats.Ranked() {
		bar := components.NewProgressBar(
			fmt.Sprintf("%-12s", sa.Subject),
			sa.Accuracy/100,
			false,
			barWidth,
		)
		line := bar.View() + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3.0f%% (%d/%d)", sa.Accuracy, sa.Correct, sa.Total))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderExam shows the recent exam list with the selected entry's breakdown.
func (s *StatsScreen) renderExam(width int) string {
	shown := s.shown()
	if len(shown) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("모의고사 기록이 없습니다.")
	}

	var b strings.Builder
	for i, entry := range shown {
		line := fmt.Sprintf("%s    %d/%d (%.0f%%)",
			entry.Date.Format("2006-01-02 15:04"),
			entry.Correct, entry.Total, entry.Accuracy())
		if i == s.selected {
			line = "▸ " + line
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)))
		} else {
			line = "  " + line
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderBreakdown(shown[s.selected], width))
	return b.String()
}

func (s *StatsScreen) renderBreakdown(entry exam.HistoryEntry, width int) string {
	subjects := make([]string, 0, len(entry.SubjectBreakdown))
	for subject := range entry.SubjectBreakdown {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	var b strings.Builder
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 50)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, subject := range subjects {
		tally := entry.SubjectBreakdown[subject]
		line := fmt.Sprintf("%-12s %d/%d (%.0f%%)", subject, tally.Correct, tally.Total, tally.Accuracy())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	if n := len(entry.IncorrectIDs); n > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("틀린 문제 %d개는 오답 복습에서 다시 풀 수 있습니다", n))))
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
