// Package setup implements the practice configuration screen: subject
// selection and question count.
package setup

import (
	"fmt"
	"math/rand"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/quiz"
	"github.com/seojin/labquiz/internal/router"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/screens/play"
	"github.com/seojin/labquiz/internal/store"
	"github.com/seojin/labquiz/internal/ui/components"
	"github.com/seojin/labquiz/internal/ui/layout"
	"github.com/seojin/labquiz/internal/ui/theme"
)

// focus identifies which pane receives navigation keys.
type focus int

const (
	focusSubjects focus = iota
	focusCount
	focusStart
)

var countPresets = []int{10, 20, 30, 50}

// SetupScreen configures and starts a practice session.
type SetupScreen struct {
	bank   *question.Bank
	repo   *store.Repo
	period question.Period

	subjects components.Checklist
	focus    focus

	countIdx    int // index into countPresets; len(countPresets) = custom
	customInput components.TextInput

	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen for the period.
func New(bank *question.Bank, repo *store.Repo, period question.Period) *SetupScreen {
	subjects, _ := bank.Subjects(period)
	return &SetupScreen{
		bank:        bank,
		repo:        repo,
		period:      period,
		subjects:    components.NewChecklist(subjects),
		customInput: components.NewTextInput("문항 수", true, 3),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "문제 풀기"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusSubjects {
		return []layout.KeyHint{
			{Key: "Space", Description: "과목 선택"},
			{Key: "A", Description: "전체"},
			{Key: "Tab", Description: "다음"},
			{Key: "Enter", Description: "시작"},
			{Key: "Esc", Description: "뒤로"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "문항 수 선택"},
		{Key: "Tab", Description: "다음"},
		{Key: "Enter", Description: "시작"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		switch s.focus {
		case focusSubjects:
			s.focus = focusCount
		case focusCount:
			s.focus = focusStart
		default:
			s.focus = focusSubjects
		}
		return s, nil

	case "enter":
		return s.start()
	}

	if s.focus == focusCount {
		switch kmsg.String() {
		case "left", "h":
			if s.countIdx > 0 {
				s.countIdx--
			}
			return s, nil
		case "right", "l":
			if s.countIdx < len(countPresets) {
				s.countIdx++
			}
			return s, nil
		}
		if s.customSelected() {
			var cmd tea.Cmd
			s.customInput, cmd = s.customInput.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.focus == focusStart {
		return s, nil
	}

	var cmd tea.Cmd
	s.subjects, cmd = s.subjects.Update(kmsg)
	return s, cmd
}

func (s *SetupScreen) customSelected() bool {
	return s.countIdx == len(countPresets)
}

// pool returns the questions matching the current subject selection.
func (s *SetupScreen) pool() ([]question.Question, error) {
	checked := s.subjects.Checked()
	if len(checked) == 0 {
		return s.bank.Questions(s.period)
	}
	set := make(map[string]bool, len(checked))
	for _, subj := range checked {
		set[subj] = true
	}
	return s.bank.Filter(s.period, set)
}

// start validates the configuration and opens the session.
func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	pool, err := s.pool()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if len(pool) == 0 {
		s.errMsg = "선택한 과목에 문제가 없습니다"
		return s, nil
	}

	count := 0
	if s.customSelected() {
		count, err = s.customInput.NumericValue()
		if err != nil || count <= 0 {
			s.errMsg = "문항 수를 입력하세요"
			return s, nil
		}
	} else {
		count = countPresets[s.countIdx]
	}
	// The count never exceeds the pool.
	if count > len(pool) {
		count = len(pool)
	}

	qs := make([]question.Question, len(pool))
	copy(qs, pool)
	rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	qs = qs[:count]

	sess := quiz.New(quiz.ModePractice, s.period, qs, nil)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: play.New(sess, s.repo, s.bank)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render("과목 선택 (선택 없음 = 전체)"))
	b.WriteString("\n\n")

	subjectView := s.subjects.View()
	if s.focus != focusSubjects {
		subjectView = lipgloss.NewStyle().Foreground(theme.TextDim).Render(subjectView)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, subjectView))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render("문항 수"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderCountRow()))

	if s.customSelected() {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.customInput.View()))
	}

	b.WriteString("\n\n")
	startBtn := components.NewButton("시작", s.focus == focusStart, nil)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, startBtn.View()))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *SetupScreen) renderCountRow() string {
	labels := make([]string, 0, len(countPresets)+1)
	for _, n := range countPresets {
		labels = append(labels, fmt.Sprintf("%d", n))
	}
	labels = append(labels, "직접 입력")

	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		text := "  " + label + "  "
		if i == s.countIdx {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			text = "[ " + label + " ]"
		}
		if s.focus != focusCount {
			style = style.Foreground(theme.TextDim)
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, " ")
}
