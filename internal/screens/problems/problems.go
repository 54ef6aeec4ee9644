// Package problems implements the browsable question list.
package problems

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/quiz"
	"github.com/seojin/labquiz/internal/router"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/screens/play"
	"github.com/seojin/labquiz/internal/store"
	"github.com/seojin/labquiz/internal/ui/layout"
	"github.com/seojin/labquiz/internal/ui/theme"
)

// ProblemsScreen lists every question in the period's bank. Selecting one
// opens it as a standalone run that records nothing.
type ProblemsScreen struct {
	bank   *question.Bank
	repo   *store.Repo
	period question.Period

	questions []question.Question
	inLog     map[int]bool
	cursor    int
	offset    int
	errMsg    string
}

var _ screen.Screen = (*ProblemsScreen)(nil)
var _ screen.KeyHintProvider = (*ProblemsScreen)(nil)

// New creates the question list for the period. Questions already in the
// review log are marked.
func New(bank *question.Bank, repo *store.Repo, period question.Period) *ProblemsScreen {
	p := &ProblemsScreen{
		bank:   bank,
		repo:   repo,
		period: period,
		inLog:  make(map[int]bool),
	}

	qs, err := bank.Questions(period)
	if err != nil {
		p.errMsg = err.Error()
		return p
	}
	p.questions = qs

	if log, err := repo.ReviewLog(context.Background(), period); err == nil {
		for _, id := range log {
			p.inLog[id] = true
		}
	}
	return p
}

func (p *ProblemsScreen) Init() tea.Cmd {
	return nil
}

func (p *ProblemsScreen) Title() string {
	return "문제 목록"
}

func (p *ProblemsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "PgUp/PgDn", Description: "페이지"},
		{Key: "Enter", Description: "풀어보기"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (p *ProblemsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(p.questions) == 0 {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.questions)-1 {
			p.cursor++
		}
	case "pgup":
		p.cursor -= 10
		if p.cursor < 0 {
			p.cursor = 0
		}
	case "pgdown":
		p.cursor += 10
		if p.cursor >= len(p.questions) {
			p.cursor = len(p.questions) - 1
		}
	case "enter":
		q := p.questions[p.cursor]
		sess := quiz.New(quiz.ModeSingle, p.period, []question.Question{q}, nil)
		return p, func() tea.Msg {
			return router.PushScreenMsg{Screen: play.New(sess, p.repo, p.bank)}
		}
	}
	return p, nil
}

func (p *ProblemsScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n오류: " + p.errMsg)
	}
	if len(p.questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n문제가 없습니다.")
	}

	// Keep the cursor within the visible window.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+visible {
		p.offset = p.cursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  전체 %d문제 (★ = 오답 노트에 있음)", len(p.questions))))
	b.WriteString("\n")

	end := p.offset + visible
	if end > len(p.questions) {
		end = len(p.questions)
	}
	for i := p.offset; i < end; i++ {
		q := p.questions[i]

		mark := "  "
		if p.inLog[q.ID] {
			mark = "★ "
		}
		text := q.Text
		if maxLen := width - 30; maxLen > 0 && len([]rune(text)) > maxLen {
			text = string([]rune(text)[:maxLen]) + "…"
		}
		line := fmt.Sprintf("%s#%-4d [%s] %s", mark, q.ID, q.Subject, text)

		if i == p.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
