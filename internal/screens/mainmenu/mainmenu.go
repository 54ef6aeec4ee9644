// Package mainmenu implements the top-level navigation screen.
package mainmenu

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/quiz"
	"github.com/seojin/labquiz/internal/router"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/screens/play"
	"github.com/seojin/labquiz/internal/screens/problems"
	"github.com/seojin/labquiz/internal/screens/setup"
	"github.com/seojin/labquiz/internal/screens/statsview"
	"github.com/seojin/labquiz/internal/store"
	"github.com/seojin/labquiz/internal/ui/components"
	"github.com/seojin/labquiz/internal/ui/layout"
	"github.com/seojin/labquiz/internal/ui/theme"
)

// statusMsg carries an inline notice shown under the menu, e.g. when an exam
// cannot be assembled from the loaded bank.
type statusMsg string

// MenuScreen is the application's top-level screen.
type MenuScreen struct {
	bank   *question.Bank
	repo   *store.Repo
	period question.Period

	menu        components.Menu
	reviewCount int
	status      string
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the menu for the given period.
func New(bank *question.Bank, repo *store.Repo, period question.Period) *MenuScreen {
	m := &MenuScreen{
		bank:   bank,
		repo:   repo,
		period: period,
	}
	m.reload()
	return m
}

// reload re-reads the review count and rebuilds the menu items. Called on
// construction and whenever the period or the review log changes.
func (m *MenuScreen) reload() {
	log, err := m.repo.ReviewLog(context.Background(), m.period)
	if err != nil {
		m.status = err.Error()
	}
	m.reviewCount = len(log)

	items := []components.MenuItem{
		{Label: "문제 풀기", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(m.bank, m.repo, m.period)}
			}
		}},
		{
			Label:    fmt.Sprintf("오답 복습 (%d)", m.reviewCount),
			Disabled: m.reviewCount == 0,
			Action:   func() tea.Cmd { return m.startReview() },
		},
	}

	// The exam blueprint covers the practical period only.
	if m.period == question.PeriodPractical {
		items = append(items, components.MenuItem{
			Label:  "실전 모의고사",
			Action: func() tea.Cmd { return m.startExam() },
		})
	}

	items = append(items,
		components.MenuItem{Label: "문제 목록", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: problems.New(m.bank, m.repo, m.period)}
			}
		}},
		components.MenuItem{Label: "성적 보기", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsview.New(m.bank, m.repo, m.period)}
			}
		}},
		components.MenuItem{Label: "종료", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	m.menu = components.NewMenu(items)
}

// startReview loads the review log and opens a review session over it.
func (m *MenuScreen) startReview() tea.Cmd {
	return func() tea.Msg {
		log, err := m.repo.ReviewLog(context.Background(), m.period)
		if err != nil {
			return statusMsg(err.Error())
		}
		qs, err := m.bank.ForIDs(m.period, log)
		if err != nil {
			return statusMsg(err.Error())
		}
		if len(qs) == 0 {
			return statusMsg("복습할 문제가 없습니다")
		}
		rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })

		sess := quiz.New(quiz.ModeReview, m.period, qs, log)
		return router.PushScreenMsg{Screen: play.New(sess, m.repo, m.bank)}
	}
}

// startExam samples a blueprint exam from the period's bank.
func (m *MenuScreen) startExam() tea.Cmd {
	return func() tea.Msg {
		pool, err := m.bank.Questions(m.period)
		if err != nil {
			return statusMsg(err.Error())
		}
		qs, err := exam.Sample(pool, exam.Default, rand.New(rand.NewSource(rand.Int63())))
		if err != nil {
			return statusMsg(err.Error())
		}

		sess := quiz.New(quiz.ModeExam, m.period, qs, nil)
		return router.PushScreenMsg{Screen: play.New(sess, m.repo, m.bank)}
	}
}

func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

func (m *MenuScreen) Title() string {
	return "메인 메뉴"
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "선택"},
		{Key: "P", Description: "교시 전환"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = string(msg)
		return m, nil

	case screen.RefreshBadgeMsg:
		m.reload()
		return m, nil

	case screen.PeriodChangedMsg:
		m.period = msg.Period
		m.status = ""
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "p" {
			next := m.period.Other()
			if !m.bank.Available(next) {
				m.status = fmt.Sprintf("%s 문제 파일이 없습니다", next.Label())
				return m, nil
			}
			return m, func() tea.Msg { return screen.PeriodChangedMsg{Period: next} }
		}
		m.status = ""
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("임상병리사 문제 트레이너"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(m.period.Label()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.menu.View()))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(m.status))
	}

	return b.String()
}
