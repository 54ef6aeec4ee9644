// Package app wires the root Bubble Tea model: screen routing, the shared
// header and footer frame, and the review-count badge.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/router"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/screens/mainmenu"
	"github.com/seojin/labquiz/internal/store"
	"github.com/seojin/labquiz/internal/ui/layout"
)

// Options carries the application's dependencies.
type Options struct {
	Bank   *question.Bank
	Repo   *store.Repo
	Period question.Period
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options

	period      question.Period
	reviewCount int
	width       int
	height      int
}

// newAppModel creates the root model with the main menu on the stack.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		router: router.New(mainmenu.New(opts.Bank, opts.Repo, opts.Period)),
		opts:   opts,
		period: opts.Period,
	}
	m.refreshBadge()
	return m
}

// refreshBadge re-reads the review-log count shown in the header.
func (m *AppModel) refreshBadge() {
	log, err := m.opts.Repo.ReviewLog(context.Background(), m.period)
	if err != nil {
		return
	}
	m.reviewCount = len(log)
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.RefreshBadgeMsg:
		m.refreshBadge()
		// Fall through to the router so the active screen sees it too.

	case screen.PeriodChangedMsg:
		m.period = msg.Period
		m.refreshBadge()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.period.Label(), m.reviewCount, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "이동"},
			{Key: "Enter", Description: "선택"},
			{Key: "Ctrl+C", Description: "종료"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
