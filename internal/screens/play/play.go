// Package play implements the active quiz screen for all session modes.
package play

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/quiz"
	"github.com/seojin/labquiz/internal/router"
	"github.com/seojin/labquiz/internal/screen"
	"github.com/seojin/labquiz/internal/screens/results"
	"github.com/seojin/labquiz/internal/store"
	"github.com/seojin/labquiz/internal/ui/components"
	"github.com/seojin/labquiz/internal/ui/layout"
)

// feedbackDelay is how long the correct-answer flash stays up before the
// next question in practice modes.
const feedbackDelay = 1200 * time.Millisecond

// PlayScreen runs one quiz session.
type PlayScreen struct {
	sess *quiz.Session
	repo *store.Repo
	bank *question.Bank

	opts  components.OptionList
	input components.TextInput

	startedAt       time.Time
	remaining       time.Duration
	showQuitConfirm bool
	finishing       bool
	errMsg          string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a play screen over an already-built session.
func New(sess *quiz.Session, repo *store.Repo, bank *question.Bank) *PlayScreen {
	return &PlayScreen{
		sess:      sess,
		repo:      repo,
		bank:      bank,
		remaining: exam.Duration,
	}
}

func (p *PlayScreen) Init() tea.Cmd {
	if err := p.sess.Begin(); err != nil {
		p.errMsg = err.Error()
		return nil
	}
	p.startedAt = time.Now()
	p.setupQuestion()

	if p.sess.Mode == quiz.ModeExam {
		return tea.Batch(p.inputInit(), p.tickCmd())
	}
	return p.inputInit()
}

// inputInit focuses the free-text input when the current question needs one.
func (p *PlayScreen) inputInit() tea.Cmd {
	q := p.sess.Current()
	if q == nil || q.Type != question.TypeFreeText {
		return nil
	}
	return p.input.Init()
}

// HandlesEsc keeps esc inside the screen for the quit confirmation.
func (p *PlayScreen) HandlesEsc() bool { return true }

func (p *PlayScreen) Title() string {
	switch p.sess.Mode {
	case quiz.ModeReview:
		return "오답 복습"
	case quiz.ModeExam:
		return "실전 모의고사"
	case quiz.ModeSingle:
		return "문제 보기"
	default:
		return "문제 풀기"
	}
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.showQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "그만두기"},
			{Key: "N", Description: "계속"},
		}
	}
	if p.sess.Phase() == quiz.PhaseFeedback && !p.sess.LastCorrect() {
		return []layout.KeyHint{
			{Key: "아무 키", Description: "다음 문제"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "제출"},
		{Key: "Esc", Description: "그만두기"},
	}
}

// setupQuestion prepares input state for the current question.
func (p *PlayScreen) setupQuestion() {
	q := p.sess.Current()
	if q == nil {
		return
	}
	if q.Type == question.TypeMultipleChoice {
		p.opts = components.NewOptionList(q.Options)
	} else {
		p.input = components.NewTextInput("정답 입력...", false, 40)
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return p.handleTimerTick(msg)

	case feedbackDoneMsg:
		return p.handleFeedbackDone(msg)

	case finishedMsg:
		return p.handleFinished(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.activeTextInput() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

// activeTextInput reports whether the free-text input is receiving events.
func (p *PlayScreen) activeTextInput() bool {
	q := p.sess.Current()
	return q != nil &&
		q.Type == question.TypeFreeText &&
		p.sess.Phase() == quiz.PhaseAwaitingAnswer &&
		!p.showQuitConfirm
}

func (p *PlayScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != p.sess.ID || p.finishing {
		return p, nil
	}

	p.remaining = exam.Duration - time.Since(p.startedAt)
	if p.remaining <= 0 {
		p.remaining = 0
		p.sess.ForceComplete()
		p.finishing = true
		return p, p.finalize()
	}
	return p, p.tickCmd()
}

func (p *PlayScreen) handleFeedbackDone(msg feedbackDoneMsg) (screen.Screen, tea.Cmd) {
	// Ticks scheduled by an earlier question or session are stale.
	if msg.SessionID != p.sess.ID || p.sess.Phase() != quiz.PhaseFeedback {
		return p, nil
	}
	return p.advance()
}

func (p *PlayScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, quiz.ErrAlreadyFinalized) {
		return p, nil
	}
	if msg.Err != nil {
		p.errMsg = msg.Err.Error()
		return p, nil
	}
	return p, tea.Batch(
		func() tea.Msg { return screen.RefreshBadgeMsg{} },
		func() tea.Msg {
			return router.PushScreenMsg{
				Screen: results.New(msg.Outcome, p.retryMissed(msg.Outcome)),
			}
		},
	)
}

// retryMissed builds the results screen's retry action: a plain practice run
// over this session's missed questions, replacing both screens on the stack.
func (p *PlayScreen) retryMissed(out *quiz.Outcome) func() tea.Cmd {
	period := p.sess.Period
	repo := p.repo
	bank := p.bank
	return func() tea.Cmd {
		qs, err := bank.ForIDs(period, out.MissedIDs)
		if err != nil || len(qs) == 0 {
			return nil
		}
		rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })

		sess := quiz.New(quiz.ModePractice, period, qs, nil)
		pop := func() tea.Msg { return router.PopScreenMsg{} }
		return tea.Sequence(pop, pop, func() tea.Msg {
			return router.PushScreenMsg{Screen: New(sess, repo, bank)}
		})
	}
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.errMsg != "" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if p.showQuitConfirm {
		switch key {
		case "y", "Y":
			p.showQuitConfirm = false
			p.sess.ForceComplete()
			p.finishing = true
			return p, p.finalize()
		case "n", "N", "esc":
			p.showQuitConfirm = false
		}
		return p, nil
	}

	switch p.sess.Phase() {
	case quiz.PhaseAwaitingAnswer:
		switch key {
		case "esc":
			p.showQuitConfirm = true
			return p, nil
		case "enter":
			return p.submit()
		}

		q := p.sess.Current()
		if q != nil && q.Type == question.TypeMultipleChoice {
			// A digit matching an option label selects and submits it.
			for i, opt := range q.Options {
				if key == question.OptionLabel(opt) {
					p.opts.Selected = i
					return p.submit()
				}
			}
			var cmd tea.Cmd
			p.opts, cmd = p.opts.Update(msg)
			return p, cmd
		}

		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd

	case quiz.PhaseFeedback:
		// Correct answers auto-advance on the delay; a wrong answer waits
		// for the learner to read the explanation.
		if !p.sess.LastCorrect() {
			return p.advance()
		}
	}

	return p, nil
}

// submit grades the current answer and schedules what comes next.
func (p *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	q := p.sess.Current()
	if q == nil {
		return p, nil
	}

	var answer string
	if q.Type == question.TypeMultipleChoice {
		answer = question.OptionLabel(p.opts.Value())
	} else {
		answer = strings.TrimSpace(p.input.Value())
	}

	fb, err := p.sess.Submit(answer)
	if err != nil {
		// Empty answer or double submit: state is unchanged, keep waiting.
		return p, nil
	}

	if q.Type == question.TypeMultipleChoice {
		p.opts.Reveal(correctIndex(q))
	}

	if fb.AutoAdvance {
		return p.advance()
	}
	if fb.Correct {
		return p, p.feedbackCmd()
	}
	return p, nil
}

// advance moves to the next question or finalizes the finished run.
func (p *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	if p.sess.Advance() {
		p.setupQuestion()
		return p, p.inputInit()
	}
	if p.finishing {
		return p, nil
	}
	p.finishing = true
	return p, p.finalize()
}

// finalize persists the session's effects asynchronously.
func (p *PlayScreen) finalize() tea.Cmd {
	sess := p.sess
	repo := p.repo
	return func() tea.Msg {
		out, err := quiz.Finalize(context.Background(), sess, repo)
		return finishedMsg{Outcome: out, Err: err}
	}
}

// tickCmd schedules the next exam countdown tick, stamped with the session ID.
func (p *PlayScreen) tickCmd() tea.Cmd {
	id := p.sess.ID
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{SessionID: id, Time: t}
	})
}

// feedbackCmd schedules the end of the correct-answer flash.
func (p *PlayScreen) feedbackCmd() tea.Cmd {
	id := p.sess.ID
	return tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{SessionID: id}
	})
}

// correctIndex finds the option whose label matches the canonical answer.
func correctIndex(q *question.Question) int {
	for i, opt := range q.Options {
		if question.OptionLabel(opt) == q.Answer {
			return i
		}
	}
	return -1
}
