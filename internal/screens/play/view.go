package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/quiz"
	"github.com/seojin/labquiz/internal/ui/components"
	"github.com/seojin/labquiz/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	if p.errMsg != "" {
		return renderError(width, height, p.errMsg)
	}
	if p.showQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if p.finishing {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  결과를 저장하는 중...")
	}
	if p.sess.Phase() == quiz.PhaseFeedback {
		return p.renderFeedback(width)
	}
	return p.renderQuestion(width)
}

// renderQuestion renders the active question display.
func (p *PlayScreen) renderQuestion(width int) string {
	q := p.sess.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	// Info line: position and subject on the left, score and timer right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  문제 %d/%d  [%s]", p.sess.Number(), p.sess.Len(), q.Subject))

	right := fmt.Sprintf("정답 %d", p.sess.Score())
	if p.sess.Mode == quiz.ModeExam {
		mins := int(p.remaining.Minutes())
		secs := int(p.remaining.Seconds()) % 60
		right += fmt.Sprintf("   남은 시간 %d:%02d", mins, secs)
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(right)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	// Question text.
	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n")

	if q.ImagePath != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("[이미지: %s]", q.ImagePath)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Input area.
	if q.Type == question.TypeMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.opts.View()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("번호 키로 바로 제출하거나 방향키 + Enter"))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("정답: " + p.input.View())
		b.WriteString(answerLine)
	}

	return b.String()
}

// renderFeedback renders the post-answer display.
func (p *PlayScreen) renderFeedback(width int) string {
	q := p.sess.Current()

	var b strings.Builder
	b.WriteString("\n\n")

	if p.sess.LastCorrect() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("정답!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("오답"))
		if q != nil {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("정답: %s", q.Answer)))
		}
	}

	b.WriteString("\n\n")

	if q != nil && q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		exp := expStyle.Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if !p.sess.LastCorrect() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("아무 키나 눌러 계속..."))
	}

	return b.String()
}

// renderQuitConfirm renders the early-exit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("여기서 그만두시겠습니까?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("지금까지 푼 문제는 결과에 반영됩니다."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Success).
		Render("[Y] 네, 그만둘래요"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Render("[N] 아니요, 계속할래요"))

	card := components.InfoCard(b.String(), components.ContentWidth(width))
	return components.CenterFrame(card, width, height)
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Error).
		Render(fmt.Sprintf("오류: %s\n\n아무 키나 눌러 돌아가기", errMsg))
	card := components.InfoCard(msg, components.ContentWidth(width))
	return components.CenterFrame(card, width, height)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
