package annotate

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/annotation"
	"github.com/abhisek/tacit/internal/session"
	"github.com/abhisek/tacit/internal/ui/components"
	"github.com/abhisek/tacit/internal/ui/layout"
	"github.com/abhisek/tacit/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	snap := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	if snap.Phase == session.PhaseDisposed {
		return renderCentered(width, height, "Session ended.")
	}
	if !snap.HasQuestion {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.spinner.View())
	}

	var sections []string
	sections = append(sections, s.renderSentence(snap, cw))

	if snap.Phase == session.PhaseLoading {
		sections = append(sections, layout.Center(s.spinner.View(), width))
	}

	grade := displayedGrade(snap)
	sections = append(sections, layout.Center(
		s.list.View(snap.Selection, grade, snap.CanInteract()), width))

	if s.warning != "" {
		sections = append(sections, layout.Center(theme.Warning.Render(s.warning), width))
	}

	if grade != nil {
		sections = append(sections, layout.Center(renderGrade(*grade, cw), width))
	}

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		if exp := s.renderExplanation(cw); exp != "" {
			sections = append(sections, layout.Center(exp, width))
		}
	}

	return strings.Join(sections, "\n")
}

// displayedGrade is the feedback to draw. Once the selection is edited after
// grading, the markers follow the edited selection; the held result is left
// as it was.
func displayedGrade(snap session.Snapshot) *annotation.GradeResult {
	if snap.Grade == nil || !snap.HasQuestion {
		return snap.Grade
	}
	if snap.Phase == session.PhaseReady {
		g := annotation.Grade(snap.Selection, snap.Question.CorrectLabels)
		return &g
	}
	return snap.Grade
}

// renderSentence shows the sentence in a card. A degraded record is shown
// in the error color with the cause underneath.
func (s *Screen) renderSentence(snap session.Snapshot, cw int) string {
	q := snap.Question
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6)

	body := style.Render(q.Sentence)
	if q.Degraded {
		body = style.Foreground(theme.Error).Render(q.Sentence)
		if snap.LastError != nil {
			body += "\n\n" + theme.Hint.Render(snap.LastError.Error())
		}
		body += "\n" + theme.Hint.Render("Press N to try again.")
	}

	return lipgloss.PlaceHorizontal(cw+6, lipgloss.Center, components.Card(body, cw))
}

func renderGrade(g annotation.GradeResult, cw int) string {
	var b strings.Builder

	if g.AllCorrect() {
		b.WriteString(theme.Correct.Render("All correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
	}
	b.WriteString("\n")

	row := func(title string, set annotation.LabelSet, style lipgloss.Style) {
		val := "none"
		if !set.IsEmpty() {
			val = set.String()
		}
		b.WriteString(fmt.Sprintf("%s %s\n", style.Render(title), lipgloss.NewStyle().Foreground(theme.Text).Render(val)))
	}
	row("Correct:  ", g.CorrectSelected, theme.Correct)
	row("Incorrect:", g.IncorrectSelected, theme.Incorrect)
	row("Missed:   ", g.MissedCorrect, theme.Missed)

	return lipgloss.NewStyle().Width(cw).Render(strings.TrimRight(b.String(), "\n"))
}

func (s *Screen) renderExplanation(cw int) string {
	switch {
	case s.explaining:
		return s.spinner.View()
	case s.explainErr != "":
		return theme.Warning.Render("Explanation unavailable: " + s.explainErr)
	case s.explanation == nil:
		return ""
	}

	var b strings.Builder
	b.WriteString(s.explanation.Summary)
	for _, lr := range s.explanation.Labels {
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render(string(lr.Label)) + ": " + lr.Reason)
	}
	return components.Card(lipgloss.NewStyle().Foreground(theme.Text).Width(cw-6).Render(b.String()), cw)
}

func renderCentered(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render(msg)
}
