package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/annotation"
	"github.com/abhisek/tacit/internal/taxonomy"
	"github.com/abhisek/tacit/internal/ui/theme"
)

// Checklist renders the taxonomy as a multi-select list. It holds only the
// cursor; which labels are checked comes from the session.
type Checklist struct {
	Labels []taxonomy.Label
	Cursor int
}

// NewChecklist creates a checklist over the full taxonomy.
func NewChecklist() Checklist {
	return Checklist{Labels: taxonomy.All()}
}

// Up moves the cursor up, stopping at the first row.
func (c *Checklist) Up() {
	if c.Cursor > 0 {
		c.Cursor--
	}
}

// Down moves the cursor down, stopping at the last row.
func (c *Checklist) Down() {
	if c.Cursor < len(c.Labels)-1 {
		c.Cursor++
	}
}

// Current returns the label under the cursor.
func (c Checklist) Current() (taxonomy.Label, bool) {
	if c.Cursor < 0 || c.Cursor >= len(c.Labels) {
		return "", false
	}
	return c.Labels[c.Cursor], true
}

// Shortcut maps a key to a label by position: 1-9, then 0 for the tenth,
// then - and = for the eleventh and twelfth.
func (c Checklist) Shortcut(key string) (taxonomy.Label, bool) {
	i := strings.Index("1234567890-=", key)
	if len(key) != 1 || i < 0 || i >= len(c.Labels) {
		return "", false
	}
	return c.Labels[i], true
}

func shortcutKey(i int) string {
	const keys = "1234567890-="
	if i < len(keys) {
		return keys[i : i+1]
	}
	return " "
}

// View renders the list with the current selection. With a grade, each row
// is marked correct, incorrect or missed instead.
func (c Checklist) View(selection annotation.LabelSet, grade *annotation.GradeResult, focused bool) string {
	var b strings.Builder
	for i, l := range c.Labels {
		checked := selection.Contains(l)

		box := "[ ]"
		if checked {
			box = "[x]"
		}
		cursor := "  "
		if focused && i == c.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, shortcutKey(i), box, l)

		style := theme.Unselected
		if grade != nil {
			switch {
			case grade.CorrectSelected.Contains(l):
				style = theme.Correct
				line += "  ✓"
			case grade.IncorrectSelected.Contains(l):
				style = theme.Incorrect
				line += "  ✗"
			case grade.MissedCorrect.Contains(l):
				style = theme.Missed
				line += "  missed"
			default:
				style = lipgloss.NewStyle().Foreground(theme.TextDim)
			}
		} else if focused && i == c.Cursor {
			style = theme.Selected
		} else if checked {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
