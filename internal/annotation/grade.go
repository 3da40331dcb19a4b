package annotation

import "time"

// GradeResult is the three-way diff between a selection and an answer key.
// It is never modified after Grade returns it.
type GradeResult struct {
	CorrectSelected   LabelSet
	IncorrectSelected LabelSet
	MissedCorrect     LabelSet

	// GradedAt is stamped by the session; Grade leaves it zero.
	GradedAt time.Time
}

// Grade partitions selection against the correct labels:
//
//	CorrectSelected   = selection ∩ correct
//	IncorrectSelected = selection − correct
//	MissedCorrect     = correct − selection
//
// It has no side effects and never retains its inputs.
func Grade(selection, correct LabelSet) GradeResult {
	return GradeResult{
		CorrectSelected:   selection.Intersect(correct),
		IncorrectSelected: selection.Difference(correct),
		MissedCorrect:     correct.Difference(selection),
	}
}

// AllCorrect reports whether nothing was picked wrongly and nothing was missed.
func (g GradeResult) AllCorrect() bool {
	return g.IncorrectSelected.IsEmpty() && g.MissedCorrect.IsEmpty()
}

// Equal compares the three partitions. GradedAt is ignored.
func (g GradeResult) Equal(o GradeResult) bool {
	return g.CorrectSelected.Equal(o.CorrectSelected) &&
		g.IncorrectSelected.Equal(o.IncorrectSelected) &&
		g.MissedCorrect.Equal(o.MissedCorrect)
}

// Clone returns a deep copy so callers cannot reach the session's sets.
func (g GradeResult) Clone() GradeResult {
	return GradeResult{
		CorrectSelected:   g.CorrectSelected.Clone(),
		IncorrectSelected: g.IncorrectSelected.Clone(),
		MissedCorrect:     g.MissedCorrect.Clone(),
		GradedAt:          g.GradedAt,
	}
}
