// Package explain asks a language model why a sentence carries the labels
// in its answer key, after the user has been graded.
package explain

import (
	"github.com/abhisek/tacit/internal/annotation"
	"github.com/abhisek/tacit/internal/taxonomy"
)

// Input is everything the prompt needs.
type Input struct {
	Sentence string
	Grade    annotation.GradeResult
	Correct  annotation.LabelSet
}

// Explanation is the model's account of the answer key.
type Explanation struct {
	// Sentence identifies which question this explanation belongs to.
	Sentence string
	Summary  string
	Labels   []LabelReason
}

// LabelReason explains one label of the answer key.
type LabelReason struct {
	Label  taxonomy.Label
	Reason string
}

// Reason returns the explanation for label, if the model gave one.
func (e *Explanation) Reason(label taxonomy.Label) (string, bool) {
	for _, lr := range e.Labels {
		if lr.Label == label {
			return lr.Reason, true
		}
	}
	return "", false
}
