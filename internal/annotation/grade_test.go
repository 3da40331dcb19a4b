package annotation

import (
	"testing"

	"github.com/abhisek/tacit/internal/taxonomy"
)

// universe mixes taxonomy labels with one outside label so subsets exercise
// answer keys that reference renamed categories.
var universe = []taxonomy.Label{"Attainment", "Resistance", "Class 0", "Social", "Perseverance"}

// subsets enumerates every subset of universe.
func subsets() []LabelSet {
	n := len(universe)
	out := make([]LabelSet, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		s := NewLabelSet()
		for i, l := range universe {
			if mask&(1<<i) != 0 {
				s.Toggle(l)
			}
		}
		out = append(out, s)
	}
	return out
}

func TestGrade_PartitionLaws(t *testing.T) {
	all := subsets()
	for _, sel := range all {
		for _, key := range all {
			g := Grade(sel, key)

			if !g.CorrectSelected.Union(g.MissedCorrect).Equal(key) {
				t.Fatalf("sel=%v key=%v: correct ∪ missed = %v, want key", sel, key, g.CorrectSelected.Union(g.MissedCorrect))
			}
			if !g.CorrectSelected.Union(g.IncorrectSelected).Equal(sel) {
				t.Fatalf("sel=%v key=%v: correct ∪ incorrect != selection", sel, key)
			}
			if !g.CorrectSelected.Intersect(g.IncorrectSelected).IsEmpty() {
				t.Fatalf("sel=%v key=%v: correct and incorrect overlap", sel, key)
			}
			if !g.CorrectSelected.Intersect(g.MissedCorrect).IsEmpty() {
				t.Fatalf("sel=%v key=%v: correct and missed overlap", sel, key)
			}
			if !g.IncorrectSelected.Intersect(g.MissedCorrect).IsEmpty() {
				t.Fatalf("sel=%v key=%v: incorrect and missed overlap", sel, key)
			}
			if !g.IncorrectSelected.Equal(sel.Difference(key)) {
				t.Fatalf("sel=%v key=%v: incorrect != selection − key", sel, key)
			}
			if !g.MissedCorrect.Equal(key.Difference(sel)) {
				t.Fatalf("sel=%v key=%v: missed != key − selection", sel, key)
			}
		}
	}
}

func TestGrade_EmptySelection(t *testing.T) {
	key := NewLabelSet("Attainment", "Class 0")
	g := Grade(NewLabelSet(), key)

	if !g.CorrectSelected.IsEmpty() || !g.IncorrectSelected.IsEmpty() {
		t.Errorf("expected nothing selected, got correct=%v incorrect=%v", g.CorrectSelected, g.IncorrectSelected)
	}
	if !g.MissedCorrect.Equal(key) {
		t.Errorf("MissedCorrect = %v, want %v", g.MissedCorrect, key)
	}
}

func TestGrade_EmptyKey(t *testing.T) {
	sel := NewLabelSet("Attainment", "Resistance")
	g := Grade(sel, NewLabelSet())

	if !g.CorrectSelected.IsEmpty() {
		t.Errorf("CorrectSelected = %v, want empty", g.CorrectSelected)
	}
	if !g.IncorrectSelected.Equal(sel) {
		t.Errorf("IncorrectSelected = %v, want %v", g.IncorrectSelected, sel)
	}
	if !g.MissedCorrect.IsEmpty() {
		t.Errorf("MissedCorrect = %v, want empty", g.MissedCorrect)
	}
}

func TestGrade_Scenario(t *testing.T) {
	key := NewLabelSet("Attainment", "Class 0")
	sel := NewLabelSet("Attainment", "Resistance")

	g := Grade(sel, key)

	if !g.CorrectSelected.Equal(NewLabelSet("Attainment")) {
		t.Errorf("CorrectSelected = %v, want {Attainment}", g.CorrectSelected)
	}
	if !g.IncorrectSelected.Equal(NewLabelSet("Resistance")) {
		t.Errorf("IncorrectSelected = %v, want {Resistance}", g.IncorrectSelected)
	}
	if !g.MissedCorrect.Equal(NewLabelSet("Class 0")) {
		t.Errorf("MissedCorrect = %v, want {Class 0}", g.MissedCorrect)
	}
	if g.AllCorrect() {
		t.Error("AllCorrect() = true, want false")
	}
}

func TestGrade_Idempotent(t *testing.T) {
	key := NewLabelSet("Social", "Community")
	sel := NewLabelSet("Social", "Spiritual")

	first := Grade(sel, key)
	second := Grade(sel, key)
	if !first.Equal(second) {
		t.Errorf("Grade not idempotent: %v vs %v", first, second)
	}
}

func TestGrade_DoesNotAliasInputs(t *testing.T) {
	key := NewLabelSet("Social")
	sel := NewLabelSet("Social")

	g := Grade(sel, key)
	sel.Toggle("Social")
	key.Toggle("Community")

	if !g.CorrectSelected.Equal(NewLabelSet("Social")) {
		t.Errorf("result changed after inputs mutated: %v", g.CorrectSelected)
	}
	if !g.MissedCorrect.IsEmpty() {
		t.Errorf("MissedCorrect = %v, want empty", g.MissedCorrect)
	}
}

func TestGrade_AllCorrect(t *testing.T) {
	key := NewLabelSet("Familial")
	if !Grade(key.Clone(), key).AllCorrect() {
		t.Error("exact match should be AllCorrect")
	}
}

func TestGradeResult_CloneIsIndependent(t *testing.T) {
	g := Grade(NewLabelSet("Social"), NewLabelSet("Social"))
	c := g.Clone()
	c.CorrectSelected.Toggle("Social")

	if !g.CorrectSelected.Contains("Social") {
		t.Error("mutating a clone changed the original")
	}
}
