package taxonomy

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Label is a category name from the taxonomy. Identity is the exact string.
type Label string

// seedLabels is the fixed display order of the Community Cultural Wealth
// categories. Renaming an entry invalidates selections recorded against the
// old spelling.
var seedLabels = []Label{
	"Attainment",
	"Aspirational",
	"Navigational",
	"Perseverant",
	"Resistance",
	"Familial",
	"Filial Piety",
	"First Gen",
	"Social",
	"Community",
	"Spiritual",
	"Class 0",
}

// position indexes labels by display order.
var position map[Label]int

// folded maps normalized, lower-cased names back to the canonical label.
var folded map[string]Label

func init() {
	position = make(map[Label]int, len(seedLabels))
	folded = make(map[string]Label, len(seedLabels))
	for i, l := range seedLabels {
		if _, dup := position[l]; dup {
			panic("taxonomy: duplicate label " + string(l))
		}
		position[l] = i
		folded[fold(string(l))] = l
	}
}

// All returns the taxonomy in display order. The slice is a copy.
func All() []Label {
	out := make([]Label, len(seedLabels))
	copy(out, seedLabels)
	return out
}

// Len returns the number of labels in the taxonomy.
func Len() int {
	return len(seedLabels)
}

// Contains reports whether l is an exact member of the taxonomy.
func Contains(l Label) bool {
	_, ok := position[l]
	return ok
}

// Index returns the display position of l, or -1 if l is not in the taxonomy.
func Index(l Label) int {
	if i, ok := position[l]; ok {
		return i
	}
	return -1
}

// Lookup resolves free-form input (e.g. from a CLI flag) to a canonical label.
// Matching ignores case, surrounding space and Unicode composition.
func Lookup(name string) (Label, bool) {
	l, ok := folded[fold(name)]
	return l, ok
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}
