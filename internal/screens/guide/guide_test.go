package guide

import (
	"strings"
	"testing"

	"github.com/abhisek/tacit/internal/taxonomy"
)

func TestEveryLabelDescribed(t *testing.T) {
	for _, l := range taxonomy.All() {
		if Description(l) == "" {
			t.Errorf("no description for %q", l)
		}
	}
	if len(descriptions) != taxonomy.Len() {
		t.Errorf("descriptions = %d, taxonomy = %d", len(descriptions), taxonomy.Len())
	}
}

func TestViewListsLabels(t *testing.T) {
	view := New().View(100, 30)
	for _, l := range taxonomy.All() {
		if !strings.Contains(view, string(l)) {
			t.Errorf("view missing %q", l)
		}
	}
}
