package session

import "github.com/abhisek/tacit/internal/annotation"

// DefaultHistorySize bounds how many prior questions Previous can revisit.
const DefaultHistorySize = 20

// history is a bounded LIFO of prior question records. When full, the oldest
// record is dropped.
type history struct {
	records []annotation.QuestionRecord
	limit   int
}

func newHistory(limit int) *history {
	if limit < 0 {
		limit = 0
	}
	return &history{limit: limit}
}

func (h *history) push(q annotation.QuestionRecord) {
	if h.limit == 0 {
		return
	}
	if len(h.records) == h.limit {
		copy(h.records, h.records[1:])
		h.records = h.records[:len(h.records)-1]
	}
	h.records = append(h.records, q)
}

func (h *history) pop() (annotation.QuestionRecord, bool) {
	if len(h.records) == 0 {
		return annotation.QuestionRecord{}, false
	}
	last := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	return last, true
}

func (h *history) len() int {
	return len(h.records)
}

func (h *history) clear() {
	h.records = nil
}
