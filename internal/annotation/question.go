package annotation

import "time"

// UnavailableSentence replaces the sentence when the service cannot be reached
// or returns something unusable.
const UnavailableSentence = "Error fetching sentence. Please try again."

// QuestionRecord is one sentence with its answer key, as received from the
// sentence service. It is replaced wholesale on every load.
type QuestionRecord struct {
	Sentence      string
	CorrectLabels LabelSet

	// Degraded is set when the record stands in for a failed fetch. Its answer
	// key is empty, so any selection grades as entirely incorrect.
	Degraded bool

	FetchedAt time.Time
}

// DegradedRecord builds the placeholder record used after a failed fetch.
func DegradedRecord(placeholder string, at time.Time) QuestionRecord {
	if placeholder == "" {
		placeholder = UnavailableSentence
	}
	return QuestionRecord{
		Sentence:      placeholder,
		CorrectLabels: NewLabelSet(),
		Degraded:      true,
		FetchedAt:     at,
	}
}

// Clone returns a copy whose answer key is independent of the original.
func (q QuestionRecord) Clone() QuestionRecord {
	q.CorrectLabels = q.CorrectLabels.Clone()
	return q
}
