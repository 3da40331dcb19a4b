// Package sentence talks to the remote sentence service that supplies
// annotation questions and their answer keys.
package sentence

import "context"

// Client fetches questions from the sentence service.
type Client interface {
	// FetchQuestion retrieves one random sentence with its correct labels.
	// Failures are *TransportError or *MalformedResponseError.
	FetchQuestion(ctx context.Context) (*Question, error)

	// Wake pings the service root so a cold-started host spins up before the
	// first real fetch. Callers usually ignore the error.
	Wake(ctx context.Context) error
}

// Question is a validated /get-sentence payload.
type Question struct {
	Sentence      string
	CorrectLabels []string

	// Legacy is set when the server answered with the single-label
	// cct_label field instead of correct_labels.
	Legacy bool
}
