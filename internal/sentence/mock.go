package sentence

import (
	"context"
	"sync"
)

// MockResponse is a canned answer for MockClient.
type MockResponse struct {
	Question *Question
	Err      error

	// Wait, when non-nil, blocks FetchQuestion until it is closed or the
	// context ends. Used to hold a fetch in flight.
	Wait <-chan struct{}
}

// MockClient is a deterministic Client for tests. It returns canned responses
// in FIFO order.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     int
	wakes     int
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a MockClient with the given canned responses.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

// FetchQuestion returns the next canned response, or a TransportError once
// the queue is empty.
func (m *MockClient) FetchQuestion(ctx context.Context) (*Question, error) {
	m.mu.Lock()
	m.calls++
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return nil, &TransportError{Op: "fetch", Message: "no canned response"}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Wait != nil {
		select {
		case <-resp.Wait:
		case <-ctx.Done():
			return nil, &TransportError{Op: "fetch", Err: ctx.Err()}
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	q := *resp.Question
	q.CorrectLabels = append([]string(nil), resp.Question.CorrectLabels...)
	return &q, nil
}

// Wake records the ping and always succeeds.
func (m *MockClient) Wake(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wakes++
	return nil
}

// AddResponse appends a canned response to the queue.
func (m *MockClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of FetchQuestion calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// WakeCount returns the number of Wake calls made.
func (m *MockClient) WakeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wakes
}
