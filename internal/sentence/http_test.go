package sentence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClient(server.URL, append([]ClientOption{WithRateLimit(0)}, opts...)...)
}

func TestHTTPClient_FetchQuestion(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"sentence":       "My parents worked hard so I could go to college.",
			"correct_labels": []string{"Familial", "Aspirational"},
		})
	})

	q, err := c.FetchQuestion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/get-sentence", gotPath)
	assert.Equal(t, "My parents worked hard so I could go to college.", q.Sentence)
	assert.Equal(t, []string{"Familial", "Aspirational"}, q.CorrectLabels)
	assert.False(t, q.Legacy)
}

func TestHTTPClient_LegacyLabel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentence":"I speak up when it matters.","cct_label":"Resistance"}`))
	})

	q, err := c.FetchQuestion(context.Background())
	require.NoError(t, err)
	assert.True(t, q.Legacy)
	assert.Equal(t, []string{"Resistance"}, q.CorrectLabels)
}

func TestHTTPClient_EmptyLabels(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentence":"Nothing to see here.","correct_labels":[]}`))
	})

	q, err := c.FetchQuestion(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, q.CorrectLabels)
	assert.Empty(t, q.CorrectLabels)
}

func TestHTTPClient_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing sentence", `{"correct_labels":["Social"]}`},
		{"missing labels", `{"sentence":"A sentence."}`},
		{"labels not array", `{"sentence":"A sentence.","correct_labels":"Social"}`},
		{"label not string", `{"sentence":"A sentence.","correct_labels":[1]}`},
		{"empty sentence", `{"sentence":"","correct_labels":[]}`},
		{"not an object", `["Social"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := c.FetchQuestion(context.Background())
			require.Error(t, err)
			var malformed *MalformedResponseError
			assert.True(t, errors.As(err, &malformed), "expected MalformedResponseError, got %T (%v)", err, err)
		})
	}
}

func TestHTTPClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"corpus is empty"}`))
	})

	_, err := c.FetchQuestion(context.Background())
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Equal(t, "corpus is empty", te.Message)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewHTTPClient(url, WithRateLimit(0), WithTimeout(time.Second))
	_, err := c.FetchQuestion(context.Background())
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
	assert.NotNil(t, te.Unwrap())
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.FetchQuestion(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te), "expected TransportError, got %T (%v)", err, err)
}

func TestHTTPClient_Wake(t *testing.T) {
	var hits int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			hits++
		}
		w.Write([]byte("ok"))
	})

	require.NoError(t, c.Wake(context.Background()))
	assert.Equal(t, 1, hits)
}

func TestHTTPClient_TrailingSlashBaseURL(t *testing.T) {
	c := NewHTTPClient("http://example.test/")
	assert.Equal(t, "http://example.test", c.BaseURL())
}

func TestHTTPClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentence":"x","correct_labels":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchQuestion(ctx)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.ErrorIs(t, err, context.Canceled)
}
