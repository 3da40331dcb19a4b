package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tacit/internal/corpus"
	"github.com/abhisek/tacit/internal/logging"
	"github.com/abhisek/tacit/internal/sentence"
)

func openCorpus(t *testing.T, rows ...corpus.Row) *corpus.Store {
	t.Helper()
	store, err := corpus.Open(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Replace(context.Background(), rows))
	return store
}

func newTestServer(t *testing.T, c Corpus, opts Options) *httptest.Server {
	t.Helper()
	srv := New(c, opts)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type brokenCorpus struct{}

func (brokenCorpus) Random(context.Context) (corpus.Row, error) {
	return corpus.Row{}, errors.New("disk on fire")
}

func (brokenCorpus) Count(context.Context) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestGetSentence(t *testing.T) {
	store := openCorpus(t, corpus.Row{Sentence: "We got through it together.", Labels: []string{"Community", "Perseverant"}})
	ts := newTestServer(t, store, Options{})

	resp, err := http.Get(ts.URL + "/get-sentence")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body sentenceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "We got through it together.", body.Sentence)
	assert.Equal(t, []string{"Community", "Perseverant"}, body.CorrectLabels)
}

func TestGetSentence_EmptyLabelsEncodeAsArray(t *testing.T) {
	store := openCorpus(t, corpus.Row{Sentence: "Plain sentence."})
	ts := newTestServer(t, store, Options{})

	resp, err := http.Get(ts.URL + "/get-sentence")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, []any{}, raw["correct_labels"])
}

func TestGetSentence_EmptyCorpus(t *testing.T) {
	store := openCorpus(t)
	ts := newTestServer(t, store, Options{})

	resp, err := http.Get(ts.URL + "/get-sentence")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, corpus.ErrEmpty.Error(), body["error"])
}

func TestGetSentence_RoundTripsThroughClient(t *testing.T) {
	store := openCorpus(t, corpus.Row{Sentence: "I keep my culture alive.", Labels: []string{"Spiritual"}})
	ts := newTestServer(t, store, Options{})

	client := sentence.NewHTTPClient(ts.URL, sentence.WithRateLimit(0))
	require.NoError(t, client.Wake(context.Background()))

	q, err := client.FetchQuestion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "I keep my culture alive.", q.Sentence)
	assert.Equal(t, []string{"Spiritual"}, q.CorrectLabels)
}

func TestClientSeesTransportErrorOnEmptyCorpus(t *testing.T) {
	store := openCorpus(t)
	ts := newTestServer(t, store, Options{})

	client := sentence.NewHTTPClient(ts.URL, sentence.WithRateLimit(0))
	_, err := client.FetchQuestion(context.Background())
	var te *sentence.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Equal(t, corpus.ErrEmpty.Error(), te.Message)
}

func TestRootAndHealth(t *testing.T) {
	store := openCorpus(t, corpus.Row{Sentence: "a"}, corpus.Row{Sentence: "b"})
	ts := newTestServer(t, store, Options{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["sentences"])
}

func TestHealth_Unavailable(t *testing.T) {
	ts := newTestServer(t, brokenCorpus{}, Options{Logger: logging.Silent()})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetSentence_StoreError(t *testing.T) {
	ts := newTestServer(t, brokenCorpus{}, Options{})

	resp, err := http.Get(ts.URL + "/get-sentence")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSubmitAnnotation(t *testing.T) {
	ts := newTestServer(t, openCorpus(t), Options{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOK     bool
	}{
		{"match", `{"user_selection":"Social","correct_label":"Social"}`, http.StatusOK, true},
		{"mismatch", `{"user_selection":"Social","correct_label":"Community"}`, http.StatusOK, false},
		{"case sensitive", `{"user_selection":"social","correct_label":"Social"}`, http.StatusOK, false},
		{"empty selection", `{"user_selection":"","correct_label":"Social"}`, http.StatusBadRequest, false},
		{"bad json", `{`, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/submit-annotation", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var body submitResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantOK, body.IsCorrect)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, openCorpus(t), Options{AllowedOrigins: "http://localhost:3000"})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/submit-annotation", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, openCorpus(t, corpus.Row{Sentence: "a"}), Options{RateLimit: 1})

	statuses := map[int]int{}
	for range 5 {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		resp.Body.Close()
		statuses[resp.StatusCode]++
	}
	assert.GreaterOrEqual(t, statuses[http.StatusTooManyRequests], 1)
	assert.GreaterOrEqual(t, statuses[http.StatusOK], 1)
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, openCorpus(t), Options{})

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not found", body["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, openCorpus(t), Options{})

	resp, err := http.Post(ts.URL+"/get-sentence", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "method not allowed", body["error"])
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, BannerInfo{Version: "1.2.3", Addr: "127.0.0.1:5000", Database: "/tmp/c.db", Sentences: 42}, logging.Silent())

	out := buf.String()
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "http://127.0.0.1:5000")
	assert.Contains(t, out, "42")
}
