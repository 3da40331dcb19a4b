package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/abhisek/tacit/internal/corpus"
)

type sentenceResponse struct {
	Sentence      string   `json:"sentence"`
	CorrectLabels []string `json:"correct_labels"`
}

type submitRequest struct {
	UserSelection string `json:"user_selection"`
	CorrectLabel  string `json:"correct_label"`
}

type submitResponse struct {
	IsCorrect bool `json:"is_correct"`
}

// handleRoot answers the wake-up ping.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "tacit"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.corpus.Count(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		writeError(w, http.StatusServiceUnavailable, "corpus unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sentences": n})
}

// handleGetSentence returns one random sentence with its answer key.
func (s *Server) handleGetSentence(w http.ResponseWriter, r *http.Request) {
	row, err := s.corpus.Random(r.Context())
	if err != nil {
		if !errors.Is(err, corpus.ErrEmpty) {
			s.logger.Error().Err(err).Msg("random sentence failed")
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	labels := row.Labels
	if labels == nil {
		labels = []string{}
	}
	writeJSON(w, http.StatusOK, sentenceResponse{
		Sentence:      row.Sentence,
		CorrectLabels: labels,
	})
}

// handleSubmitAnnotation grades a single-label answer for older clients.
func (s *Server) handleSubmitAnnotation(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserSelection) == "" {
		writeError(w, http.StatusBadRequest, "user_selection is required")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		IsCorrect: strings.TrimSpace(req.UserSelection) == strings.TrimSpace(req.CorrectLabel),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
