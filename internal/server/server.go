// Package server is the reference sentence service: it serves random
// annotated sentences from the corpus over the JSON API the quiz consumes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/abhisek/tacit/internal/corpus"
	"github.com/abhisek/tacit/internal/logging"
)

// Corpus is the read side of the sentence store.
type Corpus interface {
	Random(ctx context.Context) (corpus.Row, error)
	Count(ctx context.Context) (int, error)
}

// Options configures a Server.
type Options struct {
	Addr string

	// RateLimit caps requests per second across all clients. Zero disables.
	RateLimit int

	// AllowedOrigins is the Access-Control-Allow-Origin value. Empty means "*".
	AllowedOrigins string

	Logger *log.Logger
}

// Server wraps the HTTP server and the corpus it serves.
type Server struct {
	corpus Corpus
	logger *log.Logger
	server *http.Server
}

// New creates a Server. Call Start to listen.
func New(c Corpus, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Silent()
	}
	s := &Server{
		corpus: c,
		logger: logger,
	}

	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.routes(opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	r := mux.NewRouter()

	mws := []mux.MiddlewareFunc{
		recoveryMiddleware(s.logger),
		corsMiddleware(opts.AllowedOrigins),
		loggingMiddleware(s.logger),
	}
	if opts.RateLimit > 0 {
		mws = append(mws, rateLimitMiddleware(rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit)))
	}
	r.Use(mws...)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/get-sentence", s.handleGetSentence).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/submit-annotation", s.handleSubmitAnnotation).Methods(http.MethodPost, http.MethodOptions)

	// mux skips the Use chain for unmatched requests.
	r.NotFoundHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}), mws)
	r.MethodNotAllowedHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}), mws)
	return r
}

// chain wraps h so that mws[0] is outermost, matching Router.Use order.
func chain(h http.Handler, mws []mux.MiddlewareFunc) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens and serves (blocking). It returns http.ErrServerClosed after
// Shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting sentence service")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
