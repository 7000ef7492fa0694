package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/trie"
)

// Server exposes one trie over HTTP. Requests are serialized on mu since
// the trie itself is not safe for concurrent use.
type Server struct {
	mu     sync.Mutex
	trie   *trie.Trie
	logger zerolog.Logger
	server *http.Server
}

// WordsRequest is the body of POST /words
type WordsRequest struct {
	Words []string `json:"words"`
}

// WordsResponse lists the words held by the trie
type WordsResponse struct {
	Words []string `json:"words"`
	Count int      `json:"count"`
}

// AddResponse reports the outcome of POST /words
type AddResponse struct {
	Added      int    `json:"added"`
	Count      int    `json:"count"`
	Generation uint64 `json:"generation"`
}

// TreeResponse carries the preorder encoding of the trie
type TreeResponse struct {
	Encoding   string `json:"encoding"`
	Nodes      int    `json:"nodes"`
	Generation uint64 `json:"generation"`
}

// DuplicateResponse describes the largest shared subtree. Size is 0 when
// no subtree repeats.
type DuplicateResponse struct {
	Size     int    `json:"size"`
	Encoding string `json:"encoding,omitempty"`
}

// NewServer creates a new API server around t
func NewServer(addr string, t *trie.Trie, logger zerolog.Logger) *Server {
	s := &Server{
		trie:   t,
		logger: logger,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/words", s.listWords).Methods("GET")
	r.HandleFunc("/words", s.addWords).Methods("POST")
	r.HandleFunc("/words", s.resetWords).Methods("DELETE")
	r.HandleFunc("/words/{word}", s.getWord).Methods("GET")
	r.HandleFunc("/tree", s.getTree).Methods("GET")
	r.HandleFunc("/duplicate", s.getDuplicate).Methods("GET")

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves HTTP until the server is shut down
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down server")
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listWords(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	words := s.trie.AllWords()
	s.mu.Unlock()

	s.respond(w, http.StatusOK, WordsResponse{Words: words, Count: len(words)})
}

func (s *Server) addWords(w http.ResponseWriter, r *http.Request) {
	var req WordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	// Reject the whole batch before touching the trie.
	for _, word := range req.Words {
		if err := trie.Validate(word); err != nil {
			s.respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	s.mu.Lock()
	added := 0
	for _, word := range req.Words {
		before := s.trie.Generation()
		if err := s.trie.Add(word); err != nil {
			s.mu.Unlock()
			s.respondError(w, http.StatusInternalServerError, err)
			return
		}
		if s.trie.Generation() != before {
			added++
		}
	}
	resp := AddResponse{
		Added:      added,
		Count:      s.trie.Len(),
		Generation: s.trie.Generation(),
	}
	s.mu.Unlock()

	s.logger.Info().Int("added", added).Int("words", resp.Count).Msg("words added")
	s.respond(w, http.StatusOK, resp)
}

func (s *Server) resetWords(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.trie.Reset()
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if err := trie.Validate(word); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	found := s.trie.Contains(word)
	s.mu.Unlock()

	if !found {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("word %q not found", word))
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"word": word})
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := TreeResponse{
		Encoding:   s.trie.String(),
		Nodes:      s.trie.ComputeSizes(),
		Generation: s.trie.Generation(),
	}
	s.mu.Unlock()

	s.respond(w, http.StatusOK, resp)
}

func (s *Server) getDuplicate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.trie.ComputeSizes()
	node, err := s.trie.LargestSharedSubtree()
	var resp DuplicateResponse
	if node != nil {
		resp = DuplicateResponse{Size: node.Size(), Encoding: node.String()}
	}
	s.mu.Unlock()

	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}
