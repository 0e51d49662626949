// Package generatetest provides an in-process stand-in for the generate
// service so smoke runs can be exercised without a real model server.
package generatetest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const Path = "/generate"

// CapturedRequest is what the server saw for one POST /generate.
type CapturedRequest struct {
	Method      string
	ContentType string
	RequestID   string
	Body        []byte
}

type Option func(*Server)

// WithStatus sets the status code every request is answered with.
func WithStatus(code int) Option {
	return func(s *Server) { s.status = code }
}

// WithBody sets the raw response body.
func WithBody(body string) Option {
	return func(s *Server) { s.body = body }
}

// WithHang makes the handler accept the request and never answer until the
// server is closed.
func WithHang() Option {
	return func(s *Server) { s.hang = true }
}

type Server struct {
	srv    *httptest.Server
	status int
	body   string
	hang   bool
	done   chan struct{}

	mu       sync.Mutex
	requests []CapturedRequest
}

// NewServer starts a server that is closed when the test finishes.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		status: http.StatusOK,
		body:   "ok",
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := mux.NewRouter()
	router.HandleFunc(Path, s.handleGenerate).Methods(http.MethodPost)

	s.srv = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, CapturedRequest{
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        body,
	})
	s.mu.Unlock()

	if s.hang {
		select {
		case <-s.done:
		case <-r.Context().Done():
		}
		return
	}

	w.WriteHeader(s.status)
	_, _ = w.Write([]byte(s.body))
}

// URL is the full URL of the generate endpoint.
func (s *Server) URL() string {
	return s.srv.URL + Path
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapturedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Close releases hanging handlers and shuts the server down. Safe to call twice.
func (s *Server) Close() {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return
	default:
		close(s.done)
	}
	s.mu.Unlock()
	s.srv.Close()
}
