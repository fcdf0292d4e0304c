// Package server exposes the SVG check over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kpango/glg"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	issvg "github.com/gucio321/issvg/pkg"
)

// Result is the JSON body returned by POST /v1/check.
type Result struct {
	SVG        bool   `json:"svg"`
	Compressed bool   `json:"compressed"`
	Reason     string `json:"reason,omitempty"`
}

// Server routes check requests to a Classifier.
type Server struct {
	classifier *issvg.Classifier
	maxSize    int64
	stringOnly bool
	debug      bool
	router     *mux.Router
}

// debugf logs rejection details when Debug is set.
var debugf = glg.Debugf

// New creates a Server. maxSize bounds request bodies (0 = unlimited).
func New(classifier *issvg.Classifier, maxSize int64) *Server {
	s := &Server{
		classifier: classifier,
		maxSize:    maxSize,
		router:     mux.NewRouter(),
	}

	s.routes()

	return s
}

// StringOnly makes the server reject gzip-compressed uploads.
func (s *Server) StringOnly() *Server {
	s.stringOnly = true
	return s
}

// Debug makes the server log why each rejected upload failed.
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/v1/check", s.handleCheck).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe serves on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	glg.Infof("listening on %s", addr)

	return srv.ListenAndServe()
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if s.maxSize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxSize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			checksTotal.WithLabelValues(verdictTooLarge).Inc()
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)

			return
		}

		glg.Warnf("cannot read request body: %v", err)
		http.Error(w, "cannot read request body", http.StatusBadRequest)

		return
	}

	checkBytes.Observe(float64(len(data)))

	start := time.Now()
	result := s.check(data)
	checkDuration.Observe(time.Since(start).Seconds())

	verdict := verdictNotSVG
	if result.SVG {
		verdict = verdictSVG
	} else if s.debug {
		debugf("rejected %d bytes from %s: %s", len(data), r.RemoteAddr, result.Reason)
	}

	checksTotal.WithLabelValues(verdict).Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		glg.Errorf("cannot write response: %v", err)
	}
}

func (s *Server) check(data []byte) Result {
	doc, err := s.classifier.Check(data)
	if err != nil {
		return Result{Reason: err.Error()}
	}

	if s.stringOnly && doc.Compressed {
		return Result{Compressed: true, Reason: issvg.ErrSVGZDisabled.Error()}
	}

	return Result{SVG: true, Compressed: doc.Compressed}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
