// Package server provides the local HTTP service behind the registration-page userscript.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/template"
	"time"

	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/server/ratelimit"
	"golang.org/x/sync/semaphore"
)

//go:embed assets/userscript.js.tmpl
var userscriptSource string

var userscriptTemplate = template.Must(template.New("userscript").Parse(userscriptSource))

// DefaultMaxBodyBytes caps the size of an uploaded registration page.
const DefaultMaxBodyBytes = 16 << 20

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	table        *departments.Table
	rateLimiter  *ratelimit.Limiter
	slots        *semaphore.Weighted
	maxBodyBytes int64
	verbose      bool
}

// Config holds server configuration
type Config struct {
	Port          int
	Table         *departments.Table
	MaxConcurrent int64
	MaxBodyBytes  int64
	RateLimit     *ratelimit.Config
	Verbose       bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Table == nil {
		table, err := departments.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load department table: %w", err)
		}
		cfg.Table = table
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		table:        cfg.Table,
		rateLimiter:  ratelimit.NewLimiter(cfg.RateLimit),
		slots:        semaphore.NewWeighted(cfg.MaxConcurrent),
		maxBodyBytes: cfg.MaxBodyBytes,
		verbose:      cfg.Verbose,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /departments", s.handleDepartments)
	mux.HandleFunc("GET /userscript.js", s.handleUserscript)
	mux.HandleFunc("POST /export", s.handleExport)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS lets the userscript on the registration site call the local service.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Export-Session")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := int(info.RetryAfter.Round(time.Second).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
			log.Printf("[rate-limit] %s exceeded %d requests on %s", clientID(r), info.Limit, r.URL.Path)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDepartments returns the department table
func (s *Server) handleDepartments(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.table)
}

// handleUserscript serves the script that adds the export button to the registration page.
func (s *Server) handleUserscript(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	endpoint, _ := json.Marshal(fmt.Sprintf("%s://%s/export", scheme, r.Host))
	filename, _ := json.Marshal(exportFilename)

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	err := userscriptTemplate.Execute(w, map[string]string{
		"Endpoint": string(endpoint),
		"Filename": string(filename),
	})
	if err != nil {
		log.Printf("Error rendering userscript: %v", err)
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// clientID extracts the client identifier (IP address) from the request.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
