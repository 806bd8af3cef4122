package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/cache/service"
	"go-reactpad-cache/internal/hooks"
	"go-reactpad-cache/internal/session"
	"go-reactpad-cache/internal/store"
	"go-reactpad-cache/internal/txaction"
)

// Server exposes the cache store, read hooks and write actions over HTTP
type Server struct {
	store        *store.Store
	hooks        *hooks.Hooks
	session      *session.Watcher
	cacheService *service.CacheService
	builder      *txaction.Builder
	actions      *txaction.Manager
	logger       *zap.Logger
	server       *http.Server
}

// NewServer creates the daemon HTTP server. cacheService, builder and
// actions may be nil, which leaves their routes unregistered.
func NewServer(
	st *store.Store,
	hk *hooks.Hooks,
	watcher *session.Watcher,
	cacheService *service.CacheService,
	builder *txaction.Builder,
	actions *txaction.Manager,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:        st,
		hooks:        hk,
		session:      watcher,
		cacheService: cacheService,
		builder:      builder,
		actions:      actions,
		logger:       logger,
	}
}

// StartUnixSocket starts the HTTP server on a Unix socket
func (s *Server) StartUnixSocket(socketPath string) error {
	// Remove existing socket file
	if err := os.RemoveAll(socketPath); err != nil {
		s.logger.Warn("Failed to remove existing socket file", zap.String("path", socketPath), zap.Error(err))
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return err
	}

	// Owner and group only
	if err := os.Chmod(socketPath, 0660); err != nil {
		s.logger.Warn("Failed to set socket permissions", zap.String("path", socketPath), zap.Error(err))
	}

	s.server = &http.Server{
		Handler:      s.createRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting cache HTTP server on Unix socket", zap.String("socket_path", socketPath))
	return s.server.Serve(listener)
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping cache HTTP server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Read hooks
	router.HandleFunc("/cache/users/{address}/tokens", s.handleUserTokens).Methods("GET")
	router.HandleFunc("/cache/users/{address}/locks", s.handleUserLocks).Methods("GET")
	router.HandleFunc("/cache/users/{address}/locks/{lockId}", s.handleUserLock).Methods("GET")
	router.HandleFunc("/cache/markets", s.handleMarkets).Methods("GET")
	router.HandleFunc("/cache/presales", s.handlePresaleAddresses).Methods("GET")
	router.HandleFunc("/presales/{address}", s.handlePresale).Methods("GET")
	router.HandleFunc("/presales/{address}/accounts/{account}", s.handleParticipation).Methods("GET")

	// Store maintenance
	router.HandleFunc("/cache/users/{address}/refetch", s.handleRefetchUser).Methods("POST")
	router.HandleFunc("/cache/users/{address}", s.handleClearUser).Methods("DELETE")
	router.HandleFunc("/cache/users/{address}/locks/{lockId}", s.handleInvalidateLock).Methods("DELETE")
	router.HandleFunc("/cache/clear", s.handleClear).Methods("POST")

	// Session
	router.HandleFunc("/session", s.handleSession).Methods("GET")
	router.HandleFunc("/session/account", s.handleSetAccount).Methods("POST")

	if s.cacheService != nil {
		router.HandleFunc("/cache/info", s.handleCallInfo).Methods("POST")
	}

	if s.builder != nil && s.actions != nil {
		router.HandleFunc("/actions/{id:[0-9]+}", s.handleGetAction).Methods("GET")
		router.HandleFunc("/actions/{id:[0-9]+}", s.handleForgetAction).Methods("DELETE")
		router.HandleFunc("/actions/{action}", s.handleSubmitAction).Methods("POST")
	}

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"chain_id": s.session.ChainID(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	s.writeStatus(w, http.StatusOK, v)
}

func (s *Server) writeStatus(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeStatus(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
