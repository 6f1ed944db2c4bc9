package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/models"
	"go-rpc-cache/internal/utils"
)

// Server represents the admin HTTP server
type Server struct {
	services map[string]RPCService
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a new admin HTTP server for services
func NewServer(logger *zap.Logger, services ...RPCService) *Server {
	byID := make(map[string]RPCService, len(services))
	for _, svc := range services {
		byID[svc.ServiceID()] = svc
	}
	return &Server{
		services: byID,
		logger:   logger,
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

	// readable/writable by owner and group
	if err := os.Chmod(socketPath, 0660); err != nil {
		s.logger.Warn("Failed to set socket permissions", zap.String("path", socketPath), zap.Error(err))
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
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

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/cache/policies", s.handlePolicies).Methods("GET")
	router.HandleFunc("/cache/key", s.handleCacheKey).Methods("POST")
	router.HandleFunc("/cache/key", s.handleInvalidate).Methods("DELETE")

	router.HandleFunc("/rpc/{service}/{method}", s.handleRPC).Methods("POST")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"services": len(s.services),
	})
}

// handlePolicies lists every configured policy ordered by service and method
func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(s.services))
	for id := range s.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	policies := make([]models.PolicyInfo, 0)
	for _, id := range ids {
		for _, p := range s.services[id].Integration().Registry().Policies() {
			policies = append(policies, p.Info())
		}
	}

	s.writeResponse(w, &PoliciesResponse{Success: true, Policies: policies})
}

// handleCacheKey reports the key and cacheability of a request without invoking it
func (s *Server) handleCacheKey(w http.ResponseWriter, r *http.Request) {
	svc, call, req, ok := s.resolveCall(w, r)
	if !ok {
		return
	}

	resp := &KeyResponse{Success: true, Service: call.Service, Method: call.Method}
	if p, ok := svc.Integration().Registry().Lookup(call.Method); ok {
		resp.Configured = true
		resp.Cacheable = p.Cacheable(req)
		resp.Key = p.Key(req)
		resp.TTL = p.TTLSeconds()
	}

	s.writeResponse(w, resp)
}

// handleInvalidate removes the stored response of a request
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	svc, call, req, ok := s.resolveCall(w, r)
	if !ok {
		return
	}

	key, configured, err := svc.Integration().Invalidate(r.Context(), call.Method, req)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusNotImplemented)
		return
	}
	if !configured {
		s.writeErrorResponse(w, "No cache policy for "+call.Service+"."+call.Method, http.StatusNotFound)
		return
	}

	s.writeResponse(w, &KeyResponse{
		Success:    true,
		Service:    call.Service,
		Method:     call.Method,
		Configured: true,
		Key:        key,
	})
}

// resolveCall parses a {"service","method","params"} body into the target service and
// its decoded request. On failure the error response is already written.
func (s *Server) resolveCall(w http.ResponseWriter, r *http.Request) (RPCService, *models.RPCCall, interfaces.Request, bool) {
	body, err := s.readBody(r)
	if err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return nil, nil, nil, false
	}

	call, err := utils.ParseRPCCall(string(body))
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return nil, nil, nil, false
	}

	svc, ok := s.services[call.Service]
	if !ok {
		s.writeErrorResponse(w, "Unknown service: "+call.Service, http.StatusNotFound)
		return nil, nil, nil, false
	}

	req, err := svc.DecodeRequest(call.Method, call.Params)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), statusFor(err))
		return nil, nil, nil, false
	}

	return svc, call, req, true
}

// handleRPC decodes the body as method params and invokes the method
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	svc, ok := s.services[vars["service"]]
	if !ok {
		s.writeErrorResponse(w, "Unknown service: "+vars["service"], http.StatusNotFound)
		return
	}

	body, err := s.readBody(r)
	if err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req, err := svc.DecodeRequest(vars["method"], body)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), statusFor(err))
		return
	}

	result, err := svc.Invoke(r.Context(), vars["method"], req)
	if err != nil {
		s.logger.Error("RPC invocation failed",
			zap.String("service", vars["service"]),
			zap.String("method", vars["method"]),
			zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrUnknownMethod) {
			status = http.StatusNotFound
		}
		s.writeErrorResponse(w, err.Error(), status)
		return
	}

	s.writeResponse(w, &RPCResponse{Success: true, Result: result})
}

func statusFor(err error) int {
	if errors.Is(err, models.ErrUnknownMethod) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// readBody reads the request body
func (s *Server) readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
