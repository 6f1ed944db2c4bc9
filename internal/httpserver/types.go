package httpserver

import (
	"context"
	"encoding/json"

	"go-rpc-cache/internal/cacheable"
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/models"
)

// RPCService is a service type served over the admin socket
type RPCService interface {
	ServiceID() string
	Integration() *cacheable.Integration
	DecodeRequest(method string, params json.RawMessage) (interfaces.Request, error)
	Invoke(ctx context.Context, method string, req interfaces.Request) ([]byte, error)
}

// PoliciesResponse lists the configured cache policies
type PoliciesResponse struct {
	Success  bool                `json:"success"`
	Policies []models.PolicyInfo `json:"policies"`
}

// KeyResponse describes how a request would be cached
type KeyResponse struct {
	Success    bool   `json:"success"`
	Service    string `json:"service"`
	Method     string `json:"method"`
	Configured bool   `json:"configured"`
	Cacheable  bool   `json:"cacheable"`
	Key        string `json:"key,omitempty"`
	TTL        int    `json:"ttl,omitempty"`
}

// RPCResponse wraps the result of an invoked method
type RPCResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}
