package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go-rpc-cache/internal/models"
)

// ParseRPCCall parses a raw {"service","method","params"} body
func ParseRPCCall(rawBody string) (*models.RPCCall, error) {
	if rawBody == "" {
		return nil, fmt.Errorf("empty request body")
	}

	var call models.RPCCall
	if err := json.Unmarshal([]byte(rawBody), &call); err != nil {
		return nil, fmt.Errorf("failed to parse RPC call: %w", err)
	}

	if call.Service == "" {
		return nil, fmt.Errorf("missing service in RPC call")
	}
	if call.Method == "" {
		return nil, fmt.Errorf("missing method in RPC call")
	}

	return &call, nil
}

// DecodeParams decodes JSON params into v, rejecting fields v does not declare.
// Empty params leave v untouched.
func DecodeParams(params []byte, v any) error {
	params = bytes.TrimSpace(params)
	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(params))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode params: %w", err)
	}
	return nil
}
