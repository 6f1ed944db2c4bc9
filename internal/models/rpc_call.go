package models

import (
	"encoding/json"
	"errors"
)

// ErrUnknownMethod is returned by services asked for a method they do not serve
var ErrUnknownMethod = errors.New("unknown method")

// RPCCall addresses one method of a service with its JSON encoded params
type RPCCall struct {
	Service string          `json:"service"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}
