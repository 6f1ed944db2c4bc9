package users

import (
	"go-rpc-cache/internal/interfaces"
)

var findFields = []string{"id", "name", "refresh"}

// Ensure FindRequest implements the request capability contract
var (
	_ interfaces.Request       = (*FindRequest)(nil)
	_ interfaces.FieldDeclarer = (*FindRequest)(nil)
)

// FindRequest is the request message of UserService.find.
// Unset optional fields are nil.
type FindRequest struct {
	ID      *int64  `json:"id,omitempty"`
	Name    *string `json:"name,omitempty"`
	Refresh *bool   `json:"refresh,omitempty"`
}

// DeclaredFields returns the message schema
func (r *FindRequest) DeclaredFields() []string {
	return append([]string(nil), findFields...)
}

// HasField reports whether name is set on the message
func (r *FindRequest) HasField(name string) bool {
	if r == nil {
		return false
	}
	switch name {
	case "id":
		return r.ID != nil
	case "name":
		return r.Name != nil
	case "refresh":
		return r.Refresh != nil
	}
	return false
}

// HasAndPresent reports whether name is set to a non-empty value
func (r *FindRequest) HasAndPresent(name string) bool {
	if !r.HasField(name) {
		return false
	}
	if name == "name" {
		return *r.Name != ""
	}
	return true
}

// ValueOf returns the value of name, or nil when unset
func (r *FindRequest) ValueOf(name string) any {
	if !r.HasField(name) {
		return nil
	}
	switch name {
	case "id":
		return *r.ID
	case "name":
		return *r.Name
	case "refresh":
		return *r.Refresh
	}
	return nil
}

// FindResponse is the response message of UserService.find
type FindResponse struct {
	Users []User `json:"users"`
}
