package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilder_Prefix(t *testing.T) {
	kb := NewKeyBuilder()

	assert.Equal(t, "rpc.UserService.find", kb.Prefix("UserService", "find"))
	assert.Equal(t, "rpc..find", kb.Prefix("", "find"))
}

func TestKeyBuilder_Fragment(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{name: "int", field: "id", value: 123, want: "id:123"},
		{name: "int64", field: "id", value: int64(-7), want: "id:-7"},
		{name: "string", field: "name", value: "jeff", want: "name:jeff"},
		{name: "empty string", field: "name", value: "", want: "name:"},
		{name: "nil", field: "name", value: nil, want: "name:"},
		{name: "bytes", field: "raw", value: []byte("abc"), want: "raw:abc"},
		{name: "bool", field: "flag", value: true, want: "flag:true"},
		{name: "stringer", field: "ttl", value: 2 * time.Second, want: "ttl:2s"},
		{name: "slice", field: "ids", value: []int{1, 2}, want: "ids:[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kb.Fragment(tt.field, tt.value))
		})
	}
}

func TestKeyBuilder_Build(t *testing.T) {
	kb := NewKeyBuilder()
	prefix := kb.Prefix("UserService", "find")

	tests := []struct {
		name      string
		fragments []string
		wantKey   string
	}{
		{
			name:      "no fragments",
			fragments: nil,
			wantKey:   "rpc.UserService.find",
		},
		{
			name:      "single fragment",
			fragments: []string{"id:123"},
			wantKey:   "rpc.UserService.find.id:123",
		},
		{
			name:      "ordered fragments",
			fragments: []string{"id:123", "name:jeff"},
			wantKey:   "rpc.UserService.find.id:123.name:jeff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, kb.Build(prefix, tt.fragments))
		})
	}
}

func TestKeyBuilder_Digest(t *testing.T) {
	kb := NewKeyBuilder()
	prefix := kb.Prefix("UserService", "find")

	first := kb.Digest(prefix, []string{"id:123", "name:jeff"})
	second := kb.Digest(prefix, []string{"id:123", "name:jeff"})
	other := kb.Digest(prefix, []string{"id:124", "name:jeff"})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, len(prefix)+1+32)
	assert.Equal(t, prefix, kb.Digest(prefix, nil))
}
