package cache

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const (
	keyRoot      = "rpc"
	keySeparator = "."
)

// KeyBuilder builds keys of the form rpc.<service>.<method>.<field>:<value>...
type KeyBuilder struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

// Prefix returns rpc.<serviceID>.<methodKey>
func (kb *KeyBuilder) Prefix(serviceID, methodKey string) string {
	return strings.Join([]string{keyRoot, serviceID, methodKey}, keySeparator)
}

// Fragment formats a single key field. A nil value formats as an empty string.
func (kb *KeyBuilder) Fragment(field string, value any) string {
	return field + ":" + formatValue(value)
}

// Build joins prefix and fragments with the key separator
func (kb *KeyBuilder) Build(prefix string, fragments []string) string {
	if len(fragments) == 0 {
		return prefix
	}
	return prefix + keySeparator + strings.Join(fragments, keySeparator)
}

// Digest replaces the fragments with the MD5 of their joined form, keeping keys short
// for methods keyed on large fields
func (kb *KeyBuilder) Digest(prefix string, fragments []string) string {
	if len(fragments) == 0 {
		return prefix
	}
	hasher := md5.New()
	hasher.Write([]byte(strings.Join(fragments, keySeparator)))
	return fmt.Sprintf("%s%s%x", prefix, keySeparator, hasher.Sum(nil))
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
