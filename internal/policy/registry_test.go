package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))

	assert.Equal(t, "UserService", reg.ServiceID())
	assert.Empty(t, reg.ConfiguredMethods())
	assert.Empty(t, reg.Policies())
}

func TestNewRegistry_NilLogger(t *testing.T) {
	reg := NewRegistry("UserService", nil)

	_, err := reg.Declare("find", schema(findFields), Options{On: []string{"id"}})
	assert.NoError(t, err)
}

func TestRegistry_DeclareAndLookup(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))

	declared, err := reg.Declare("find", schema(findFields), Options{On: []string{"id", "name"}, TTL: 120})
	require.NoError(t, err)

	got, ok := reg.Lookup("find")
	require.True(t, ok)
	assert.Same(t, declared, got)
	assert.Equal(t, 120, got.TTLSeconds())
	assert.Equal(t, "rpc.UserService.find", got.KeyPrefix())

	_, ok = reg.Lookup("search")
	assert.False(t, ok)
	assert.True(t, reg.IsConfigured("find"))
	assert.False(t, reg.IsConfigured("search"))
}

func TestRegistry_DeclareTwiceLastWriteWins(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))

	_, err := reg.Declare("find", schema(findFields), Options{On: []string{"id"}, TTL: 10})
	require.NoError(t, err)
	second, err := reg.Declare("find", schema(findFields), Options{On: []string{"name"}, TTL: 20})
	require.NoError(t, err)

	got, ok := reg.Lookup("find")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, []string{"name"}, got.KeyFields())
	assert.Equal(t, []string{"find"}, reg.ConfiguredMethods())
}

func TestRegistry_DeclareInvalidIsNotStored(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))

	_, err := reg.Declare("find", schema(findFields), Options{On: []string{"email"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.False(t, reg.IsConfigured("find"))
}

func TestRegistry_DeclareInvalidKeepsPreviousPolicy(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))
	first := reg.MustDeclare("find", schema(findFields), Options{On: []string{"id"}})

	_, err := reg.Declare("find", schema(findFields), Options{TTL: -5})
	require.Error(t, err)

	got, _ := reg.Lookup("find")
	assert.Same(t, first, got)
}

func TestRegistry_MustDeclarePanics(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))

	assert.Panics(t, func() {
		reg.MustDeclare("find", schema(findFields), Options{On: []string{"email"}})
	})
}

func TestRegistry_ConfiguredMethodsSorted(t *testing.T) {
	reg := NewRegistry("UserService", zaptest.NewLogger(t))
	for _, m := range []string{"search", "find", "list"} {
		reg.MustDeclare(m, schema(findFields), Options{On: []string{"id"}})
	}

	assert.Equal(t, []string{"find", "list", "search"}, reg.ConfiguredMethods())

	policies := reg.Policies()
	require.Len(t, policies, 3)
	assert.Equal(t, "find", policies[0].MethodKey())
	assert.Equal(t, "search", policies[2].MethodKey())
}
