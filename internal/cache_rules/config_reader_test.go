package cache_rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestLoadPolicyRules_Success(t *testing.T) {
	logger := zaptest.NewLogger(t)

	validYAML := `
services:
  UserService:
    find:
      on: [id, name]
      ttl: 300
      require: [token]
      unless: refresh_requested
    lookup:
      on: [email]
      digest: true
  OrderService:
    list:
      on: [customer_id]
`

	rules, err := LoadPolicyRules(createTempYAMLFile(t, validYAML), logger)

	require.NoError(t, err)
	require.NotNil(t, rules)
	assert.Len(t, rules.Services, 2)
	assert.Equal(t, 3, rules.MethodCount())

	find := rules.Services["UserService"]["find"]
	assert.Equal(t, []string{"id", "name"}, find.On)
	assert.Equal(t, 300, find.TTL)
	assert.Equal(t, []string{"token"}, find.Require)
	assert.Equal(t, "refresh_requested", find.Unless)
	assert.Empty(t, find.If)
	assert.False(t, find.Digest)

	lookup := rules.Services["UserService"]["lookup"]
	assert.Zero(t, lookup.TTL)
	assert.True(t, lookup.Digest)
}

func TestLoadPolicyRules_FileNotFound(t *testing.T) {
	rules, err := LoadPolicyRules("/nonexistent/file.yaml", zaptest.NewLogger(t))

	assert.Error(t, err)
	assert.Nil(t, rules)
	assert.Contains(t, err.Error(), "failed to open cache rules file")
}

func TestLoadPolicyRules_InvalidYAML(t *testing.T) {
	invalidYAML := `
services:
  UserService:
    find:
      on: [id
  - invalid_yaml_structure
`

	rules, err := LoadPolicyRules(createTempYAMLFile(t, invalidYAML), zaptest.NewLogger(t))

	assert.Error(t, err)
	assert.Nil(t, rules)
	assert.Contains(t, err.Error(), "failed to decode YAML cache rules")
}

func TestLoadPolicyRules_UnknownOptionRejected(t *testing.T) {
	typoYAML := `
services:
  UserService:
    find:
      on: [id]
      tll: 300
`

	rules, err := LoadPolicyRules(createTempYAMLFile(t, typoYAML), zaptest.NewLogger(t))

	assert.Error(t, err)
	assert.Nil(t, rules)
	assert.Contains(t, err.Error(), "tll")
}

func TestLoadPolicyRules_ValidationFailure(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{
			name: "missing services section",
			yaml: "services: {}\n",
		},
		{
			name: "service without methods",
			yaml: "services:\n  UserService: {}\n",
		},
		{
			name: "negative ttl",
			yaml: "services:\n  UserService:\n    find:\n      on: [id]\n      ttl: -5\n",
		},
		{
			name: "ttl overflowing duration",
			yaml: "services:\n  UserService:\n    find:\n      on: [id]\n      ttl: 10000000000\n",
		},
		{
			name: "empty key field name",
			yaml: "services:\n  UserService:\n    find:\n      on: [id, \"\"]\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := LoadPolicyRules(createTempYAMLFile(t, tc.yaml), zaptest.NewLogger(t))

			assert.Error(t, err)
			assert.Nil(t, rules)
			assert.Contains(t, err.Error(), "cache rules validation failed")
		})
	}
}

func createTempYAMLFile(t *testing.T, content string) string {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test_cache_rules.yaml")

	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	return tmpFile
}

func BenchmarkLoadPolicyRules(b *testing.B) {
	logger := zap.NewNop()

	tmpFile := filepath.Join(b.TempDir(), "bench_cache_rules.yaml")
	content := "services:\n  UserService:\n    find:\n      on: [id, name]\n      ttl: 300\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadPolicyRules(tmpFile, logger); err != nil {
			b.Fatal(err)
		}
	}
}
