package cache_rules

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadPolicyRules reads method cache rules from a YAML file.
// Unknown keys are rejected so that a misspelled option fails loudly.
func LoadPolicyRules(rulesPath string, logger *zap.Logger) (*PolicyRules, error) {
	logger.Info("Loading cache policy rules", zap.String("path", rulesPath))

	file, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache rules file: %w", err)
	}
	defer file.Close()

	var rules PolicyRules
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to decode YAML cache rules: %w", err)
	}

	if err := validator.New().Struct(&rules); err != nil {
		return nil, fmt.Errorf("cache rules validation failed: %w", err)
	}

	logger.Info("Cache policy rules loaded",
		zap.Int("services", len(rules.Services)),
		zap.Int("methods", rules.MethodCount()))

	return &rules, nil
}

// MethodCount returns the number of method rules across all services
func (r *PolicyRules) MethodCount() int {
	n := 0
	for _, methods := range r.Services {
		n += len(methods)
	}
	return n
}
