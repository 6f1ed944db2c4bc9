package cache_rules

import (
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/policy"
)

// MethodRule is the declarative cache policy of one method
type MethodRule struct {
	On      []string `yaml:"on" validate:"dive,required"`
	TTL     int      `yaml:"ttl" validate:"gte=0,lte=9223372036"`
	Require []string `yaml:"require" validate:"dive,required"`
	If      string   `yaml:"if"`
	Unless  string   `yaml:"unless"`
	Digest  bool     `yaml:"digest"`
}

// PolicyRules holds method rules keyed by service and then by method
type PolicyRules struct {
	Services map[string]map[string]MethodRule `yaml:"services" validate:"required,min=1,dive,min=1,dive"`
}

// Predicates maps the predicate names usable in if/unless to their implementations
type Predicates map[string]policy.Predicate

// Binding is what a service type exposes to the rules file: the registry receiving the
// declarations, the request schema of each method and the named predicates.
type Binding struct {
	Registry   *policy.Registry
	Schemas    map[string]interfaces.FieldDeclarer
	Predicates Predicates
}
