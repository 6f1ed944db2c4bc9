package cache_rules

import (
	"errors"
	"fmt"
	"sort"

	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/policy"
)

var (
	// ErrUnknownService is returned when rules name a service no binding was given for
	ErrUnknownService = errors.New("service is not bound")
	// ErrUnknownMethod is returned when rules name a method without a request schema
	ErrUnknownMethod = errors.New("method has no request schema")
	// ErrUnknownPredicate is returned when if/unless name an unregistered predicate
	ErrUnknownPredicate = errors.New("predicate is not registered")
)

type pending struct {
	registry *policy.Registry
	method   string
	schema   interfaces.FieldDeclarer
	opts     policy.Options
}

// Apply declares every rule on the registry of its service. Rules replace policies
// declared in code for the same method.
//
// All rules are resolved and validated before the first declaration, so a failing
// rules file leaves every registry untouched.
func (r *PolicyRules) Apply(bindings ...Binding) error {
	byService := make(map[string]Binding, len(bindings))
	for _, b := range bindings {
		byService[b.Registry.ServiceID()] = b
	}

	var resolved []pending
	for _, service := range sortedKeys(r.Services) {
		binding, ok := byService[service]
		if !ok {
			return &policy.ConfigurationError{Service: service, Err: ErrUnknownService}
		}

		methods := r.Services[service]
		for _, method := range sortedKeys(methods) {
			p, err := resolve(binding, service, method, methods[method])
			if err != nil {
				return err
			}
			resolved = append(resolved, p)
		}
	}

	for _, p := range resolved {
		if _, err := p.registry.Declare(p.method, p.schema, p.opts); err != nil {
			return err
		}
	}
	return nil
}

func resolve(binding Binding, service, method string, rule MethodRule) (pending, error) {
	schema, ok := binding.Schemas[method]
	if !ok {
		return pending{}, &policy.ConfigurationError{Service: service, Method: method, Err: ErrUnknownMethod}
	}

	admit, err := lookupPredicate(binding.Predicates, service, method, rule.If)
	if err != nil {
		return pending{}, err
	}
	deny, err := lookupPredicate(binding.Predicates, service, method, rule.Unless)
	if err != nil {
		return pending{}, err
	}

	opts := policy.Options{
		On:      rule.On,
		TTL:     rule.TTL,
		Require: rule.Require,
		If:      admit,
		Unless:  deny,
		Digest:  rule.Digest,
	}

	// surface field errors before anything is declared
	if _, err := policy.NewCachePolicy(service, method, schema, opts); err != nil {
		return pending{}, err
	}

	return pending{registry: binding.Registry, method: method, schema: schema, opts: opts}, nil
}

func lookupPredicate(predicates Predicates, service, method, name string) (policy.Predicate, error) {
	if name == "" {
		return nil, nil
	}
	p, ok := predicates[name]
	if !ok {
		return nil, &policy.ConfigurationError{Service: service, Method: method, Err: fmt.Errorf("%w: %q", ErrUnknownPredicate, name)}
	}
	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
