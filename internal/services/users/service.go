package users

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"go-rpc-cache/internal/cache_rules"
	"go-rpc-cache/internal/cacheable"
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/models"
	"go-rpc-cache/internal/policy"
	"go-rpc-cache/internal/utils"
)

const (
	// ServiceID identifies the service type in cache keys and rules files
	ServiceID = "UserService"
	// MethodFind looks users up by id or name
	MethodFind = "find"
)

// NewRegistry returns the cache policies of UserService as declared with the type:
// find is cached for five minutes, keyed on id and name.
func NewRegistry(logger *zap.Logger) *policy.Registry {
	r := policy.NewRegistry(ServiceID, logger)
	r.MustDeclare(MethodFind, &FindRequest{}, policy.Options{
		On:  []string{"id", "name"},
		TTL: 300,
	})
	return r
}

// Predicates returns the named predicates a rules file may use for UserService
func Predicates() cache_rules.Predicates {
	return cache_rules.Predicates{
		"refresh_requested": func(req interfaces.Request) bool {
			v, _ := req.ValueOf("refresh").(bool)
			return v
		},
		"by_id": func(req interfaces.Request) bool {
			return req.HasAndPresent("id")
		},
	}
}

// Schemas returns the request schema of every method
func Schemas() map[string]interfaces.FieldDeclarer {
	return map[string]interfaces.FieldDeclarer{
		MethodFind: &FindRequest{},
	}
}

// Service serves UserService against a Store
type Service struct {
	store  Store
	cache  *cacheable.Integration
	logger *zap.Logger
}

// NewService creates a service instance bound to registry and engine
func NewService(registry *policy.Registry, store Store, engine interfaces.CacheEngine, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cacheable.New(registry, engine, logger),
		logger: logger,
	}
}

// Binding exposes the service type to a rules file
func (s *Service) Binding() cache_rules.Binding {
	return cache_rules.Binding{
		Registry:   s.cache.Registry(),
		Schemas:    Schemas(),
		Predicates: Predicates(),
	}
}

// ServiceID returns the service type identifier
func (s *Service) ServiceID() string {
	return ServiceID
}

// Integration returns the cache integration of this instance
func (s *Service) Integration() *cacheable.Integration {
	return s.cache
}

// DecodeRequest decodes JSON params into the request message of method
func (s *Service) DecodeRequest(method string, params json.RawMessage) (interfaces.Request, error) {
	switch method {
	case MethodFind:
		req := &FindRequest{}
		if err := utils.DecodeParams(params, req); err != nil {
			return nil, err
		}
		return req, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", models.ErrUnknownMethod, ServiceID, method)
}

// Invoke runs method and returns its JSON encoded response
func (s *Service) Invoke(ctx context.Context, method string, req interfaces.Request) ([]byte, error) {
	switch method {
	case MethodFind:
		findReq, ok := req.(*FindRequest)
		if !ok {
			return nil, fmt.Errorf("unexpected request type %T for %s.%s", req, ServiceID, method)
		}
		return s.findRaw(ctx, findReq)
	}
	return nil, fmt.Errorf("%w: %s.%s", models.ErrUnknownMethod, ServiceID, method)
}

// Find returns users matching req: by id when set, else by name when set, else all users
func (s *Service) Find(ctx context.Context, req *FindRequest) (*FindResponse, error) {
	data, err := s.findRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	var resp FindResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode find response: %w", err)
	}
	return &resp, nil
}

func (s *Service) findRaw(ctx context.Context, req *FindRequest) ([]byte, error) {
	return s.cache.ReadthroughOrCompute(ctx, MethodFind, req, func(ctx context.Context) ([]byte, error) {
		users, err := s.find(ctx, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(FindResponse{Users: users})
	})
}

func (s *Service) find(ctx context.Context, req *FindRequest) ([]User, error) {
	switch {
	case req.HasField("id"):
		u, ok, err := s.store.FindByID(ctx, *req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user %d: %w", *req.ID, err)
		}
		if !ok {
			return []User{}, nil
		}
		return []User{u}, nil
	case req.HasAndPresent("name"):
		users, err := s.store.FindByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to find users named %q: %w", *req.Name, err)
		}
		return users, nil
	default:
		return s.store.All(ctx)
	}
}
