package server

import (
	"context"

	"github.com/vanshika/recipenet/internal/graph"
	"github.com/vanshika/recipenet/internal/service"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService verifies Neo4j connectivity.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}

// StoreHealthService checks that the category store can still list categories.
type StoreHealthService struct {
	Store service.CategoryStore
}

func (s StoreHealthService) Probe(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	_, err := s.Store.Categories(ctx)
	return err
}
