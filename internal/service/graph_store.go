package service

import (
	"context"

	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/repository"
)

// GraphRepository is the subset of the Neo4j repository the service reads from.
type GraphRepository interface {
	ListCategories(ctx context.Context) ([]domain.CategoryKey, error)
	LoadCategory(ctx context.Context, key domain.CategoryKey) (domain.Category, error)
}

// GraphStore adapts a GraphRepository to CategoryStore.
type GraphStore struct {
	repo GraphRepository
}

// NewGraphStore wraps repo.
func NewGraphStore(repo GraphRepository) *GraphStore {
	return &GraphStore{repo: repo}
}

func (s *GraphStore) Categories(ctx context.Context) ([]domain.CategoryKey, error) {
	return s.repo.ListCategories(ctx)
}

func (s *GraphStore) Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	return s.repo.LoadCategory(ctx, key)
}

var _ GraphRepository = (*repository.Repository)(nil)
