package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/vanshika/recipenet/internal/domain"
)

// Store is a read-only category provider backed by a dataset path.
type Store interface {
	Categories(ctx context.Context) ([]domain.CategoryKey, error)
	Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error)
	Reload(ctx context.Context) error
	Close() error
}

// Open returns the store matching path's extension. The dataset is read
// immediately so a missing or malformed file fails here.
func Open(ctx context.Context, path string) (Store, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSQLite {
		return OpenSQLite(path)
	}
	return OpenFile(ctx, path)
}

// FileStore serves categories from a JSON or YAML document held in memory.
type FileStore struct {
	path string

	mu         sync.RWMutex
	order      []domain.CategoryKey
	categories map[domain.CategoryKey]domain.Category
}

// OpenFile reads path and keeps its categories in memory.
func OpenFile(ctx context.Context, path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemoryStore serves the given categories without any backing file.
func NewMemoryStore(categories []domain.Category) *FileStore {
	s := &FileStore{}
	s.replace(categories)
	return s
}

// Reload re-reads the backing file. On error the previous contents stay in place.
func (s *FileStore) Reload(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	categories, err := ReadFile(s.path)
	if err != nil {
		return err
	}
	s.replace(categories)
	return nil
}

func (s *FileStore) replace(categories []domain.Category) {
	order := make([]domain.CategoryKey, 0, len(categories))
	byKey := make(map[domain.CategoryKey]domain.Category, len(categories))
	for _, c := range categories {
		order = append(order, c.Key)
		byKey[c.Key] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.categories = byKey
}

// Categories returns the keys in document order.
func (s *FileStore) Categories(context.Context) ([]domain.CategoryKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CategoryKey(nil), s.order...), nil
}

// Load returns the tables stored under key.
func (s *FileStore) Load(_ context.Context, key domain.CategoryKey) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[key]
	if !ok {
		return domain.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, key.Label())
	}
	return c, nil
}

// Path returns the backing file, empty for memory stores.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Close() error {
	return nil
}
