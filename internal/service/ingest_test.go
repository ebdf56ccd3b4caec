package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/recipenet/internal/domain"
)

type recordingWriter struct {
	mu        sync.Mutex
	positions map[domain.CategoryKey]int
	failOn    domain.CategoryKey
}

func (w *recordingWriter) UpsertCategory(ctx context.Context, c domain.Category, position int) error {
	if c.Key == w.failOn {
		return errors.New("write rejected")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.positions == nil {
		w.positions = make(map[domain.CategoryKey]int)
	}
	w.positions[c.Key] = position
	return nil
}

func TestBulkIngestorWritesEveryCategory(t *testing.T) {
	writer := &recordingWriter{}
	categories := []domain.Category{{Key: soupKey}, {Key: stewKey}}

	err := NewBulkIngestor(writer, 2).IngestCategories(context.Background(), categories)
	require.NoError(t, err)
	assert.Equal(t, map[domain.CategoryKey]int{soupKey: 0, stewKey: 1}, writer.positions)
}

func TestBulkIngestorCollectsFailures(t *testing.T) {
	writer := &recordingWriter{failOn: stewKey}
	categories := []domain.Category{{Key: soupKey}, {Key: stewKey}}

	err := NewBulkIngestor(writer, 0).IngestCategories(context.Background(), categories)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	require.Len(t, taskErr.Errors, 1)
	assert.Contains(t, taskErr.Error(), "Stew (Korean)")
	assert.Contains(t, writer.positions, soupKey)
}

func TestBulkIngestorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewBulkIngestor(&recordingWriter{}, 1).IngestCategories(ctx, []domain.Category{{Key: soupKey}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBulkIngestorEmpty(t *testing.T) {
	assert.NoError(t, NewBulkIngestor(&recordingWriter{}, 1).IngestCategories(context.Background(), nil))
}
