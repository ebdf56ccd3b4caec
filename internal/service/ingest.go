package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vanshika/recipenet/internal/domain"
)

// CategoryWriter persists one category at a listing position.
type CategoryWriter interface {
	UpsertCategory(ctx context.Context, c domain.Category, position int) error
}

// TaskError accumulates the per-category failures of a bulk ingest.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d categories failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkIngestor writes many categories concurrently using a fixed worker pool.
type BulkIngestor struct {
	writer  CategoryWriter
	workers int
}

// NewBulkIngestor creates a BulkIngestor with the given concurrency; non-positive
// values fall back to four workers.
func NewBulkIngestor(writer CategoryWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		writer:  writer,
		workers: workers,
	}
}

// IngestCategories upserts every category, using its slice index as the listing
// position. Failures of individual categories are collected into a *TaskError.
func (bi *BulkIngestor) IngestCategories(ctx context.Context, categories []domain.Category) error {
	return bi.run(ctx, len(categories), func(idx int) error {
		c := categories[idx]
		if err := bi.writer.UpsertCategory(ctx, c, idx); err != nil {
			return fmt.Errorf("category %s: %w", c.Key.Label(), err)
		}
		return nil
	})
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				if err := workerFn(idx); err != nil {
					errCh <- err
				}
			}
		}()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
