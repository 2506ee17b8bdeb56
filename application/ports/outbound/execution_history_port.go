package outbound

import (
	"context"

	"highlight-reel-pipeline/domain"
)

// ExecutionHistoryPort exposes the workflow engine's append-only event log.
// FetchEvents must drain every page before returning so replay sees a
// complete, ordered list.
type ExecutionHistoryPort interface {
	FetchEvents(ctx context.Context, executionID string) ([]domain.ExecutionEvent, error)
	Describe(ctx context.Context, executionID string) (domain.ExecutionDescription, error)
}
