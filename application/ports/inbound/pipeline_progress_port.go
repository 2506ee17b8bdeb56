package inbound

import (
	"context"

	"highlight-reel-pipeline/domain"
)

// PipelineProgressPort reconstructs a point-in-time view of one execution.
// Pull-based; polling cadence is the caller's decision.
type PipelineProgressPort interface {
	Snapshot(ctx context.Context, executionID string) (domain.PipelineStatus, error)
}
