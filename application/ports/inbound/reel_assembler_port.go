package inbound

import (
	"context"

	"highlight-reel-pipeline/domain"
)

type ReelAssemblerPort interface {
	Assemble(ctx context.Context, job domain.AssemblyJob) (*domain.AssemblyResult, error)
}
