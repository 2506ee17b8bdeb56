package outbound

import (
	"context"

	"highlight-reel-pipeline/domain"
)

// TokenStorePort holds pending continuation records keyed by
// (outputLocation, jobKind) until the matching callback arrives.
type TokenStorePort interface {
	// Store inserts the record, overwriting any existing record for the same
	// key, and arms its expiry.
	Store(ctx context.Context, record domain.ContinuationRecord) error
	// Peek returns the record without consuming it. domain.ErrNotFound when
	// no live record exists.
	Peek(ctx context.Context, outputLocation string, kind domain.JobKind) (domain.ContinuationRecord, error)
	// Consume atomically reads and deletes the record. Under concurrent
	// callers for the same key exactly one observes the record; the rest get
	// domain.ErrNotFound.
	Consume(ctx context.Context, outputLocation string, kind domain.JobKind) (domain.ContinuationRecord, error)
}
