package outbound

import "context"

type ProcessResult struct {
	Stdout []byte
	Stderr []byte
}

// ProcessRunnerPort invokes an external binary. A non-zero exit is always an
// error carrying the captured stderr. Callers impose deadlines through ctx.
type ProcessRunnerPort interface {
	Run(ctx context.Context, name string, args ...string) (*ProcessResult, error)
}
