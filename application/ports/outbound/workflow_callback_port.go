package outbound

import "context"

// WorkflowCallbackPort resumes a suspended workflow step through its
// continuation handle. This core never starts or stops executions itself.
type WorkflowCallbackPort interface {
	ReportSuccess(ctx context.Context, continuationHandle string, result interface{}) error
	ReportFailure(ctx context.Context, continuationHandle string, errorCode string, message string) error
}
