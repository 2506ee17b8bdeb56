package domain

import "time"

type ExecutionEventType string

const (
	StateEntered          ExecutionEventType = "state-entered"
	StateExited           ExecutionEventType = "state-exited"
	MapEntered            ExecutionEventType = "map-entered"
	MapStarted            ExecutionEventType = "map-started"
	MapIterationStarted   ExecutionEventType = "map-iteration-started"
	MapIterationSucceeded ExecutionEventType = "map-iteration-succeeded"
	MapIterationFailed    ExecutionEventType = "map-iteration-failed"
	MapExited             ExecutionEventType = "map-exited"
)

// ExecutionEvent is one entry of the workflow engine's append-only history.
// IterationCount is only meaningful for MapStarted events, where it carries
// the declared number of parallel iterations.
type ExecutionEvent struct {
	Type           ExecutionEventType
	Timestamp      time.Time
	StateName      string
	IterationCount int
}

type ExecutionStatus string

const (
	ExecutionRunning   ExecutionStatus = "RUNNING"
	ExecutionSucceeded ExecutionStatus = "SUCCEEDED"
	ExecutionFailed    ExecutionStatus = "FAILED"
	ExecutionTimedOut  ExecutionStatus = "TIMED_OUT"
	ExecutionAborted   ExecutionStatus = "ABORTED"
)

type ExecutionDescription struct {
	ExecutionID string
	Status      ExecutionStatus
	Output      string
	Error       string
	Cause       string
	StartedAt   *time.Time
	StoppedAt   *time.Time
}
