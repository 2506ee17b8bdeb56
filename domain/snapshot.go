package domain

import "time"

type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepRunning  StepStatus = "running"
	StepComplete StepStatus = "complete"
	StepError    StepStatus = "error"
)

type MapProgress struct {
	Total      int
	Succeeded  int
	InProgress int
	Queued     int
	Failed     int
}

// StepSnapshot is derived fresh from the event log on every status query and
// never persisted.
type StepSnapshot struct {
	ID       string
	Name     string
	Status   StepStatus
	Progress int
	Detail   string
	Map      *MapProgress
}

type OverallStatus string

const (
	PipelineRunning  OverallStatus = "running"
	PipelineComplete OverallStatus = "complete"
	PipelineFailed   OverallStatus = "error"
)

type PipelineStatus struct {
	ExecutionID    string
	Status         OverallStatus
	Steps          []StepSnapshot
	OutputLocation string
	Error          string
	StartedAt      *time.Time
	StoppedAt      *time.Time
}
