package services

import (
	"context"
	"encoding/json"
	"fmt"

	"highlight-reel-pipeline/application/ports/inbound"
	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
)

// The human-facing pipeline, in display order. Engine states map onto these
// many-to-one and one-to-many: two engine states both feed the embed step,
// while the single selection state fans out to filter and select.
var pipelineSteps = []domain.StepSnapshot{
	{ID: "retrieve", Name: "Generate video embeddings"},
	{ID: "annotate", Name: "Analyze scenes"},
	{ID: "filter", Name: "Filter candidates"},
	{ID: "select", Name: "Select highlight segments"},
	{ID: "voiceover", Name: "Write voiceover scripts"},
	{ID: "audio", Name: "Synthesize narration audio"},
	{ID: "render", Name: "Render highlight reel"},
}

var stateToSteps = map[string][]string{
	"GenerateEmbeddings":   {"retrieve"},
	"StoreEmbeddings":      {"retrieve"},
	"AnalyzeSegmentsMap":   {"annotate"},
	"SelectSegments":       {"filter", "select"},
	"GenerateVoiceoverMap": {"voiceover"},
	"SynthesizeAudio":      {"audio"},
	"RenderVideo":          {"render"},
}

var mapStateToStep = map[string]string{
	"AnalyzeSegmentsMap":   "annotate",
	"GenerateVoiceoverMap": "voiceover",
}

type mapStateProgress struct {
	total     int
	started   int
	succeeded int
	failed    int
}

// ReplayExecution reconstructs the current state of one execution from its
// complete, ordered event log plus the engine's terminal description. The log
// is a progress hint only; the terminal status wins over partial event
// coverage.
func ReplayExecution(events []domain.ExecutionEvent, description domain.ExecutionDescription) domain.PipelineStatus {
	steps := make([]domain.StepSnapshot, len(pipelineSteps))
	copy(steps, pipelineSteps)
	for i := range steps {
		steps[i].Status = domain.StepPending
	}

	completedStates := make(map[string]bool)
	currentState := ""

	for _, event := range events {
		switch event.Type {
		case domain.StateEntered, domain.MapEntered:
			currentState = event.StateName
		case domain.StateExited, domain.MapExited:
			completedStates[event.StateName] = true
		}
	}

	mapProgress := trackMapProgress(events)

	for stateName, stepIDs := range stateToSteps {
		switch {
		case completedStates[stateName]:
			for _, id := range stepIDs {
				setStepStatus(steps, id, domain.StepComplete)
			}
		case currentState == stateName:
			for _, id := range stepIDs {
				if stepByID(steps, id).Status == domain.StepPending {
					setStepStatus(steps, id, domain.StepRunning)
				}
			}
		}
	}

	for mapState, stepID := range mapStateToStep {
		progress, ok := mapProgress[mapState]
		if !ok || progress.total == 0 {
			continue
		}
		step := stepByID(steps, stepID)
		if step == nil {
			continue
		}

		inProgress := progress.started - progress.succeeded - progress.failed
		queued := progress.total - progress.started

		step.Map = &domain.MapProgress{
			Total:      progress.total,
			Succeeded:  progress.succeeded,
			InProgress: inProgress,
			Queued:     queued,
			Failed:     progress.failed,
		}
		step.Progress = progress.succeeded * 100 / progress.total

		if completedStates[mapState] {
			step.Status = domain.StepComplete
			step.Detail = fmt.Sprintf("%d/%d complete", progress.succeeded, progress.total)
		} else if progress.started > 0 {
			step.Status = domain.StepRunning
			step.Detail = fmt.Sprintf("%d done, %d running, %d queued", progress.succeeded, inProgress, queued)
			if progress.failed > 0 {
				step.Detail += fmt.Sprintf(", %d failed", progress.failed)
			}
		}
	}

	status := domain.PipelineStatus{
		ExecutionID: description.ExecutionID,
		Status:      domain.PipelineRunning,
		Steps:       steps,
		StartedAt:   description.StartedAt,
		StoppedAt:   description.StoppedAt,
	}

	switch description.Status {
	case domain.ExecutionSucceeded:
		status.Status = domain.PipelineComplete
		for i := range steps {
			steps[i].Status = domain.StepComplete
		}
		status.OutputLocation = decodeOutputLocation(description.Output)

	case domain.ExecutionFailed, domain.ExecutionAborted, domain.ExecutionTimedOut:
		status.Status = domain.PipelineFailed
		status.Error = description.Error
		if status.Error == "" {
			status.Error = description.Cause
		}
		if status.Error == "" {
			status.Error = "pipeline failed"
		}
		if stepIDs, ok := stateToSteps[currentState]; ok {
			for _, id := range stepIDs {
				setStepStatus(steps, id, domain.StepError)
			}
		}
	}

	return status
}

// trackMapProgress accumulates per-map iteration counters. Map entered/exited
// events nest with stack discipline, so counters always land on the innermost
// open map.
func trackMapProgress(events []domain.ExecutionEvent) map[string]*mapStateProgress {
	progress := make(map[string]*mapStateProgress)
	var stack []string

	innermost := func() *mapStateProgress {
		if len(stack) == 0 {
			return nil
		}
		return progress[stack[len(stack)-1]]
	}

	for _, event := range events {
		switch event.Type {
		case domain.MapEntered:
			if event.StateName == "" {
				continue
			}
			stack = append(stack, event.StateName)
			if _, ok := progress[event.StateName]; !ok {
				progress[event.StateName] = &mapStateProgress{}
			}
		case domain.MapStarted:
			if current := innermost(); current != nil {
				current.total = event.IterationCount
			}
		case domain.MapIterationStarted:
			if current := innermost(); current != nil {
				current.started++
			}
		case domain.MapIterationSucceeded:
			if current := innermost(); current != nil {
				current.succeeded++
			}
		case domain.MapIterationFailed:
			if current := innermost(); current != nil {
				current.failed++
			}
		case domain.MapExited:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return progress
}

func decodeOutputLocation(output string) string {
	if output == "" {
		return ""
	}
	var decoded struct {
		FinalVideoS3Uri string `json:"finalVideoS3Uri"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		return ""
	}
	return decoded.FinalVideoS3Uri
}

func stepByID(steps []domain.StepSnapshot, id string) *domain.StepSnapshot {
	for i := range steps {
		if steps[i].ID == id {
			return &steps[i]
		}
	}
	return nil
}

func setStepStatus(steps []domain.StepSnapshot, id string, status domain.StepStatus) {
	if step := stepByID(steps, id); step != nil {
		step.Status = status
	}
}

type pipelineProgress struct {
	history outbound.ExecutionHistoryPort
	logger  outbound.LoggerPort
}

func NewPipelineProgress(history outbound.ExecutionHistoryPort, logger outbound.LoggerPort) inbound.PipelineProgressPort {
	return &pipelineProgress{
		history: history,
		logger:  logger,
	}
}

func (p *pipelineProgress) Snapshot(ctx context.Context, executionID string) (domain.PipelineStatus, error) {
	description, err := p.history.Describe(ctx, executionID)
	if err != nil {
		p.logger.Error(err, "failed to describe execution")
		return domain.PipelineStatus{}, err
	}

	events, err := p.history.FetchEvents(ctx, executionID)
	if err != nil {
		p.logger.Error(err, "failed to fetch execution history")
		return domain.PipelineStatus{}, err
	}

	return ReplayExecution(events, description), nil
}
