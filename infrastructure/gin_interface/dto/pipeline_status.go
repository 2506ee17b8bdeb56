package dto

import (
	"time"

	"highlight-reel-pipeline/domain"
)

type MapProgressResponse struct {
	Total      int `json:"total"`
	Succeeded  int `json:"succeeded"`
	InProgress int `json:"inProgress"`
	Queued     int `json:"queued"`
	Failed     int `json:"failed"`
}

type StepResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Status      string               `json:"status"`
	Progress    int                  `json:"progress,omitempty"`
	Detail      string               `json:"detail,omitempty"`
	MapProgress *MapProgressResponse `json:"mapProgress,omitempty"`
}

type PipelineStatusResponse struct {
	ExecutionID string         `json:"executionId"`
	Status      string         `json:"status"`
	Steps       []StepResponse `json:"steps"`
	OutputPath  string         `json:"outputPath,omitempty"`
	Error       string         `json:"error,omitempty"`
	StartDate   *time.Time     `json:"startDate,omitempty"`
	StopDate    *time.Time     `json:"stopDate,omitempty"`
}

func NewPipelineStatusResponse(status domain.PipelineStatus) PipelineStatusResponse {
	steps := make([]StepResponse, 0, len(status.Steps))
	for _, step := range status.Steps {
		stepResponse := StepResponse{
			ID:       step.ID,
			Name:     step.Name,
			Status:   string(step.Status),
			Progress: step.Progress,
			Detail:   step.Detail,
		}
		if step.Map != nil {
			stepResponse.MapProgress = &MapProgressResponse{
				Total:      step.Map.Total,
				Succeeded:  step.Map.Succeeded,
				InProgress: step.Map.InProgress,
				Queued:     step.Map.Queued,
				Failed:     step.Map.Failed,
			}
		}
		steps = append(steps, stepResponse)
	}

	return PipelineStatusResponse{
		ExecutionID: status.ExecutionID,
		Status:      string(status.Status),
		Steps:       steps,
		OutputPath:  status.OutputLocation,
		Error:       status.Error,
		StartDate:   status.StartedAt,
		StopDate:    status.StoppedAt,
	}
}
