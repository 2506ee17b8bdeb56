package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sfn"

	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
)

type sfnExecutionHistory struct {
	sfnSvc *sfn.SFN
	logger outbound.LoggerPort
}

func NewSfnExecutionHistory(sfnSvc *sfn.SFN, logger outbound.LoggerPort) outbound.ExecutionHistoryPort {
	return &sfnExecutionHistory{
		sfnSvc: sfnSvc,
		logger: logger,
	}
}

// FetchEvents drains every history page before returning. Replay depends on a
// complete, ordered list; a partial fetch breaks map nesting discipline.
func (h *sfnExecutionHistory) FetchEvents(ctx context.Context, executionID string) ([]domain.ExecutionEvent, error) {
	var events []domain.ExecutionEvent

	input := &sfn.GetExecutionHistoryInput{
		ExecutionArn: aws.String(executionID),
		MaxResults:   aws.Int64(1000),
	}
	err := h.sfnSvc.GetExecutionHistoryPagesWithContext(ctx, input,
		func(page *sfn.GetExecutionHistoryOutput, lastPage bool) bool {
			for _, raw := range page.Events {
				if event, ok := translateHistoryEvent(raw); ok {
					events = append(events, event)
				}
			}
			return true
		})
	if err != nil {
		h.logger.Error(err, "failed to fetch execution history")
		return nil, fmt.Errorf("fetching execution history: %w", err)
	}

	return events, nil
}

func (h *sfnExecutionHistory) Describe(ctx context.Context, executionID string) (domain.ExecutionDescription, error) {
	out, err := h.sfnSvc.DescribeExecutionWithContext(ctx, &sfn.DescribeExecutionInput{
		ExecutionArn: aws.String(executionID),
	})
	if err != nil {
		h.logger.Error(err, "failed to describe execution")
		return domain.ExecutionDescription{}, fmt.Errorf("describing execution: %w", err)
	}

	return domain.ExecutionDescription{
		ExecutionID: aws.StringValue(out.ExecutionArn),
		Status:      domain.ExecutionStatus(aws.StringValue(out.Status)),
		Output:      aws.StringValue(out.Output),
		Error:       aws.StringValue(out.Error),
		Cause:       aws.StringValue(out.Cause),
		StartedAt:   out.StartDate,
		StoppedAt:   out.StopDate,
	}, nil
}

// translateHistoryEvent narrows the engine's event zoo down to the structured
// event set replay understands. Event types outside it are dropped here so
// the reconstructor never sees engine-specific strings.
func translateHistoryEvent(raw *sfn.HistoryEvent) (domain.ExecutionEvent, bool) {
	eventType := aws.StringValue(raw.Type)
	event := domain.ExecutionEvent{
		Timestamp: aws.TimeValue(raw.Timestamp),
	}

	switch {
	case eventType == "MapStateEntered":
		event.Type = domain.MapEntered
		if raw.StateEnteredEventDetails != nil {
			event.StateName = aws.StringValue(raw.StateEnteredEventDetails.Name)
		}
	case eventType == "MapStateExited":
		event.Type = domain.MapExited
		if raw.StateExitedEventDetails != nil {
			event.StateName = aws.StringValue(raw.StateExitedEventDetails.Name)
		}
	case eventType == "MapStateStarted":
		event.Type = domain.MapStarted
		if raw.MapStateStartedEventDetails != nil {
			event.IterationCount = int(aws.Int64Value(raw.MapStateStartedEventDetails.Length))
		}
	case eventType == "MapIterationStarted":
		event.Type = domain.MapIterationStarted
	case eventType == "MapIterationSucceeded":
		event.Type = domain.MapIterationSucceeded
	case eventType == "MapIterationFailed":
		event.Type = domain.MapIterationFailed
	case strings.HasSuffix(eventType, "StateEntered"):
		event.Type = domain.StateEntered
		if raw.StateEnteredEventDetails != nil {
			event.StateName = aws.StringValue(raw.StateEnteredEventDetails.Name)
		}
	case strings.HasSuffix(eventType, "StateExited"):
		event.Type = domain.StateExited
		if raw.StateExitedEventDetails != nil {
			event.StateName = aws.StringValue(raw.StateExitedEventDetails.Name)
		}
	default:
		return domain.ExecutionEvent{}, false
	}

	return event, true
}
