package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"highlight-reel-pipeline/application/ports/inbound"
	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
)

type callbackRouter struct {
	tokenStore  outbound.TokenStorePort
	objectStore outbound.ObjectStorePort
	workflow    outbound.WorkflowCallbackPort
	logger      outbound.LoggerPort
}

func NewCallbackRouter(tokenStore outbound.TokenStorePort, objectStore outbound.ObjectStorePort,
	workflow outbound.WorkflowCallbackPort, logger outbound.LoggerPort) inbound.CallbackRouterPort {
	return &callbackRouter{
		tokenStore:  tokenStore,
		objectStore: objectStore,
		workflow:    workflow,
		logger:      logger,
	}
}

// Route matches one storage notification to the pipeline step awaiting it and
// resumes the workflow exactly once. Duplicate and unroutable deliveries are
// silent no-ops; delivery here is at-least-once by external contract.
func (r *callbackRouter) Route(ctx context.Context, notification domain.StorageNotification) error {
	classification, ok := ClassifyNotification(notification)
	if !ok {
		r.logger.DebugWithFields("ignoring unroutable notification", map[string]interface{}{
			"bucket": notification.Bucket,
			"key":    notification.ObjectKey,
		})
		return nil
	}

	record, err := r.tokenStore.Consume(ctx, classification.OutputLocation, classification.Kind)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.DebugWithFields("no pending continuation, already handled or never registered", map[string]interface{}{
				"outputLocation": classification.OutputLocation,
				"kind":           string(classification.Kind),
			})
			return nil
		}
		return err
	}

	result, err := r.buildResult(ctx, notification, record)
	if err != nil {
		r.logger.ErrorWithFields(err, "failed to build job result, reporting failure", map[string]interface{}{
			"correlationId": record.CorrelationID,
			"kind":          string(record.Kind),
		})
		return r.workflow.ReportFailure(ctx, record.ContinuationHandle, record.Kind.FailureCode(), err.Error())
	}

	return r.workflow.ReportSuccess(ctx, record.ContinuationHandle, result)
}

func (r *callbackRouter) buildResult(ctx context.Context, notification domain.StorageNotification,
	record domain.ContinuationRecord) (interface{}, error) {
	resultLocation := domain.BuildLocation("s3", notification.Bucket, notification.ObjectKey)

	switch record.Kind {
	case domain.EmbeddingJob:
		// The location itself is the result; downstream reads the file.
		return map[string]interface{}{
			"status":      "Completed",
			"videoId":     record.CorrelationID,
			"outputS3Uri": resultLocation,
		}, nil

	case domain.AnalysisJob:
		payload, err := r.readJobOutput(ctx, resultLocation)
		if err != nil {
			return nil, err
		}
		segmentID, err := strconv.Atoi(record.CorrelationID)
		if err != nil {
			return nil, fmt.Errorf("correlation id is not a segment id: %w", err)
		}
		payload["segmentId"] = segmentID
		return payload, nil

	case domain.VoiceoverJob:
		payload, err := r.readJobOutput(ctx, resultLocation)
		if err != nil {
			return nil, err
		}
		segmentID, err := strconv.Atoi(record.CorrelationID)
		if err != nil {
			return nil, fmt.Errorf("correlation id is not a segment id: %w", err)
		}
		voiceover, ok := payload["voiceover"]
		if !ok {
			voiceover = payload
		}
		return map[string]interface{}{
			"segmentId": segmentID,
			"voiceover": voiceover,
		}, nil

	default:
		return nil, fmt.Errorf("unknown job kind %q", record.Kind)
	}
}

// readJobOutput fetches the job's emitted JSON. Some job APIs wrap the
// business payload in an envelope with a data field, either inline or as an
// encoded string; both shapes are unwrapped transparently.
func (r *callbackRouter) readJobOutput(ctx context.Context, location string) (map[string]interface{}, error) {
	raw, err := r.objectStore.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("reading job output %s: %w", location, err)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parsing job output %s: %w", location, err)
	}

	data, ok := envelope["data"]
	if !ok {
		return envelope, nil
	}

	switch d := data.(type) {
	case string:
		var inner map[string]interface{}
		if err := json.Unmarshal([]byte(d), &inner); err != nil {
			return nil, fmt.Errorf("parsing job output envelope %s: %w", location, err)
		}
		return inner, nil
	case map[string]interface{}:
		return d, nil
	default:
		return nil, fmt.Errorf("unexpected envelope data type in %s", location)
	}
}
