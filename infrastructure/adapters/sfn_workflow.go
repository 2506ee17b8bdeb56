package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sfn"

	"highlight-reel-pipeline/application/ports/outbound"
)

type sfnWorkflowCallback struct {
	sfnSvc *sfn.SFN
	logger outbound.LoggerPort
}

func NewSfnWorkflowCallback(sfnSvc *sfn.SFN, logger outbound.LoggerPort) outbound.WorkflowCallbackPort {
	return &sfnWorkflowCallback{
		sfnSvc: sfnSvc,
		logger: logger,
	}
}

func (w *sfnWorkflowCallback) ReportSuccess(ctx context.Context, continuationHandle string, result interface{}) error {
	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshalling task result: %w", err)
	}

	_, err = w.sfnSvc.SendTaskSuccessWithContext(ctx, &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(continuationHandle),
		Output:    aws.String(string(output)),
	})
	if err != nil {
		w.logger.Error(err, "failed to send task success")
		return fmt.Errorf("sending task success: %w", err)
	}
	return nil
}

func (w *sfnWorkflowCallback) ReportFailure(ctx context.Context, continuationHandle string,
	errorCode string, message string) error {
	_, err := w.sfnSvc.SendTaskFailureWithContext(ctx, &sfn.SendTaskFailureInput{
		TaskToken: aws.String(continuationHandle),
		Error:     aws.String(errorCode),
		Cause:     aws.String(message),
	})
	if err != nil {
		w.logger.Error(err, "failed to send task failure")
		return fmt.Errorf("sending task failure: %w", err)
	}
	return nil
}
