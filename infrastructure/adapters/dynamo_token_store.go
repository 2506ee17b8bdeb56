package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/config"
	"highlight-reel-pipeline/domain"
)

type dynamoTokenItem struct {
	PK                 string `dynamodbav:"pk"`
	JobInvocationID    string `dynamodbav:"invocation_id"`
	ContinuationHandle string `dynamodbav:"task_token"`
	CorrelationID      string `dynamodbav:"correlation_id"`
	OutputLocation     string `dynamodbav:"output_location"`
	Kind               string `dynamodbav:"kind"`
	TTL                int64  `dynamodbav:"ttl"`
}

type dynamoTokenStore struct {
	logger      outbound.LoggerPort
	dynamoSvc   *dynamodb.DynamoDB
	tableConfig *config.TokenTableConfig
}

func NewDynamoTokenStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	tableConfig *config.TokenTableConfig) outbound.TokenStorePort {
	return &dynamoTokenStore{
		logger:      logger,
		dynamoSvc:   dynamoSvc,
		tableConfig: tableConfig,
	}
}

func (s *dynamoTokenStore) Store(ctx context.Context, record domain.ContinuationRecord) error {
	item := dynamoTokenItem{
		PK:                 domain.ContinuationKey(record.OutputLocation, record.Kind),
		JobInvocationID:    record.JobInvocationID,
		ContinuationHandle: record.ContinuationHandle,
		CorrelationID:      record.CorrelationID,
		OutputLocation:     record.OutputLocation,
		Kind:               string(record.Kind),
		TTL:                time.Now().Add(time.Duration(s.tableConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "failed to marshal continuation record", map[string]interface{}{
			"key": item.PK,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.tableConfig.TableName),
	}

	if _, err = s.dynamoSvc.PutItemWithContext(ctx, input); err != nil {
		s.logger.ErrorWithFields(err, "failed to store continuation record", map[string]interface{}{
			"key": item.PK,
		})
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return nil
}

func (s *dynamoTokenStore) Peek(ctx context.Context, outputLocation string,
	kind domain.JobKind) (domain.ContinuationRecord, error) {
	key := domain.ContinuationKey(outputLocation, kind)

	out, err := s.dynamoSvc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableConfig.TableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]*dynamodb.AttributeValue{
			"pk": {S: aws.String(key)},
		},
	})
	if err != nil {
		return domain.ContinuationRecord{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if out.Item == nil {
		return domain.ContinuationRecord{}, domain.ErrNotFound
	}

	return unmarshalTokenItem(out.Item)
}

// Consume deletes the record conditionally on its existence and returns the
// old item from the same call, so exactly one of any number of concurrent
// callers observes the record.
func (s *dynamoTokenStore) Consume(ctx context.Context, outputLocation string,
	kind domain.JobKind) (domain.ContinuationRecord, error) {
	key := domain.ContinuationKey(outputLocation, kind)

	out, err := s.dynamoSvc.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableConfig.TableName),
		ConditionExpression: aws.String("attribute_exists(pk)"),
		ReturnValues:        aws.String(dynamodb.ReturnValueAllOld),
		Key: map[string]*dynamodb.AttributeValue{
			"pk": {S: aws.String(key)},
		},
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return domain.ContinuationRecord{}, domain.ErrNotFound
		}
		s.logger.ErrorWithFields(err, "failed to consume continuation record", map[string]interface{}{
			"key": key,
		})
		return domain.ContinuationRecord{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return unmarshalTokenItem(out.Attributes)
}

func unmarshalTokenItem(attributes map[string]*dynamodb.AttributeValue) (domain.ContinuationRecord, error) {
	var item dynamoTokenItem
	if err := dynamodbattribute.UnmarshalMap(attributes, &item); err != nil {
		return domain.ContinuationRecord{}, err
	}
	return domain.ContinuationRecord{
		JobInvocationID:    item.JobInvocationID,
		ContinuationHandle: item.ContinuationHandle,
		CorrelationID:      item.CorrelationID,
		OutputLocation:     item.OutputLocation,
		Kind:               domain.JobKind(item.Kind),
	}, nil
}
