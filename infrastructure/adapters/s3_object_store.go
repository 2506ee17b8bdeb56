package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"

	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
)

type s3ObjectStore struct {
	s3Svc  *s3.S3
	logger outbound.LoggerPort
}

func NewS3ObjectStore(s3Svc *s3.S3, logger outbound.LoggerPort) outbound.ObjectStorePort {
	return &s3ObjectStore{
		s3Svc:  s3Svc,
		logger: logger,
	}
}

func (s *s3ObjectStore) Get(ctx context.Context, location string) ([]byte, error) {
	parsed, err := domain.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	out, err := s.s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(parsed.Bucket),
		Key:    aws.String(parsed.Key),
	})
	if err != nil {
		return nil, s.mapError(err, "get", location)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return body, nil
}

func (s *s3ObjectStore) Put(ctx context.Context, location string, body []byte, contentType string) (string, error) {
	parsed, err := domain.ParseLocation(location)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(parsed.Bucket),
		Key:           aws.String(parsed.Key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err = s.s3Svc.PutObjectWithContext(ctx, input); err != nil {
		s.logger.ErrorWithFields(err, "failed to upload object", map[string]interface{}{
			"location": location,
		})
		return "", s.mapError(err, "put", location)
	}

	return location, nil
}

func (s *s3ObjectStore) Head(ctx context.Context, location string) (int64, error) {
	parsed, err := domain.ParseLocation(location)
	if err != nil {
		return 0, err
	}

	out, err := s.s3Svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(parsed.Bucket),
		Key:    aws.String(parsed.Key),
	})
	if err != nil {
		return 0, s.mapError(err, "head", location)
	}
	return aws.Int64Value(out.ContentLength), nil
}

func (s *s3ObjectStore) Download(ctx context.Context, location string, localPath string) error {
	parsed, err := domain.ParseLocation(location)
	if err != nil {
		return err
	}

	out, err := s.s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(parsed.Bucket),
		Key:    aws.String(parsed.Key),
	})
	if err != nil {
		return s.mapError(err, "download", location)
	}
	defer out.Body.Close()

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", localPath, err)
	}
	defer file.Close()

	if _, err = io.Copy(file, out.Body); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

func (s *s3ObjectStore) Upload(ctx context.Context, localPath string, location string, contentType string) (string, error) {
	parsed, err := domain.ParseLocation(location)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(parsed.Bucket),
		Key:    aws.String(parsed.Key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err = s.s3Svc.PutObjectWithContext(ctx, input); err != nil {
		s.logger.ErrorWithFields(err, "failed to upload file", map[string]interface{}{
			"location":  location,
			"localPath": localPath,
		})
		return "", s.mapError(err, "upload", location)
	}

	return location, nil
}

func (s *s3ObjectStore) mapError(err error, operation string, location string) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return fmt.Errorf("%s %s: %w", operation, location, domain.ErrNotFound)
		}
	}
	return fmt.Errorf("%s %s: %w: %v", operation, location, domain.ErrStorageUnavailable, err)
}
