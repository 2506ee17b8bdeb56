package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"highlight-reel-pipeline/domain"
)

type fakeTokenStore struct {
	records map[string]domain.ContinuationRecord
	err     error
}

func newFakeTokenStore(records ...domain.ContinuationRecord) *fakeTokenStore {
	store := &fakeTokenStore{records: make(map[string]domain.ContinuationRecord)}
	for _, r := range records {
		store.records[domain.ContinuationKey(r.OutputLocation, r.Kind)] = r
	}
	return store
}

func (f *fakeTokenStore) Store(_ context.Context, record domain.ContinuationRecord) error {
	f.records[domain.ContinuationKey(record.OutputLocation, record.Kind)] = record
	return nil
}

func (f *fakeTokenStore) Peek(_ context.Context, location string, kind domain.JobKind) (domain.ContinuationRecord, error) {
	record, ok := f.records[domain.ContinuationKey(location, kind)]
	if !ok {
		return domain.ContinuationRecord{}, domain.ErrNotFound
	}
	return record, nil
}

func (f *fakeTokenStore) Consume(_ context.Context, location string, kind domain.JobKind) (domain.ContinuationRecord, error) {
	if f.err != nil {
		return domain.ContinuationRecord{}, f.err
	}
	key := domain.ContinuationKey(location, kind)
	record, ok := f.records[key]
	if !ok {
		return domain.ContinuationRecord{}, domain.ErrNotFound
	}
	delete(f.records, key)
	return record, nil
}

type fakeObjectStore struct {
	objects  map[string][]byte
	getCalls []string
}

func (f *fakeObjectStore) Get(_ context.Context, location string) ([]byte, error) {
	f.getCalls = append(f.getCalls, location)
	body, ok := f.objects[location]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return body, nil
}

func (f *fakeObjectStore) Put(_ context.Context, location string, _ []byte, _ string) (string, error) {
	return location, nil
}

func (f *fakeObjectStore) Head(_ context.Context, _ string) (int64, error) { return 0, nil }

func (f *fakeObjectStore) Download(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeObjectStore) Upload(_ context.Context, _ string, location string, _ string) (string, error) {
	return location, nil
}

type deliveredSuccess struct {
	handle string
	result interface{}
}

type deliveredFailure struct {
	handle  string
	code    string
	message string
}

type fakeWorkflow struct {
	successes []deliveredSuccess
	failures  []deliveredFailure
}

func (f *fakeWorkflow) ReportSuccess(_ context.Context, handle string, result interface{}) error {
	f.successes = append(f.successes, deliveredSuccess{handle: handle, result: result})
	return nil
}

func (f *fakeWorkflow) ReportFailure(_ context.Context, handle string, code string, message string) error {
	f.failures = append(f.failures, deliveredFailure{handle: handle, code: code, message: message})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

func TestClassifyNotification(t *testing.T) {
	tests := []struct {
		key      string
		wantKind domain.JobKind
		wantKey  string
		wantOK   bool
	}{
		{
			key:      "embeddings/vid-42/output.json",
			wantKind: domain.EmbeddingJob,
			wantKey:  "s3://media-bucket/embeddings/vid-42/",
			wantOK:   true,
		},
		{
			key:      "analysis/vid-42/segment-3.json",
			wantKind: domain.AnalysisJob,
			wantKey:  "s3://media-bucket/analysis/vid-42/segment-3.json",
			wantOK:   true,
		},
		{
			key:      "voiceover/vid-42/segment-3.json",
			wantKind: domain.VoiceoverJob,
			wantKey:  "s3://media-bucket/voiceover/vid-42/segment-3.json",
			wantOK:   true,
		},
		{key: "random/file.txt", wantOK: false},
		{key: "embeddings/vid-42/partial.bin", wantOK: false},
		{key: "analysis/vid-42/thumbnail.png", wantOK: false},
		{key: "embeddings/output.json", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			classification, ok := ClassifyNotification(domain.StorageNotification{
				Bucket:    "media-bucket",
				ObjectKey: tt.key,
			})
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantKind, classification.Kind)
				assert.Equal(t, tt.wantKey, classification.OutputLocation)
			}
		})
	}
}

func TestCallbackRouter_EmbeddingSuccessWithoutRead(t *testing.T) {
	record := domain.ContinuationRecord{
		ContinuationHandle: "token-emb",
		CorrelationID:      "vid-42",
		OutputLocation:     "s3://media-bucket/embeddings/vid-42/",
		Kind:               domain.EmbeddingJob,
	}
	tokens := newFakeTokenStore(record)
	objects := &fakeObjectStore{}
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, objects, workflow, nopLogger{})

	err := router.Route(context.Background(), domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "embeddings/vid-42/output.json",
	})
	require.NoError(t, err)

	require.Len(t, workflow.successes, 1)
	assert.Equal(t, "token-emb", workflow.successes[0].handle)
	result := workflow.successes[0].result.(map[string]interface{})
	assert.Equal(t, "Completed", result["status"])
	assert.Equal(t, "vid-42", result["videoId"])
	assert.Equal(t, "s3://media-bucket/embeddings/vid-42/output.json", result["outputS3Uri"])
	assert.Empty(t, objects.getCalls, "embedding results must not trigger a payload read")
}

func TestCallbackRouter_AnalysisReadsAndUnwrapsEnvelope(t *testing.T) {
	location := "s3://media-bucket/analysis/vid-42/segment-3.json"
	record := domain.ContinuationRecord{
		ContinuationHandle: "token-analysis",
		CorrelationID:      "3",
		OutputLocation:     location,
		Kind:               domain.AnalysisJob,
	}

	tests := map[string][]byte{
		"bare payload":    []byte(`{"roomType":"kitchen","appealScore":8}`),
		"inline envelope": []byte(`{"data":{"roomType":"kitchen","appealScore":8}}`),
		"string envelope": []byte(`{"data":"{\"roomType\":\"kitchen\",\"appealScore\":8}"}`),
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			tokens := newFakeTokenStore(record)
			objects := &fakeObjectStore{objects: map[string][]byte{location: body}}
			workflow := &fakeWorkflow{}
			router := NewCallbackRouter(tokens, objects, workflow, nopLogger{})

			err := router.Route(context.Background(), domain.StorageNotification{
				Bucket:    "media-bucket",
				ObjectKey: "analysis/vid-42/segment-3.json",
			})
			require.NoError(t, err)

			require.Len(t, workflow.successes, 1)
			result := workflow.successes[0].result.(map[string]interface{})
			assert.Equal(t, "kitchen", result["roomType"])
			assert.Equal(t, 3, result["segmentId"])
		})
	}
}

func TestCallbackRouter_VoiceoverPrefersVoiceoverField(t *testing.T) {
	location := "s3://media-bucket/voiceover/vid-42/segment-1.json"
	record := domain.ContinuationRecord{
		ContinuationHandle: "token-vo",
		CorrelationID:      "1",
		OutputLocation:     location,
		Kind:               domain.VoiceoverJob,
	}
	tokens := newFakeTokenStore(record)
	objects := &fakeObjectStore{objects: map[string][]byte{
		location: []byte(`{"voiceover":"A bright and airy kitchen."}`),
	}}
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, objects, workflow, nopLogger{})

	err := router.Route(context.Background(), domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "voiceover/vid-42/segment-1.json",
	})
	require.NoError(t, err)

	require.Len(t, workflow.successes, 1)
	result := workflow.successes[0].result.(map[string]interface{})
	assert.Equal(t, 1, result["segmentId"])
	assert.Equal(t, "A bright and airy kitchen.", result["voiceover"])
}

func TestCallbackRouter_UnroutableIsNoop(t *testing.T) {
	tokens := newFakeTokenStore()
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, &fakeObjectStore{}, workflow, nopLogger{})

	err := router.Route(context.Background(), domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "random/file.txt",
	})
	require.NoError(t, err)
	assert.Empty(t, workflow.successes)
	assert.Empty(t, workflow.failures)
}

func TestCallbackRouter_DuplicateDeliveryIsNoop(t *testing.T) {
	record := domain.ContinuationRecord{
		ContinuationHandle: "token-emb",
		CorrelationID:      "vid-42",
		OutputLocation:     "s3://media-bucket/embeddings/vid-42/",
		Kind:               domain.EmbeddingJob,
	}
	tokens := newFakeTokenStore(record)
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, &fakeObjectStore{}, workflow, nopLogger{})

	notification := domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "embeddings/vid-42/output.json",
	}
	require.NoError(t, router.Route(context.Background(), notification))
	require.NoError(t, router.Route(context.Background(), notification))

	assert.Len(t, workflow.successes, 1)
	assert.Empty(t, workflow.failures)
}

func TestCallbackRouter_ParseFailureDeliversFailure(t *testing.T) {
	location := "s3://media-bucket/analysis/vid-42/segment-3.json"
	record := domain.ContinuationRecord{
		ContinuationHandle: "token-analysis",
		CorrelationID:      "3",
		OutputLocation:     location,
		Kind:               domain.AnalysisJob,
	}
	tokens := newFakeTokenStore(record)
	objects := &fakeObjectStore{objects: map[string][]byte{location: []byte("not json")}}
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, objects, workflow, nopLogger{})

	err := router.Route(context.Background(), domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "analysis/vid-42/segment-3.json",
	})
	require.NoError(t, err)

	require.Len(t, workflow.failures, 1)
	assert.Equal(t, "token-analysis", workflow.failures[0].handle)
	assert.Equal(t, "SegmentAnalysisFailed", workflow.failures[0].code)
	assert.Empty(t, workflow.successes)
}

func TestCallbackRouter_MissingPayloadDeliversKindSpecificCode(t *testing.T) {
	location := "s3://media-bucket/voiceover/vid-42/segment-1.json"
	record := domain.ContinuationRecord{
		ContinuationHandle: "token-vo",
		CorrelationID:      "1",
		OutputLocation:     location,
		Kind:               domain.VoiceoverJob,
	}
	tokens := newFakeTokenStore(record)
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, &fakeObjectStore{}, workflow, nopLogger{})

	err := router.Route(context.Background(), domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "voiceover/vid-42/segment-1.json",
	})
	require.NoError(t, err)

	require.Len(t, workflow.failures, 1)
	assert.Equal(t, "VoiceoverGenerationFailed", workflow.failures[0].code)
}

func TestCallbackRouter_StorageUnavailableBubbles(t *testing.T) {
	tokens := newFakeTokenStore()
	tokens.err = domain.ErrStorageUnavailable
	workflow := &fakeWorkflow{}
	router := NewCallbackRouter(tokens, &fakeObjectStore{}, workflow, nopLogger{})

	err := router.Route(context.Background(), domain.StorageNotification{
		Bucket:    "media-bucket",
		ObjectKey: "embeddings/vid-42/output.json",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
	assert.Empty(t, workflow.successes)
	assert.Empty(t, workflow.failures)
}
