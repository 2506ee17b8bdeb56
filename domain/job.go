package domain

import "strings"

type JobKind string

const (
	EmbeddingJob JobKind = "embedding"
	AnalysisJob  JobKind = "analysis"
	VoiceoverJob JobKind = "voiceover"
)

// FailureCode is the error code delivered to the workflow engine when a job
// of this kind cannot produce a usable result.
func (k JobKind) FailureCode() string {
	switch k {
	case EmbeddingJob:
		return "EmbeddingGenerationFailed"
	case AnalysisJob:
		return "SegmentAnalysisFailed"
	case VoiceoverJob:
		return "VoiceoverGenerationFailed"
	default:
		return "JobFailed"
	}
}

type ContinuationRecord struct {
	JobInvocationID    string
	ContinuationHandle string
	CorrelationID      string
	OutputLocation     string
	Kind               JobKind
}

// ContinuationKey builds the token table key shared by every store
// implementation. One live record per (outputLocation, kind) pair.
func ContinuationKey(outputLocation string, kind JobKind) string {
	return strings.ToUpper(string(kind)) + "#" + outputLocation
}
