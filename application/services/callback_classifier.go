package services

import (
	"strings"

	"highlight-reel-pipeline/domain"
)

const embeddingOutputFile = "output.json"

// JobClassification names the async job a storage notification belongs to and
// the canonical location used as the token store key.
type JobClassification struct {
	Kind           domain.JobKind
	OutputLocation string
}

// ClassifyNotification maps an object path onto a job kind. Embedding jobs
// write a fixed output file and are keyed by its parent directory; analysis
// and voiceover jobs are keyed by the exact result path. Anything else is
// ignorable, not an error: the storage channel fires for every write.
func ClassifyNotification(notification domain.StorageNotification) (JobClassification, bool) {
	key := notification.ObjectKey

	if strings.HasPrefix(key, "embeddings/") && strings.HasSuffix(key, "/"+embeddingOutputFile) {
		rest := key[len("embeddings/"):]
		slash := strings.Index(rest, "/")
		if slash > 0 {
			basePath := "embeddings/" + rest[:slash] + "/"
			return JobClassification{
				Kind:           domain.EmbeddingJob,
				OutputLocation: domain.BuildLocation("s3", notification.Bucket, basePath),
			}, true
		}
	}

	if strings.HasPrefix(key, "analysis/") && strings.HasSuffix(key, ".json") {
		return JobClassification{
			Kind:           domain.AnalysisJob,
			OutputLocation: domain.BuildLocation("s3", notification.Bucket, key),
		}, true
	}

	if strings.HasPrefix(key, "voiceover/") && strings.HasSuffix(key, ".json") {
		return JobClassification{
			Kind:           domain.VoiceoverJob,
			OutputLocation: domain.BuildLocation("s3", notification.Bucket, key),
		}, true
	}

	return JobClassification{}, false
}
