package domain

// Segment is one selected slice of the source walkthrough, enriched with a
// voiceover script and narration audio as the pipeline progresses. Segments
// are pipeline-scoped: consumed once by assembly and then discarded.
type Segment struct {
	ID                     int
	Title                  string
	StartTime              float64
	EndTime                float64
	Voiceover              string
	NarrationAudioLocation string
}

type AssemblyJob struct {
	SourceVideoLocation string
	Segments            []Segment
	OutputLocation      string
	AgencyLabel         string
	StreetLabel         string
}

type AssemblyResult struct {
	FinalLocation        string
	TotalDurationSeconds float64
	SegmentCount         int
}

// StorageNotification is the raw completion signal for an object written by
// an external job, as delivered by the storage event channel.
type StorageNotification struct {
	Bucket    string
	ObjectKey string
}
