package outbound

import "context"

type ClipSpec struct {
	SourcePath string
	StartTime  float64
	EndTime    float64
	Title      string
	// AudioPath may point at a file that was never produced; the clip then
	// stays silent.
	AudioPath   string
	IsIntro     bool
	AgencyLabel string
	StreetLabel string
	OutputPath  string
}

type ClipEditorPort interface {
	CutClip(ctx context.Context, spec ClipSpec) error
	Concatenate(ctx context.Context, clipPaths []string, outputPath string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
}
