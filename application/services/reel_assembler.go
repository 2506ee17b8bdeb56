package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/panjf2000/ants/v2"

	"highlight-reel-pipeline/application/ports/inbound"
	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/channel_utils"
	"highlight-reel-pipeline/domain"
)

var introTitlePattern = regexp.MustCompile(`(?i)exterior|front|outdoor`)

type reelAssembler struct {
	objectStore outbound.ObjectStorePort
	clipEditor  outbound.ClipEditorPort
	workerPool  *ants.Pool
	logger      outbound.LoggerPort
	scratchRoot string
}

func NewReelAssembler(objectStore outbound.ObjectStorePort, clipEditor outbound.ClipEditorPort,
	workerPool *ants.Pool, logger outbound.LoggerPort, scratchRoot string) inbound.ReelAssemblerPort {
	return &reelAssembler{
		objectStore: objectStore,
		clipEditor:  clipEditor,
		workerPool:  workerPool,
		logger:      logger,
		scratchRoot: scratchRoot,
	}
}

// Assemble turns the ordered segments into one concatenated reel. The scratch
// directory and everything under it is reclaimed on every exit path; no
// partial output is ever uploaded.
func (a *reelAssembler) Assemble(ctx context.Context, job domain.AssemblyJob) (*domain.AssemblyResult, error) {
	if len(job.Segments) == 0 {
		return nil, domain.ErrNoSegments
	}

	scratchDir, err := os.MkdirTemp(a.scratchRoot, "assembly-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratchDir); err != nil {
			a.logger.ErrorWithFields(err, "failed to remove scratch directory", map[string]interface{}{
				"scratchDir": scratchDir,
			})
		}
	}()

	sourcePath := filepath.Join(scratchDir, "source.mp4")
	if err := a.objectStore.Download(ctx, job.SourceVideoLocation, sourcePath); err != nil {
		return nil, fmt.Errorf("downloading source video: %w", err)
	}

	audioPaths, err := a.prefetchNarration(ctx, scratchDir, job.Segments)
	if err != nil {
		return nil, fmt.Errorf("downloading narration audio: %w", err)
	}

	introIndex := findIntroIndex(job.Segments)
	clipPaths := make([]string, 0, len(job.Segments))

	for i, segment := range job.Segments {
		clipPath := filepath.Join(scratchDir, fmt.Sprintf("segment_%d.mp4", i))
		spec := outbound.ClipSpec{
			SourcePath:  sourcePath,
			StartTime:   segment.StartTime,
			EndTime:     segment.EndTime,
			Title:       segment.Title,
			AudioPath:   audioPaths[i],
			IsIntro:     i == introIndex,
			AgencyLabel: job.AgencyLabel,
			StreetLabel: job.StreetLabel,
			OutputPath:  clipPath,
		}
		if err := a.clipEditor.CutClip(ctx, spec); err != nil {
			return nil, domain.NewPipelineError(domain.CodeProcessingFailed,
				fmt.Sprintf("processing segment %d", segment.ID), err)
		}
		clipPaths = append(clipPaths, clipPath)
	}

	finalPath := filepath.Join(scratchDir, "final.mp4")
	if err := a.clipEditor.Concatenate(ctx, clipPaths, finalPath); err != nil {
		return nil, domain.NewPipelineError(domain.CodeProcessingFailed, "concatenating segments", err)
	}

	finalLocation, err := a.objectStore.Upload(ctx, finalPath, job.OutputLocation, "video/mp4")
	if err != nil {
		return nil, fmt.Errorf("uploading final video: %w", err)
	}

	duration, err := a.clipEditor.ProbeDuration(ctx, finalPath)
	if err != nil {
		return nil, fmt.Errorf("probing final video duration: %w", err)
	}

	a.logger.InfoWithFields("assembled highlight reel", map[string]interface{}{
		"finalLocation": finalLocation,
		"segmentCount":  len(job.Segments),
		"duration":      duration,
	})

	return &domain.AssemblyResult{
		FinalLocation:        finalLocation,
		TotalDurationSeconds: duration,
		SegmentCount:         len(job.Segments),
	}, nil
}

type narrationFetch struct {
	index int
	path  string
	err   error
}

// prefetchNarration downloads every segment's narration audio on the worker
// pool. Results are re-ordered by segment index, so the returned slice lines
// up with the segments regardless of completion order. Segments without
// narration get an empty path.
func (a *reelAssembler) prefetchNarration(ctx context.Context, scratchDir string,
	segments []domain.Segment) ([]string, error) {
	channels := make([]<-chan narrationFetch, 0, len(segments))

	for i, segment := range segments {
		index := i
		location := segment.NarrationAudioLocation
		ch := make(chan narrationFetch, 1)
		channels = append(channels, ch)

		err := a.workerPool.Submit(func() {
			defer close(ch)
			if location == "" {
				ch <- narrationFetch{index: index}
				return
			}
			audioPath := filepath.Join(scratchDir, fmt.Sprintf("audio_%d.mp3", index))
			if err := a.objectStore.Download(ctx, location, audioPath); err != nil {
				ch <- narrationFetch{index: index, err: err}
				return
			}
			ch <- narrationFetch{index: index, path: audioPath}
		})
		if err != nil {
			close(ch)
			return nil, err
		}
	}

	merged, err := channel_utils.MergeChannels(a.workerPool, channels...)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(segments))
	var firstErr error
	for fetch := range merged {
		if fetch.err != nil && firstErr == nil {
			firstErr = fetch.err
		}
		paths[fetch.index] = fetch.path
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return paths, nil
}

// findIntroIndex picks the segment that opens the reel's labelling: the first
// title that reads like an outside shot, falling back to the first segment.
func findIntroIndex(segments []domain.Segment) int {
	for i, segment := range segments {
		if introTitlePattern.MatchString(segment.Title) {
			return i
		}
	}
	return 0
}
