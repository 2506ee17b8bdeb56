package adapters

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/config"
)

type ffmpegClipEditor struct {
	runner outbound.ProcessRunnerPort
	logger outbound.LoggerPort
	cfg    *config.AssemblerConfig
}

func NewFFmpegClipEditor(runner outbound.ProcessRunnerPort, logger outbound.LoggerPort,
	cfg *config.AssemblerConfig) outbound.ClipEditorPort {
	return &ffmpegClipEditor{
		runner: runner,
		logger: logger,
		cfg:    cfg,
	}
}

// CutClip trims [StartTime, EndTime) out of the source as a silent clip,
// optionally burns in the title overlay, then muxes the narration audio when
// it exists. Audio bounds the clip length, not the other way around.
func (f *ffmpegClipEditor) CutClip(ctx context.Context, spec outbound.ClipSpec) error {
	silentPath := spec.OutputPath + ".noaudio.mp4"

	args := []string{
		"-ss", formatSeconds(spec.StartTime),
		"-to", formatSeconds(spec.EndTime),
		"-i", spec.SourcePath,
	}
	if filter := f.buildFilter(spec); filter != "" {
		args = append(args, "-vf", filter)
	}
	args = append(args,
		"-an",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-movflags", "+faststart",
		"-y", silentPath,
	)

	if _, err := f.runner.Run(ctx, f.cfg.FfmpegPath, args...); err != nil {
		return err
	}

	if spec.AudioPath != "" {
		if _, statErr := os.Stat(spec.AudioPath); statErr == nil {
			defer func() {
				if err := os.Remove(silentPath); err != nil {
					f.logger.Error(err, "failed to remove intermediate clip")
				}
			}()
			_, err := f.runner.Run(ctx, f.cfg.FfmpegPath,
				"-i", silentPath,
				"-i", spec.AudioPath,
				"-c:v", "copy",
				"-c:a", "aac",
				"-b:a", "128k",
				"-shortest",
				"-movflags", "+faststart",
				"-y", spec.OutputPath,
			)
			return err
		}
		f.logger.WarnWithFields("narration audio missing, keeping clip silent", map[string]interface{}{
			"audioPath": spec.AudioPath,
		})
	}

	return os.Rename(silentPath, spec.OutputPath)
}

// Concatenate joins the clips in the given order via a concat list file.
// Re-encoding here keeps the join robust across clips with and without audio
// tracks.
func (f *ffmpegClipEditor) Concatenate(ctx context.Context, clipPaths []string, outputPath string) error {
	listPath := filepath.Join(filepath.Dir(outputPath), "concat_"+uuid.NewString()+".txt")

	listFile, err := os.Create(listPath)
	if err != nil {
		return fmt.Errorf("creating concat list: %w", err)
	}
	defer func() {
		if err := os.Remove(listPath); err != nil {
			f.logger.Error(err, "failed to remove concat list file")
		}
	}()

	writer := bufio.NewWriter(listFile)
	for _, p := range clipPaths {
		if _, err = writer.WriteString("file '" + p + "'\n"); err != nil {
			listFile.Close()
			return fmt.Errorf("writing concat list: %w", err)
		}
	}
	if err = writer.Flush(); err != nil {
		listFile.Close()
		return fmt.Errorf("flushing concat list: %w", err)
	}
	if err = listFile.Close(); err != nil {
		return fmt.Errorf("closing concat list: %w", err)
	}

	_, err = f.runner.Run(ctx, f.cfg.FfmpegPath,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", outputPath,
	)
	return err
}

func (f *ffmpegClipEditor) ProbeDuration(ctx context.Context, path string) (float64, error) {
	result, err := f.runner.Run(ctx, f.cfg.FfprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(result.Stdout)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration of %s: %w", path, err)
	}
	return duration, nil
}

// buildFilter renders the room title bottom-right; the intro clip
// additionally carries the agency and street labels centered near the top.
func (f *ffmpegClipEditor) buildFilter(spec outbound.ClipSpec) string {
	if !f.cfg.EnableTextOverlay {
		return ""
	}

	title := strings.ToUpper(sanitizeOverlayText(spec.Title))
	roomFilter := fmt.Sprintf(
		"drawbox=x=w-iw:y=h-200:w=iw:h=200:color=black@0.75:t=fill,"+
			"drawtext=fontfile=%s:text='%s':x=w-text_w-50:y=h-text_h-50:fontsize=140:fontcolor=white:bordercolor=black:borderw=8:shadowx=5:shadowy=5",
		f.cfg.FontPath, title)

	if spec.IsIntro && spec.AgencyLabel != "" && spec.StreetLabel != "" {
		agency := sanitizeOverlayText(spec.AgencyLabel)
		street := sanitizeOverlayText(spec.StreetLabel)
		agencyFilter := fmt.Sprintf(
			"drawtext=fontfile=%s:text='%s':x=(w-text_w)/2:y=h*0.15-60:fontsize=64:fontcolor=white:bordercolor=black:borderw=5:shadowx=3:shadowy=3",
			f.cfg.FontPath, agency)
		streetFilter := fmt.Sprintf(
			"drawtext=fontfile=%s:text='%s':x=(w-text_w)/2:y=h*0.15:fontsize=48:fontcolor=white:bordercolor=black:borderw=4:shadowx=3:shadowy=3",
			f.cfg.FontPath, street)
		return agencyFilter + "," + streetFilter + "," + roomFilter
	}

	return roomFilter
}

// sanitizeOverlayText strips the characters that break drawtext syntax.
func sanitizeOverlayText(text string) string {
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "\"", "")
	text = strings.ReplaceAll(text, ":", "-")
	return strings.TrimSpace(text)
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
