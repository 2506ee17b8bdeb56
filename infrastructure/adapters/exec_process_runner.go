package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"highlight-reel-pipeline/application/ports/outbound"
)

type execProcessRunner struct {
	logger outbound.LoggerPort
}

func NewExecProcessRunner(logger outbound.LoggerPort) outbound.ProcessRunnerPort {
	return &execProcessRunner{
		logger: logger,
	}
}

// Run executes the binary and waits for it. No internal timeout: the caller
// kills a hung process through ctx.
func (r *execProcessRunner) Run(ctx context.Context, name string, args ...string) (*outbound.ProcessResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.logger.ErrorWithFields(err, "external process failed", map[string]interface{}{
			"command": name,
			"args":    strings.Join(args, " "),
			"stderr":  stderr.String(),
		})
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}

	return &outbound.ProcessResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}, nil
}
