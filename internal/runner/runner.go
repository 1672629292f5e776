package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const transcriptsReadme = `# Transcripts

Files in this directory are generated automatically by the transcript
pipeline. Do not edit them by hand.
`

// RunOnce executes the fixed step sequence: provision directories, run the
// task, commit and push the output directory. A step failure aborts the run.
func (r *implRunner) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	r.logger.Info(ctx, "Starting run: %s", r.task.Name())

	if err := r.provision(ctx); err != nil {
		return fmt.Errorf("provision: %w", err)
	}

	if err := r.task.Execute(ctx); err != nil {
		return fmt.Errorf("task %s: %w", r.task.Name(), err)
	}

	if r.cfg.Git.Enabled {
		committed, err := r.committer.CommitAndPush(ctx, r.cfg.Paths.Transcripts)
		if err != nil {
			return fmt.Errorf("commit output: %w", err)
		}
		if !committed {
			r.logger.Info(ctx, "Run produced no new output")
		}
	}

	r.logger.Info(ctx, "Run completed in %s", time.Since(startTime))
	return nil
}

// provision creates the working directories and drops the descriptive readme
// into the output directory. The readme content is fixed, so rewriting it on
// every run never dirties the tree after the first commit.
func (r *implRunner) provision(ctx context.Context) error {
	dirs := []string{
		r.cfg.Paths.Transcripts,
		r.cfg.Paths.Summaries,
		r.cfg.Paths.Temp,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	readmePath := filepath.Join(r.cfg.Paths.Transcripts, "README.md")
	if err := os.WriteFile(readmePath, []byte(transcriptsReadme), 0644); err != nil {
		return fmt.Errorf("write readme: %w", err)
	}

	return nil
}

// Schedule runs the sequence now and then once per interval. Scheduled and
// manual invocations go through the same RunOnce path.
func (r *implRunner) Schedule(ctx context.Context, interval time.Duration) error {
	if err := r.RunOnce(ctx); err != nil {
		r.logger.Error(ctx, "Run failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info(ctx, "Scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.logger.Error(ctx, "Run failed: %v", err)
			}
		}
	}
}
