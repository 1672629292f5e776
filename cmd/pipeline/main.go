package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/stream-scribe/internal/captions"
	"github.com/nguyentantai21042004/stream-scribe/internal/catalog"
	"github.com/nguyentantai21042004/stream-scribe/internal/committer"
	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
	"github.com/nguyentantai21042004/stream-scribe/internal/runner"
	"github.com/nguyentantai21042004/stream-scribe/internal/store"
	"github.com/nguyentantai21042004/stream-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/stream-scribe/internal/transcriber"
	"github.com/nguyentantai21042004/stream-scribe/internal/watcher"
	"github.com/nguyentantai21042004/stream-scribe/internal/youtube"
	"github.com/nguyentantai21042004/stream-scribe/pkg/executor"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the YAML configuration file")
		mode       = flag.String("mode", "transcribe", "pipeline mode: extract | transcribe | captions | watch")
		once       = flag.Bool("once", false, "run a single pass instead of the interval schedule")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Stream Scribe Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Mode: %s", *mode)
	log.Info(ctx, "Channel: %s", cfg.Channel.URL)
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Transcripts)
	log.Info(ctx, "Configuration loaded successfully")

	if err := run(ctx, cfg, *mode, *once, log); err != nil && err != context.Canceled {
		log.Error(ctx, "Pipeline failed: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Pipeline stopped")
}

func run(ctx context.Context, cfg *config.Config, mode string, once bool, log logger.Logger) error {
	if mode == "watch" {
		return runWatch(ctx, cfg, log)
	}

	task, cleanup, err := buildTask(cfg, mode, log)
	if err != nil {
		return err
	}
	defer cleanup()

	exec := executor.New()
	com := committer.New(cfg.Git, exec, log)
	r := runner.New(cfg, task, com, log)

	if once {
		return r.RunOnce(ctx)
	}
	return r.Schedule(ctx, time.Duration(cfg.Schedule.IntervalMinutes)*time.Minute)
}

// buildTask wires the task for the requested mode. The returned cleanup
// closes the state store when one was opened.
func buildTask(cfg *config.Config, mode string, log logger.Logger) (runner.Task, func(), error) {
	noop := func() {}

	switch mode {
	case "extract":
		yt := youtube.New(cfg.Secrets.YouTubeAPIKey, log)
		return runner.NewTask("extract", func(ctx context.Context) error {
			return extractCatalog(ctx, cfg, yt, log)
		}), noop, nil

	case "transcribe":
		st, err := store.Open(cfg.Paths.StateDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open state store: %w", err)
		}
		src := catalog.New(cfg.Catalog, cfg.Secrets.GitHubToken, log)
		yt := youtube.New(cfg.Secrets.YouTubeAPIKey, log)
		tr := transcriber.New(cfg, src, yt, st, log)
		return runner.NewTask("transcribe", tr.Run), func() { st.Close() }, nil

	case "captions":
		st, err := store.Open(cfg.Paths.StateDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open state store: %w", err)
		}
		src := catalog.New(cfg.Catalog, cfg.Secrets.GitHubToken, log)
		f := captions.New(cfg, src, st, log)
		return runner.NewTask("captions", f.Run), func() { st.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown mode %q (want extract, transcribe, captions or watch)", mode)
	}
}

// extractCatalog builds the livestream catalog for the configured channel
// and writes it to the catalog file.
func extractCatalog(ctx context.Context, cfg *config.Config, yt youtube.Client, log logger.Logger) error {
	if cfg.Channel.URL == "" {
		return fmt.Errorf("channel.url is required for extract mode")
	}

	cat, err := yt.BuildCatalog(ctx, cfg.Channel.URL, cfg.Channel.MaxResults)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(cfg.Catalog.File, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	log.Info(ctx, "Catalog written: %s (%d livestreams)", cfg.Catalog.File, cat.Total)
	return nil
}

// runWatch monitors the transcripts directory and summarizes every new
// transcript until interrupted.
func runWatch(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	for _, dir := range []string{cfg.Paths.Transcripts, cfg.Paths.Summaries} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	sum := summarizer.New(cfg.Secrets.GeminiAPIKeys, cfg.Gemini.Model, log)

	w, err := watcher.New(cfg.Paths.Transcripts, func(ctx context.Context, filePath string) error {
		return sum.SummarizeFile(ctx, filePath, cfg.Paths.Summaries)
	}, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	// Catch up on transcripts that arrived while the watcher was down.
	if err := sum.SummarizeAll(ctx, cfg.Paths.Transcripts, cfg.Paths.Summaries); err != nil {
		log.Error(ctx, "Initial summary pass failed: %v", err)
	}

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Transcripts)
	log.Info(ctx, "Press Ctrl+C to stop")

	return w.Start(ctx)
}
