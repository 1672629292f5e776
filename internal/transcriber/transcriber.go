package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/stream-scribe/internal/catalog"
	"github.com/nguyentantai21042004/stream-scribe/internal/store"
	"github.com/nguyentantai21042004/stream-scribe/pkg/b3"
)

// Run walks the catalog and transcribes up to transcribe.per_run videos that
// have no transcript yet. Failures on a single video are logged and the walk
// continues with the next entry.
func (t *implTranscriber) Run(ctx context.Context) error {
	if t.cfg.Transcribe.AudioURLTemplate == "" {
		return fmt.Errorf("transcribe.audio_url_template is required")
	}

	entries, err := t.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("catalog has no entries")
	}

	if err := os.MkdirAll(t.cfg.Paths.Transcripts, 0755); err != nil {
		return fmt.Errorf("create transcripts dir: %w", err)
	}

	processed := 0
	for i, entry := range entries {
		if processed >= t.cfg.Transcribe.PerRun {
			break
		}

		mdPath := filepath.Join(t.cfg.Paths.Transcripts, entry.VideoID+".md")
		if t.upToDate(ctx, entry.VideoID, mdPath) {
			t.logger.Debug(ctx, "Transcript up to date for %s, skipping", entry.VideoID)
			continue
		}

		t.logger.Info(ctx, "[%d/%d] Transcribing: %s", i+1, len(entries), entry.VideoID)

		if err := t.transcribeVideo(ctx, entry); err != nil {
			t.logger.Error(ctx, "Failed to transcribe %s: %v", entry.VideoID, err)
			continue
		}

		processed++
	}

	if processed == 0 {
		t.logger.Info(ctx, "No unprocessed livestreams found")
		return nil
	}

	t.logger.Info(ctx, "Transcribed %d video(s)", processed)
	return nil
}

func (t *implTranscriber) transcribeVideo(ctx context.Context, entry catalog.Entry) error {
	title := entry.Title
	if title == "" {
		resolved, err := t.yt.VideoTitle(ctx, entry.VideoID)
		if err != nil {
			t.logger.Warn(ctx, "Failed to resolve title for %s: %v", entry.VideoID, err)
			resolved = "Video " + entry.VideoID
		}
		title = resolved
	}

	audioPath, err := t.fetchAudio(ctx, entry.VideoID)
	if err != nil {
		return fmt.Errorf("fetch audio: %w", err)
	}
	defer t.cleanupTempFile(ctx, audioPath)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.cfg.Transcribe.Model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: t.cfg.Transcribe.Language,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	})
	if err != nil {
		return fmt.Errorf("whisper transcription: %w", err)
	}

	fullJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal verbose result: %w", err)
	}
	fullPath := filepath.Join(t.cfg.Paths.Transcripts, entry.VideoID+"_full.json")
	if err := os.WriteFile(fullPath, fullJSON, 0644); err != nil {
		return fmt.Errorf("write verbose result: %w", err)
	}

	segments := segmentsFromResponse(resp)
	transcribedAt := time.Now().Format("2006-01-02 15:04:05")
	md := renderMarkdown(title, entry.VideoID, t.cfg.Transcribe.Model, transcribedAt, segments, resp.Text)

	mdPath := filepath.Join(t.cfg.Paths.Transcripts, entry.VideoID+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	record := store.Transcript{
		VideoID:       entry.VideoID,
		Title:         title,
		Source:        store.SourceSpeech,
		Blake3Hash:    b3.HashBytes([]byte(md)),
		TranscribedAt: transcribedAt,
	}
	if err := t.store.RecordTranscript(ctx, record); err != nil {
		return fmt.Errorf("record transcript: %w", err)
	}
	if err := t.store.InsertSegments(ctx, entry.VideoID, segments); err != nil {
		return fmt.Errorf("persist segments: %w", err)
	}

	t.logger.Info(ctx, "Transcript written: %s", mdPath)
	return nil
}

// upToDate reports whether the transcript on disk still matches the recorded
// content hash. A file with no store record is trusted as-is; a recorded hash
// that no longer matches the file means the transcript is stale and is redone.
func (t *implTranscriber) upToDate(ctx context.Context, videoID, mdPath string) bool {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return false
	}

	rec, err := t.store.GetTranscript(ctx, videoID)
	if errors.Is(err, store.ErrNotFound) {
		return true
	}
	if err != nil {
		t.logger.Warn(ctx, "Failed to read transcript record for %s: %v", videoID, err)
		return true
	}

	return rec.Blake3Hash == b3.HashBytes(data)
}

func (t *implTranscriber) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	} else {
		t.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}

