package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGetTranscript(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tr := Transcript{
		VideoID:       "vid0000000A",
		Title:         "Morning Show",
		Source:        SourceSpeech,
		Blake3Hash:    "abc123",
		TranscribedAt: "2025-01-01T00:00:00Z",
	}
	if err := s.RecordTranscript(ctx, tr); err != nil {
		t.Fatalf("RecordTranscript() error = %v", err)
	}

	got, err := s.GetTranscript(ctx, "vid0000000A")
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if got != tr {
		t.Errorf("GetTranscript() = %+v, want %+v", got, tr)
	}
}

func TestRecordTranscriptUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := Transcript{VideoID: "vid0000000A", Title: "t", Source: SourceCaptions, Blake3Hash: "h1", TranscribedAt: "2025-01-01T00:00:00Z"}
	second := first
	second.Blake3Hash = "h2"

	if err := s.RecordTranscript(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordTranscript(ctx, second); err != nil {
		t.Fatalf("RecordTranscript() upsert error = %v", err)
	}

	got, err := s.GetTranscript(ctx, "vid0000000A")
	if err != nil {
		t.Fatal(err)
	}
	if got.Blake3Hash != "h2" {
		t.Errorf("Blake3Hash = %q, want h2", got.Blake3Hash)
	}
}

func TestGetTranscriptNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetTranscript(context.Background(), "missing0000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTranscript() error = %v, want ErrNotFound", err)
	}
}

func TestHasTranscript(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	has, err := s.HasTranscript(ctx, "missing0000")
	if err != nil {
		t.Fatalf("HasTranscript() error = %v", err)
	}
	if has {
		t.Error("HasTranscript() = true for missing video")
	}

	if err := s.RecordTranscript(ctx, Transcript{VideoID: "vid0000000A", Title: "t", Source: SourceSpeech, Blake3Hash: "h", TranscribedAt: "now"}); err != nil {
		t.Fatal(err)
	}

	has, err = s.HasTranscript(ctx, "vid0000000A")
	if err != nil {
		t.Fatalf("HasTranscript() error = %v", err)
	}
	if !has {
		t.Error("HasTranscript() = false for recorded video")
	}
}

func TestInsertSegments(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	segs := []Segment{
		{ID: 0, Text: "hello", StartMs: 0, EndMs: 1500},
		{ID: 1, Text: "world", StartMs: 1500, EndMs: 3200},
	}
	if err := s.InsertSegments(ctx, "vid0000000A", segs); err != nil {
		t.Fatalf("InsertSegments() error = %v", err)
	}

	// Re-inserting must replace, not duplicate.
	if err := s.InsertSegments(ctx, "vid0000000A", segs); err != nil {
		t.Fatalf("InsertSegments() replace error = %v", err)
	}

	impl := s.(*implStore)
	var count int
	if err := impl.db.QueryRowContext(ctx, "select count(*) from segments where video_id = $1", "vid0000000A").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("segment count = %d, want 2", count)
	}
}

func TestInsertSegmentsEmpty(t *testing.T) {
	s := openTestStore(t)
	if err := s.InsertSegments(context.Background(), "vid0000000A", nil); err != nil {
		t.Errorf("InsertSegments(nil) error = %v", err)
	}
}
