package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/stream-scribe/internal/catalog"
	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
	"github.com/nguyentantai21042004/stream-scribe/internal/store"
	"github.com/nguyentantai21042004/stream-scribe/internal/youtube"
	"github.com/nguyentantai21042004/stream-scribe/pkg/b3"
)

type fakeSource struct {
	entries []catalog.Entry
}

func (f *fakeSource) Load(ctx context.Context) ([]catalog.Entry, error) {
	return f.entries, nil
}

type fakeYouTube struct{}

func (f *fakeYouTube) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	return "", fmt.Errorf("not implemented")
}
func (f *fakeYouTube) ChannelInfo(ctx context.Context, channelID string) (*youtube.ChannelInfo, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeYouTube) Livestreams(ctx context.Context, channelID string, maxResults int) ([]youtube.Livestream, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeYouTube) VideoTitle(ctx context.Context, videoID string) (string, error) {
	return "Resolved Title", nil
}
func (f *fakeYouTube) BuildCatalog(ctx context.Context, channelURL string, maxResults int) (*youtube.Catalog, error) {
	return nil, fmt.Errorf("not implemented")
}

func newTestTranscriber(t *testing.T, entries []catalog.Entry) (*implTranscriber, store.Store) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/audio/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake-mp3-bytes"))
	})
	mux.HandleFunc("/openai/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"task":"transcribe","language":"ja","duration":1.5,"text":"hello world","segments":[{"id":0,"start":0,"end":1.5,"text":" hello world"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := &config.Config{
		Transcribe: config.TranscribeConfig{
			Model:            "whisper-large-v3-turbo",
			Language:         "ja",
			AudioURLTemplate: srv.URL + "/audio/%s.mp3",
			PerRun:           1,
		},
		Paths: config.PathsConfig{
			Transcripts: filepath.Join(dir, "transcripts"),
			Temp:        filepath.Join(dir, "temp"),
		},
	}

	st, err := store.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	clientCfg := openai.DefaultConfig("test-key")
	clientCfg.BaseURL = srv.URL + "/openai"

	tr := &implTranscriber{
		cfg:        cfg,
		source:     &fakeSource{entries: entries},
		yt:         &fakeYouTube{},
		store:      st,
		client:     openai.NewClientWithConfig(clientCfg),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.New("error"),
	}
	return tr, st
}

func TestRunTranscribesOneVideo(t *testing.T) {
	ctx := context.Background()
	tr, st := newTestTranscriber(t, []catalog.Entry{
		{VideoID: "vid0000000A", Title: "Morning Show"},
		{VideoID: "vid0000000B", Title: "Evening Show"},
	})

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mdPath := filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000A.md")
	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("transcript not written: %v", err)
	}
	if !strings.Contains(string(md), "# Morning Show") {
		t.Errorf("markdown missing title:\n%s", md)
	}
	if !strings.Contains(string(md), "[00:00:00 --> 00:00:01] hello world") {
		t.Errorf("markdown missing segment line:\n%s", md)
	}

	if _, err := os.Stat(filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000A_full.json")); err != nil {
		t.Errorf("verbose json not written: %v", err)
	}

	// per_run caps at one video per invocation
	if _, err := os.Stat(filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000B.md")); err == nil {
		t.Error("second video should not be processed in the same run")
	}

	rec, err := st.GetTranscript(ctx, "vid0000000A")
	if err != nil {
		t.Fatalf("transcript not recorded: %v", err)
	}
	if rec.Source != store.SourceSpeech {
		t.Errorf("Source = %q, want %q", rec.Source, store.SourceSpeech)
	}
	if rec.Blake3Hash == "" {
		t.Error("Blake3Hash not recorded")
	}
}

func TestRunSkipsExistingTranscript(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTranscriber(t, []catalog.Entry{{VideoID: "vid0000000A", Title: "t"}})

	if err := os.MkdirAll(tr.cfg.Paths.Transcripts, 0755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000A.md")
	if err := os.WriteFile(existing, []byte("already here"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	md, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(md) != "already here" {
		t.Error("existing transcript should not be overwritten")
	}
}

func TestRunSkipsMatchingRecordedTranscript(t *testing.T) {
	ctx := context.Background()
	tr, st := newTestTranscriber(t, []catalog.Entry{{VideoID: "vid0000000A", Title: "t"}})

	if err := os.MkdirAll(tr.cfg.Paths.Transcripts, 0755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000A.md")
	if err := os.WriteFile(existing, []byte("already here"), 0644); err != nil {
		t.Fatal(err)
	}
	rec := store.Transcript{
		VideoID:       "vid0000000A",
		Title:         "t",
		Source:        store.SourceSpeech,
		Blake3Hash:    b3.HashBytes([]byte("already here")),
		TranscribedAt: "2025-01-01 09:00:00",
	}
	if err := st.RecordTranscript(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	md, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(md) != "already here" {
		t.Error("transcript matching its recorded hash should not be redone")
	}
}

func TestRunRedoesStaleTranscript(t *testing.T) {
	ctx := context.Background()
	tr, st := newTestTranscriber(t, []catalog.Entry{{VideoID: "vid0000000A", Title: "t"}})

	if err := os.MkdirAll(tr.cfg.Paths.Transcripts, 0755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000A.md")
	if err := os.WriteFile(existing, []byte("tampered content"), 0644); err != nil {
		t.Fatal(err)
	}
	rec := store.Transcript{
		VideoID:       "vid0000000A",
		Title:         "t",
		Source:        store.SourceSpeech,
		Blake3Hash:    b3.HashBytes([]byte("the content that was originally written")),
		TranscribedAt: "2025-01-01 09:00:00",
	}
	if err := st.RecordTranscript(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	md, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "[00:00:00 --> 00:00:01] hello world") {
		t.Errorf("transcript with a stale recorded hash should be redone:\n%s", md)
	}

	updated, err := st.GetTranscript(ctx, "vid0000000A")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Blake3Hash != b3.HashBytes(md) {
		t.Error("recorded hash should match the rewritten transcript")
	}
}

func TestRunRequiresAudioTemplate(t *testing.T) {
	tr, _ := newTestTranscriber(t, []catalog.Entry{{VideoID: "vid0000000A"}})
	tr.cfg.Transcribe.AudioURLTemplate = ""

	if err := tr.Run(context.Background()); err == nil {
		t.Error("Run() should fail without an audio URL template")
	}
}

func TestRunUsesResolvedTitle(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTranscriber(t, []catalog.Entry{{VideoID: "vid0000000A"}})

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	md, err := os.ReadFile(filepath.Join(tr.cfg.Paths.Transcripts, "vid0000000A.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "# Resolved Title") {
		t.Errorf("markdown should use the oEmbed title:\n%s", md)
	}
}
