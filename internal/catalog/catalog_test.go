package catalog

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"https://example.com/page", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractVideoID(tt.url); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestLoadLocalFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "wrapped livestreams",
			content: `{"livestreams":[{"id":"vid0000000A","title":"first","url":"https://www.youtube.com/watch?v=vid0000000A"},{"url":"https://youtu.be/vid0000000B"}]}`,
			want:    2,
		},
		{
			name:    "wrapped episodes",
			content: `{"episodes":[{"id":"vid0000000A"}]}`,
			want:    1,
		},
		{
			name:    "bare list of urls",
			content: `["https://www.youtube.com/watch?v=vid0000000A","https://example.com/nothing"]`,
			want:    1,
		},
		{
			name:    "url in arbitrary field",
			content: `{"videos":[{"watch_link":"https://youtu.be/vid0000000C"}]}`,
			want:    1,
		},
		{
			name:    "no list key",
			content: `{"channel":{"id":"UCx"}}`,
			wantErr: true,
		},
		{
			name:    "empty file",
			content: ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "livestreams.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			src := New(config.CatalogConfig{File: path}, "", logger.New("error"))
			entries, err := src.Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(entries) != tt.want {
				t.Errorf("Load() returned %d entries, want %d", len(entries), tt.want)
			}
		})
	}
}

func TestLoadEntryFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livestreams.json")
	content := `{"livestreams":[{"id":"vid0000000A","title":"Morning Show","url":"https://www.youtube.com/watch?v=vid0000000A"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src := New(config.CatalogConfig{File: path}, "", logger.New("error"))
	entries, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if entries[0].VideoID != "vid0000000A" {
		t.Errorf("VideoID = %q", entries[0].VideoID)
	}
	if entries[0].Title != "Morning Show" {
		t.Errorf("Title = %q", entries[0].Title)
	}
}

func TestLoadFromGitHub(t *testing.T) {
	catalogJSON := `{"livestreams":[{"id":"vid0000000A","title":"archived"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/someowner/somerepo/contents/livestreams.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "token gh-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(catalogJSON))
		fmt.Fprintf(w, `{"content":%q,"encoding":"base64"}`, encoded)
	}))
	defer srv.Close()

	src := New(config.CatalogConfig{
		Owner: "someowner",
		Repo:  "somerepo",
		Path:  "livestreams.json",
	}, "gh-token", logger.New("error")).(*implSource)
	src.apiBaseURL = srv.URL

	entries, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 1 || entries[0].VideoID != "vid0000000A" {
		t.Errorf("Load() = %+v", entries)
	}
}

func TestLoadFromGitHubError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	src := New(config.CatalogConfig{Owner: "o", Repo: "r", Path: "p"}, "", logger.New("error")).(*implSource)
	src.apiBaseURL = srv.URL

	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() should fail on a 404 from the contents API")
	}
}
