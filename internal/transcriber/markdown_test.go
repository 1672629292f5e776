package transcriber

import (
	"strings"
	"testing"

	"github.com/nguyentantai21042004/stream-scribe/internal/store"
)

func TestSecondsToMs(t *testing.T) {
	tests := []struct {
		seconds float64
		want    uint64
	}{
		{0, 0},
		{1.5, 1500},
		{0.001, 1},
		{3723.042, 3723042},
	}

	for _, tt := range tests {
		if got := secondsToMs(tt.seconds); got != tt.want {
			t.Errorf("secondsToMs(%v) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTimestampMs(t *testing.T) {
	tests := []struct {
		ms   uint64
		want string
	}{
		{0, "00:00:00"},
		{1500, "00:00:01"},
		{61000, "00:01:01"},
		{3723042, "01:02:03"},
	}

	for _, tt := range tests {
		if got := formatTimestampMs(tt.ms); got != tt.want {
			t.Errorf("formatTimestampMs(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	segments := []store.Segment{
		{ID: 0, Text: "opening remarks", StartMs: 0, EndMs: 4000},
		{ID: 1, Text: "main topic", StartMs: 4000, EndMs: 65000},
	}

	md := renderMarkdown("Morning Show", "vid0000000A", "whisper-large-v3-turbo", "2025-01-01 09:00:00", segments, "")

	for _, want := range []string{
		"# Morning Show\n",
		"Video ID: vid0000000A\n",
		"Transcribed at: 2025-01-01 09:00:00\n",
		"Transcription by: Groq API (whisper-large-v3-turbo)\n",
		"## Transcript\n",
		"[00:00:00 --> 00:00:04] opening remarks\n",
		"[00:00:04 --> 00:01:05] main topic\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownNoSegments(t *testing.T) {
	md := renderMarkdown("t", "vid0000000A", "m", "now", nil, "just the plain text body")

	if !strings.Contains(md, "just the plain text body") {
		t.Errorf("markdown should fall back to plain text:\n%s", md)
	}
	if strings.Contains(md, "-->") {
		t.Errorf("markdown should have no timestamps without segments:\n%s", md)
	}
}
