package transcriber

import (
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"github.com/nguyentantai21042004/stream-scribe/internal/store"
)

var msPerSecond = decimal.NewFromInt(1000)

// segmentsFromResponse converts the verbose Whisper result into millisecond
// segments. Timestamps arrive as fractional seconds; decimal keeps the
// conversion exact instead of accumulating float error.
func segmentsFromResponse(resp openai.AudioResponse) []store.Segment {
	segments := make([]store.Segment, len(resp.Segments))
	for n, s := range resp.Segments {
		segments[n] = store.Segment{
			ID:      uint64(n),
			Text:    strings.TrimSpace(s.Text),
			StartMs: secondsToMs(s.Start),
			EndMs:   secondsToMs(s.End),
		}
	}
	return segments
}

func secondsToMs(seconds float64) uint64 {
	return decimal.NewFromFloat(seconds).Mul(msPerSecond).BigInt().Uint64()
}

// formatTimestampMs renders milliseconds as HH:MM:SS.
func formatTimestampMs(ms uint64) string {
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// renderMarkdown produces the readable transcript file: a header block
// followed by one timestamped paragraph per segment. When the API returned no
// segments the plain text body is used instead.
func renderMarkdown(title, videoID, model, transcribedAt string, segments []store.Segment, plainText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Video ID: %s\n", videoID)
	fmt.Fprintf(&b, "Transcribed at: %s\n", transcribedAt)
	fmt.Fprintf(&b, "Transcription by: Groq API (%s)\n\n", model)
	b.WriteString("## Transcript\n\n")

	if len(segments) == 0 {
		b.WriteString(plainText)
		b.WriteString("\n")
		return b.String()
	}

	for _, seg := range segments {
		fmt.Fprintf(&b, "[%s --> %s] %s\n\n",
			formatTimestampMs(seg.StartMs),
			formatTimestampMs(seg.EndMs),
			seg.Text,
		)
	}

	return b.String()
}
