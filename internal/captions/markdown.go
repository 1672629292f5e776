package captions

import (
	"fmt"
	"strings"
	"time"
)

// paragraphWindow groups caption lines into one paragraph per five minutes of
// video time.
const paragraphWindow = 5 * 60

// renderMarkdown formats a caption transcript as markdown: a header block,
// the transcript grouped into time-windowed paragraphs, and a generation
// footer.
func renderMarkdown(title string, t *Transcript, now time.Time) string {
	var b strings.Builder

	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	} else {
		fmt.Fprintf(&b, "# Transcript of YouTube video %s\n\n", t.VideoID)
	}
	fmt.Fprintf(&b, "- URL: https://www.youtube.com/watch?v=%s\n", t.VideoID)
	fmt.Fprintf(&b, "- Language: %s (%s)\n", t.Language, t.LanguageCode)
	fmt.Fprintf(&b, "- Auto-generated: %s\n\n", yesNo(t.IsGenerated))

	b.WriteString("## Transcript\n\n")

	for _, paragraph := range groupIntoParagraphs(t.Lines) {
		b.WriteString(paragraph)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "Generated at: %s\n", now.Format("2006-01-02 15:04:05"))

	return b.String()
}

// groupIntoParagraphs merges consecutive lines into paragraphs, starting a
// new paragraph whenever the cue start crosses into the next window.
func groupIntoParagraphs(lines []Line) []string {
	var (
		paragraphs []string
		current    []string
		window     int
	)

	for _, line := range lines {
		w := int(line.Start) / paragraphWindow
		if w > window && len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
			window = w
		}
		current = append(current, line.Text)
	}

	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	return paragraphs
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
