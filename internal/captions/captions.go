package captions

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nguyentantai21042004/stream-scribe/internal/catalog"
	"github.com/nguyentantai21042004/stream-scribe/internal/store"
	"github.com/nguyentantai21042004/stream-scribe/pkg/b3"
)

type trackList struct {
	XMLName xml.Name `xml:"transcript_list"`
	Tracks  []track  `xml:"track"`
}

type track struct {
	LangCode string `xml:"lang_code,attr"`
	Lang     string `xml:"lang_original,attr"`
	Name     string `xml:"name,attr"`
	Kind     string `xml:"kind,attr"`
}

type timedText struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// Run walks the catalog and fetches captions for up to captions.limit videos
// without a transcript yet, pausing between videos to stay polite.
func (f *implFetcher) Run(ctx context.Context) error {
	entries, err := f.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("catalog has no entries")
	}

	if err := os.MkdirAll(f.cfg.Paths.Transcripts, 0755); err != nil {
		return fmt.Errorf("create transcripts dir: %w", err)
	}

	processed := 0
	attempted := 0
	for i, entry := range entries {
		if processed >= f.cfg.Captions.Limit {
			break
		}

		mdPath := filepath.Join(f.cfg.Paths.Transcripts, entry.VideoID+".md")
		if f.upToDate(ctx, entry.VideoID, mdPath) {
			f.logger.Debug(ctx, "Transcript up to date for %s, skipping", entry.VideoID)
			continue
		}

		f.logger.Info(ctx, "[%d/%d] Fetching captions: %s", i+1, len(entries), entry.VideoID)

		// Pause between every attempt, successful or not.
		if attempted > 0 {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		attempted++

		if err := f.processVideo(ctx, entry, mdPath); err != nil {
			f.logger.Error(ctx, "Failed to fetch captions for %s: %v", entry.VideoID, err)
			continue
		}

		processed++
	}

	f.logger.Info(ctx, "Fetched captions for %d video(s)", processed)
	return nil
}

func (f *implFetcher) processVideo(ctx context.Context, entry catalog.Entry, mdPath string) error {
	transcript, err := f.FetchTranscript(ctx, entry.VideoID)
	if err != nil {
		return err
	}

	md := renderMarkdown(entry.Title, transcript, time.Now())
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	title := entry.Title
	if title == "" {
		title = "Video " + entry.VideoID
	}
	record := store.Transcript{
		VideoID:       entry.VideoID,
		Title:         title,
		Source:        store.SourceCaptions,
		Blake3Hash:    b3.HashBytes([]byte(md)),
		TranscribedAt: time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := f.store.RecordTranscript(ctx, record); err != nil {
		return fmt.Errorf("record transcript: %w", err)
	}
	if err := f.store.InsertSegments(ctx, entry.VideoID, segmentsFromLines(transcript.Lines)); err != nil {
		return fmt.Errorf("persist segments: %w", err)
	}

	f.logger.Info(ctx, "Transcript written: %s", mdPath)
	return nil
}

// FetchTranscript lists the caption tracks for a video, picks one by language
// priority and downloads it.
func (f *implFetcher) FetchTranscript(ctx context.Context, videoID string) (*Transcript, error) {
	tracks, err := f.listTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks for video %s", videoID)
	}

	chosen, ok := pickTrack(tracks, f.cfg.Captions.Languages)
	if !ok {
		return nil, fmt.Errorf("no caption track matches languages %v", f.cfg.Captions.Languages)
	}

	lines, err := f.fetchTrack(ctx, videoID, chosen)
	if err != nil {
		return nil, err
	}

	return &Transcript{
		VideoID:      videoID,
		Language:     chosen.Lang,
		LanguageCode: chosen.LangCode,
		IsGenerated:  chosen.Kind == "asr",
		Lines:        lines,
	}, nil
}

func (f *implFetcher) listTracks(ctx context.Context, videoID string) ([]track, error) {
	params := url.Values{}
	params.Set("type", "list")
	params.Set("v", videoID)

	body, err := f.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list caption tracks: %w", err)
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse track list: %w", err)
	}

	return list.Tracks, nil
}

func (f *implFetcher) fetchTrack(ctx context.Context, videoID string, t track) ([]Line, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", t.LangCode)
	if t.Name != "" {
		params.Set("name", t.Name)
	}
	if t.Kind != "" {
		params.Set("kind", t.Kind)
	}

	body, err := f.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetch caption track: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse caption track: %w", err)
	}

	lines := make([]Line, 0, len(tt.Texts))
	for _, text := range tt.Texts {
		clean := strings.TrimSpace(html.UnescapeString(text.Text))
		clean = strings.ReplaceAll(clean, "\n", " ")
		if clean == "" {
			continue
		}
		lines = append(lines, Line{Start: text.Start, Dur: text.Dur, Text: clean})
	}

	return lines, nil
}

func (f *implFetcher) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// pickTrack walks the preferred languages in order, matching exact codes
// first, then prefixes (en matches en-US). Manual tracks win over
// auto-generated ones for the same language.
func pickTrack(tracks []track, languages []string) (track, bool) {
	for _, lang := range languages {
		var generated *track
		for i, t := range tracks {
			if t.LangCode != lang && !strings.HasPrefix(t.LangCode, lang+"-") {
				continue
			}
			if t.Kind == "asr" {
				if generated == nil {
					generated = &tracks[i]
				}
				continue
			}
			return t, true
		}
		if generated != nil {
			return *generated, true
		}
	}
	return track{}, false
}

func segmentsFromLines(lines []Line) []store.Segment {
	segments := make([]store.Segment, len(lines))
	for n, line := range lines {
		start := decimal.NewFromFloat(line.Start)
		end := start.Add(decimal.NewFromFloat(line.Dur))
		segments[n] = store.Segment{
			ID:      uint64(n),
			Text:    line.Text,
			StartMs: start.Mul(decimal.NewFromInt(1000)).BigInt().Uint64(),
			EndMs:   end.Mul(decimal.NewFromInt(1000)).BigInt().Uint64(),
		}
	}
	return segments
}

// upToDate reports whether the transcript on disk still matches the recorded
// content hash. A file with no store record is trusted as-is; a recorded hash
// that no longer matches the file means the transcript is stale and is redone.
func (f *implFetcher) upToDate(ctx context.Context, videoID, mdPath string) bool {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return false
	}

	rec, err := f.store.GetTranscript(ctx, videoID)
	if errors.Is(err, store.ErrNotFound) {
		return true
	}
	if err != nil {
		f.logger.Warn(ctx, "Failed to read transcript record for %s: %v", videoID, err)
		return true
	}

	return rec.Blake3Hash == b3.HashBytes(data)
}
