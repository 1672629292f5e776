package captions

import "context"

// Fetcher pulls published caption tracks for catalog videos and writes
// markdown transcripts.
type Fetcher interface {
	Run(ctx context.Context) error
	FetchTranscript(ctx context.Context, videoID string) (*Transcript, error)
}

// Transcript is a fetched caption track.
type Transcript struct {
	VideoID      string
	Language     string
	LanguageCode string
	IsGenerated  bool
	Lines        []Line
}

// Line is one caption cue.
type Line struct {
	Start float64
	Dur   float64
	Text  string
}
