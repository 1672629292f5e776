package store

import "context"

// Store records which videos have been transcribed and keeps the segment
// timeline for the speech path.
type Store interface {
	RecordTranscript(ctx context.Context, t Transcript) error
	GetTranscript(ctx context.Context, videoID string) (Transcript, error)
	HasTranscript(ctx context.Context, videoID string) (bool, error)
	InsertSegments(ctx context.Context, videoID string, segments []Segment) error
	Close() error
}

// Transcript is one processed video.
type Transcript struct {
	VideoID       string
	Title         string
	Source        string // "speech" or "captions"
	Blake3Hash    string
	TranscribedAt string
}

// Segment is one timed span of transcript text.
type Segment struct {
	ID      uint64
	Text    string
	StartMs uint64
	EndMs   uint64
}

const (
	SourceSpeech   = "speech"
	SourceCaptions = "captions"
)
