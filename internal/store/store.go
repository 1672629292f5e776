package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no transcript is recorded for a video.
var ErrNotFound = errors.New("transcript not found")

type implStore struct {
	db *sql.DB
}

const schema = `
PRAGMA busy_timeout  = 10000;
PRAGMA journal_mode  = WAL;
PRAGMA synchronous   = NORMAL;
PRAGMA foreign_keys  = ON;

create table if not exists transcripts (
	video_id       text primary key not null,
	title          text not null,
	source         text not null,
	blake3_hash    text not null,
	transcribed_at text not null
);

create table if not exists segments (
	id        integer not null,
	video_id  text not null,
	text      text not null,
	start_ms  integer not null,
	end_ms    integer not null,
	primary key (id, video_id)
);`

// Open opens (creating if needed) the pipeline state database.
func Open(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &implStore{db: db}, nil
}

func (s *implStore) Close() error {
	return s.db.Close()
}

// RecordTranscript upserts the processed-video row. Re-recording the same
// video replaces the hash and timestamp.
func (s *implStore) RecordTranscript(ctx context.Context, t Transcript) error {
	_, err := s.db.ExecContext(ctx, `
		insert into transcripts (video_id, title, source, blake3_hash, transcribed_at)
		values ($1, $2, $3, $4, $5)
		on conflict (video_id) do update set
			title = excluded.title,
			source = excluded.source,
			blake3_hash = excluded.blake3_hash,
			transcribed_at = excluded.transcribed_at`,
		t.VideoID, t.Title, t.Source, t.Blake3Hash, t.TranscribedAt,
	)
	if err != nil {
		return fmt.Errorf("persisting transcript: %w", err)
	}

	return nil
}

func (s *implStore) GetTranscript(ctx context.Context, videoID string) (Transcript, error) {
	res := Transcript{}

	err := s.db.
		QueryRowContext(
			ctx,
			"select video_id, title, source, blake3_hash, transcribed_at from transcripts where video_id = $1",
			videoID,
		).
		Scan(&res.VideoID, &res.Title, &res.Source, &res.Blake3Hash, &res.TranscribedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ErrNotFound
	}
	if err != nil {
		return res, fmt.Errorf("get transcript: %w", err)
	}

	return res, nil
}

func (s *implStore) HasTranscript(ctx context.Context, videoID string) (bool, error) {
	_, err := s.GetTranscript(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InsertSegments replaces the segment timeline for a video in one
// transaction using a single batched insert.
func (s *implStore) InsertSegments(ctx context.Context, videoID string, segments []Segment) error {
	if len(segments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("inserting segments: begin trx: %w", err)
	}

	if err := s.insertSegments(ctx, tx, videoID, segments); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback insert segments: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("inserting segments: commiting: %w", err)
	}

	return nil
}

func (s *implStore) insertSegments(ctx context.Context, tx *sql.Tx, videoID string, segments []Segment) error {
	if _, err := tx.ExecContext(ctx, "delete from segments where video_id = $1", videoID); err != nil {
		return fmt.Errorf("clearing old segments: %w", err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString("insert into segments (id, video_id, text, start_ms, end_ms) values ")

	args := make([]any, 0, 5*len(segments))
	for n, seg := range segments {
		if n > 0 {
			queryBuilder.WriteString(", ")
		}
		b := n * 5
		fmt.Fprintf(&queryBuilder, "($%d, $%d, $%d, $%d, $%d)", b+1, b+2, b+3, b+4, b+5)
		args = append(args, seg.ID, videoID, seg.Text, seg.StartMs, seg.EndMs)
	}

	if _, err := tx.ExecContext(ctx, queryBuilder.String(), args...); err != nil {
		return fmt.Errorf("inserting segments: %w", err)
	}

	return nil
}
