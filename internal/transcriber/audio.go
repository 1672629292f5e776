package transcriber

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// fetchAudio downloads the audio for a video into the temp directory and
// returns the file path. The caller removes the file when done.
func (t *implTranscriber) fetchAudio(ctx context.Context, videoID string) (string, error) {
	audioURL := fmt.Sprintf(t.cfg.Transcribe.AudioURLTemplate, videoID)

	if err := os.MkdirAll(t.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", fmt.Errorf("build audio request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("audio download returned status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp(t.cfg.Paths.Temp, "audio-"+videoID+"-*.mp3")
	if err != nil {
		return "", fmt.Errorf("create audio temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("save audio: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close audio file: %w", err)
	}

	t.logger.Debug(ctx, "Audio downloaded: %s", f.Name())
	return f.Name(), nil
}
