package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
)

var reVideoID = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// Load reads the catalog from its configured location and flattens it into
// entries with resolved video IDs. Rows without a recognizable video are
// dropped with a warning rather than failing the whole run.
func (s *implSource) Load(ctx context.Context) ([]Entry, error) {
	var (
		data []byte
		err  error
	)

	if s.cfg.Owner != "" && s.cfg.Repo != "" {
		data, err = s.fetchFromGitHub(ctx)
	} else {
		data, err = os.ReadFile(s.cfg.File)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rows, err := normalize(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	var entries []Entry
	for _, row := range rows {
		entry, ok := rowToEntry(row)
		if !ok {
			s.logger.Warn(ctx, "Skipping catalog row without a video ID")
			continue
		}
		entries = append(entries, entry)
	}

	s.logger.Info(ctx, "Catalog loaded: %d entries", len(entries))
	return entries, nil
}

// fetchFromGitHub pulls the catalog file through the contents API and decodes
// the base64 payload.
func (s *implSource) fetchFromGitHub(ctx context.Context) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.apiBaseURL, s.cfg.Owner, s.cfg.Repo, s.cfg.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build contents request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch contents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("contents API returned status %d: %s", resp.StatusCode, string(body))
	}

	var contents struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return nil, fmt.Errorf("decode contents response: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(contents.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decode file content: %w", err)
	}

	return decoded, nil
}

// normalize accepts the historical catalog shapes: a bare list, or an object
// wrapping the list under livestreams, episodes or videos.
func normalize(data []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("catalog is empty")
	}

	if trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}

	for _, key := range []string{"livestreams", "episodes", "videos"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("'%s' is not a list: %w", key, err)
		}
		return list, nil
	}

	return nil, fmt.Errorf("no livestream list found in catalog")
}

// rowToEntry resolves a video ID from a catalog row. Rows are either plain
// URL strings or objects carrying id/url fields; as a last resort any string
// field containing a YouTube link is scanned.
func rowToEntry(row json.RawMessage) (Entry, bool) {
	var asString string
	if err := json.Unmarshal(row, &asString); err == nil {
		if id := ExtractVideoID(asString); id != "" {
			return Entry{VideoID: id, URL: asString}, true
		}
		return Entry{}, false
	}

	var asObject map[string]interface{}
	if err := json.Unmarshal(row, &asObject); err != nil {
		return Entry{}, false
	}

	entry := Entry{}
	if title, ok := asObject["title"].(string); ok {
		entry.Title = title
	}
	if url, ok := asObject["url"].(string); ok {
		entry.URL = url
	}

	if id, ok := asObject["id"].(string); ok && id != "" {
		entry.VideoID = id
		return entry, true
	}
	if entry.URL != "" {
		if id := ExtractVideoID(entry.URL); id != "" {
			entry.VideoID = id
			return entry, true
		}
	}
	for _, v := range asObject {
		str, ok := v.(string)
		if !ok {
			continue
		}
		if id := ExtractVideoID(str); id != "" {
			entry.VideoID = id
			return entry, true
		}
	}

	return Entry{}, false
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
func ExtractVideoID(url string) string {
	m := reVideoID.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
