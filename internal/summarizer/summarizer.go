package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"
)

const summaryPrompt = `You are an expert at analyzing livestream transcripts. Based on the transcript below, write a DETAILED summary in the same language as the transcript.

Requirements:
- Start with a one-sentence heading describing the topic of the broadcast
- List ALL the main points / segments in order of appearance
- Explain each point in detail, including any important notes, tips or warnings
- Keep technical terms as they appear, with the original term in parentheses when translated
- Use markdown: headings, bullet points, bold for key terms
- End with an "Important notes" section when there is anything worth emphasizing

Transcript:
---
%s
---`

// SummarizeAll reads all transcript markdown files from srcDir, calls Gemini
// for each that has no summary yet, and writes the results into destDir.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	transcripts, err := s.discoverTranscripts(srcDir)
	if err != nil {
		return fmt.Errorf("discover transcripts: %w", err)
	}

	if len(transcripts) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", srcDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcripts to summarize", len(transcripts))

	successCount := 0
	failCount := 0

	for i, path := range transcripts {
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		summaryPath := filepath.Join(destDir, name+".summary.md")
		if fileExists(summaryPath) {
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(transcripts), name)

		if err := s.SummarizeFile(ctx, path, destDir); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			failCount++
			continue
		}
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

// SummarizeFile summarizes a single transcript and writes the summary
// markdown and a docx export of the transcript into destDir.
func (s *implSummarizer) SummarizeFile(ctx context.Context, transcriptPath, destDir string) error {
	content, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(transcriptPath), ".md")

	summary, err := s.callGemini(ctx, string(content))
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	summaryPath := filepath.Join(destDir, name+".summary.md")
	if err := os.WriteFile(summaryPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	docxPath := filepath.Join(destDir, name+".docx")
	if err := transcriptToDocx(name, string(content), docxPath); err != nil {
		s.logger.Warn(ctx, "Failed to export transcript docx for %s: %v", name, err)
	}
	summaryDocxPath := filepath.Join(destDir, name+".summary.docx")
	if err := markdownToDocx(name, summary, summaryDocxPath); err != nil {
		s.logger.Warn(ctx, "Failed to export summary docx for %s: %v", name, err)
	}

	s.logger.Info(ctx, "[DONE] %s -> %s", name, summaryPath)
	return nil
}

// callGemini sends the transcript to Gemini and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	prompt := fmt.Sprintf(summaryPrompt, transcript)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// discoverTranscripts lists transcript markdown files, skipping the readme
// and any summary output that may share the directory.
func (s *implSummarizer) discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		if name == "README.md" || strings.HasSuffix(name, ".summary.md") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)
	return files, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
