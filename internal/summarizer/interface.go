package summarizer

import "context"

// Summarizer reads transcript markdown files and produces LLM-generated
// summaries alongside docx exports.
type Summarizer interface {
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
	SummarizeFile(ctx context.Context, transcriptPath, destDir string) error
}
