package interfaces

import "context"

// ContentExtractor distills raw page text into its main content. The site
// loader depends on this single method so the LLM backend can be swapped
// out in tests.
type ContentExtractor interface {
	ExtractContent(ctx context.Context, text string) (string, error)
}
