package site

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
)

const extractSystemPrompt = "Cleanup the content in the given text to only have the main content. Return a json data structure with a 'content' attribute set only."

// llmExtractor asks a language model to distill near-text into its main
// content. Mechanical stripping cannot remove navigation and boilerplate
// noise; the model can.
type llmExtractor struct {
	llmClient gollem.LLMClient
}

// NewExtractor creates a ContentExtractor backed by a gollem LLM client
func NewExtractor(llmClient gollem.LLMClient) (interfaces.ContentExtractor, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &llmExtractor{llmClient: llmClient}, nil
}

func extractionSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "ExtractedContent",
		Description: "The main content extracted from the text",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"content": {
				Type:        gollem.TypeString,
				Description: "The content extracted from the text",
				Required:    true,
			},
		},
	}
}

func (x *llmExtractor) ExtractContent(ctx context.Context, text string) (string, error) {
	session, err := x.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(extractionSchema()),
		gollem.WithSessionSystemPrompt(extractSystemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(text))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned no content")
	}

	var extracted struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(resp.Texts[0]), &extracted); err != nil {
		return "", goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	return extracted.Content, nil
}
