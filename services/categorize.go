// services/categorize.go
package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Categories a feedback comment can be filed under.
var FeedbackCategories = []string{
	"product",
	"pricing",
	"support",
	"shipping",
	"usability",
	"staff",
	"other",
}

// Sentiments the classifier may return.
var FeedbackSentiments = []string{"positive", "neutral", "negative"}

// Categorization is the classifier's verdict for one comment.
type Categorization struct {
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
}

// CategorizeService delegates free-text feedback classification to the LLM
// gateway.
type CategorizeService struct {
	client *anthropic.Client
	model  string
}

func NewCategorizeService() (*CategorizeService, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := os.Getenv("CATEGORIZE_MODEL")
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}

	return &CategorizeService{client: &client, model: model}, nil
}

// Categorize classifies a feedback comment into one category and one
// sentiment. The model answers with two words; anything unrecognized falls
// back to other/neutral rather than failing the request.
func (s *CategorizeService) Categorize(ctx context.Context, comment string) (*Categorization, error) {
	prompt := fmt.Sprintf(
		"Classify this customer feedback.\n\n"+
			"Feedback: %q\n\n"+
			"Reply with exactly two words on one line: a category from [%s] "+
			"and a sentiment from [%s]. No other text.",
		comment,
		strings.Join(FeedbackCategories, ", "),
		strings.Join(FeedbackSentiments, ", "),
	)

	response, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("API call failed: %w", err)
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return parseVerdict(text), nil
}

func parseVerdict(text string) *Categorization {
	verdict := &Categorization{Category: "other", Sentiment: "neutral"}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:")
		for _, c := range FeedbackCategories {
			if word == c {
				verdict.Category = c
			}
		}
		for _, s := range FeedbackSentiments {
			if word == s {
				verdict.Sentiment = s
			}
		}
	}
	return verdict
}
