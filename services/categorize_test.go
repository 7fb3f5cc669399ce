package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		category  string
		sentiment string
	}{
		{"clean answer", "support negative", "support", "negative"},
		{"reversed order", "positive pricing", "pricing", "positive"},
		{"with punctuation", "Usability, neutral.", "usability", "neutral"},
		{"mixed case", "SHIPPING Negative", "shipping", "negative"},
		{"chatty model", "The category is product and the sentiment is positive", "product", "positive"},
		{"garbage", "I cannot classify this", "other", "neutral"},
		{"empty", "", "other", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := parseVerdict(tt.text)
			assert.Equal(t, tt.category, verdict.Category)
			assert.Equal(t, tt.sentiment, verdict.Sentiment)
		})
	}
}
