// Package parser turns raw message text into a classified, entity-annotated
// ParsedMessage. Classification is pure keyword/regex scoring against a fixed
// pattern table; there is no learned model and no external call.
package parser

import (
	"strings"

	"whatsapp-orderbot/internal/models"
)

// Parse classifies a raw inbound message and extracts its entities. The result
// is created fresh per message and never mutated afterwards.
func Parse(text string) models.ParsedMessage {
	normalized := strings.ToLower(strings.TrimSpace(text))
	intent, confidence := Classify(normalized)

	return models.ParsedMessage{
		OriginalMessage: text,
		Intent:          intent,
		Confidence:      confidence,
		Entities:        ExtractEntities(text),
		MessageLength:   len(text),
		WordCount:       len(strings.Fields(text)),
	}
}
