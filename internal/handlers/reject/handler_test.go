package reject

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"whatsapp-orderbot/internal/common/logger"
)

func TestClassifyRejection(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected RejectionType
	}{
		{"not interested", "I'm not interested, thanks", NotInterested},
		{"don't want", "I don't want this", NotInterested},
		{"too expensive", "that's way too expensive", TooExpensive},
		{"cost mention", "the cost is prohibitive", TooExpensive},
		{"wrong timing", "not now, I'm busy", WrongTiming},
		{"later", "maybe call me later", WrongTiming},
		{"need to think", "let me think about it", NeedToThink},
		{"maybe alone", "hmm, maybe", NeedToThink},
		{"plain no", "no thanks", GeneralNo},
		{"empty message", "", GeneralNo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRejection(tt.body))
		})
	}
}

func TestClassifyRejection_PriorityOrder(t *testing.T) {
	// Phrases from two types; the earlier chain entry wins.
	assert.Equal(t, NotInterested, ClassifyRejection("too expensive and I'm not interested"))
	assert.Equal(t, TooExpensive, ClassifyRejection("the price is too much, let me think about it"))
}

func TestHandle_ReturnsTemplateForType(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"not interested", "not interested", "We respect your decision"},
		{"too expensive", "too expensive for me", "Money-Saving Options"},
		{"wrong timing", "bad timing", "timing is everything"},
		{"need to think", "I need to consider this", "Take your time!"},
		{"general no", "nope", "Thank you for being direct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, h.Handle("+15550001", tt.body), tt.expected)
		})
	}
}
