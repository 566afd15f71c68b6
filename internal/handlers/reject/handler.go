// Package reject classifies negative replies and answers each kind with a
// retention-friendly template.
package reject

import (
	"strings"

	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/common/metrics"
)

// RejectionType is the detected flavor of a negative reply.
type RejectionType string

const (
	NotInterested RejectionType = "not_interested"
	TooExpensive  RejectionType = "too_expensive"
	WrongTiming   RejectionType = "wrong_timing"
	NeedToThink   RejectionType = "need_to_think"
	GeneralNo     RejectionType = "general_no"
)

// rejectionChain is checked in order; the first matching phrase set decides
// the type. "too expensive but not interested" therefore classifies as
// not_interested.
var rejectionChain = []struct {
	rejType RejectionType
	phrases []string
}{
	{NotInterested, []string{"not interested", "don't want", "not looking"}},
	{TooExpensive, []string{"too expensive", "too much", "can't afford", "cost", "price"}},
	{WrongTiming, []string{"not now", "bad timing", "busy", "later"}},
	{NeedToThink, []string{"think about", "consider", "decide", "maybe"}},
}

// ClassifyRejection maps a negative reply to its rejection type. Anything
// without a recognized phrase is a general no.
func ClassifyRejection(body string) RejectionType {
	lower := strings.ToLower(body)
	for _, entry := range rejectionChain {
		for _, phrase := range entry.phrases {
			if strings.Contains(lower, phrase) {
				return entry.rejType
			}
		}
	}
	return GeneralNo
}

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{logger: log.WithFields(map[string]interface{}{"handler": "reject"})}
}

// Handle classifies the rejection, records it for analytics and returns the
// matching response template.
func (h *Handler) Handle(sender, body string) string {
	rejType := ClassifyRejection(body)

	metrics.Rejections.WithLabelValues(string(rejType)).Inc()
	h.logger.Info("rejection recorded", map[string]interface{}{
		"sender": sender,
		"type":   rejType,
	})

	return rejectionResponses[rejType]
}
