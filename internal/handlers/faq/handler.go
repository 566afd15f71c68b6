// Package faq serves canned answers for the informational intents and scores
// free-form questions against a fixed keyword catalogue.
package faq

import (
	"strings"
	"time"

	"whatsapp-orderbot/internal/common/config"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/models"
)

// faqCategory pairs a keyword set with its answer. Catalogue order is the
// tie-break when two categories score the same.
type faqCategory struct {
	name     string
	keywords []string
	response func(h *Handler) string
}

var catalogue = []faqCategory{
	{"hours", []string{"hours", "time", "open", "close", "when", "working"}, (*Handler).hoursResponse},
	{"contact", []string{"contact", "phone", "email", "address", "reach", "call"}, (*Handler).contactResponse},
	{"delivery", []string{"delivery", "shipping", "ship", "deliver", "how long"}, func(*Handler) string { return deliveryText }},
	{"payment", []string{"payment", "pay", "price", "cost", "money", "credit"}, func(*Handler) string { return paymentText }},
	{"returns", []string{"return", "refund", "exchange", "warranty"}, func(*Handler) string { return returnsText }},
	{"products", []string{"products", "catalog", "items", "sell", "available"}, func(*Handler) string { return productsText }},
}

type Handler struct {
	cfg    config.BotConfig
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(cfg config.BotConfig, log logger.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"handler": "faq"}),
		now:    time.Now,
	}
}

// Handle answers the informational intents. Anything unrecognized gets the
// help text.
func (h *Handler) Handle(intent models.Intent, body string) string {
	switch intent {
	case models.IntentFaqHours:
		return h.hoursResponse()
	case models.IntentFaqContact:
		return h.contactResponse()
	case models.IntentHelp:
		return h.helpResponse()
	case models.IntentFaqGeneral:
		return h.answerGeneral(body)
	default:
		return h.helpResponse()
	}
}

// answerGeneral picks the category with the most keyword hits; zero hits fall
// back to help.
func (h *Handler) answerGeneral(body string) string {
	lower := strings.ToLower(body)

	bestScore := 0
	var best *faqCategory
	for i := range catalogue {
		score := 0
		for _, keyword := range catalogue[i].keywords {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = &catalogue[i]
		}
	}

	if best == nil {
		return h.helpResponse()
	}
	h.logger.Debug("faq category matched", map[string]interface{}{
		"category": best.name,
		"score":    bestScore,
	})
	return best.response(h)
}

// openNow reports whether the clock falls inside business hours, Mon-Fri 9-17
// with limited Saturday hours.
func (h *Handler) openNow() bool {
	now := h.now()
	hour := now.Hour()
	switch now.Weekday() {
	case time.Saturday:
		return hour >= 10 && hour < 14
	case time.Sunday:
		return false
	default:
		return hour >= 9 && hour < 17
	}
}
