package parser

import (
	"regexp"

	"whatsapp-orderbot/internal/models"
)

// intentEntry binds one intent to its trigger patterns. The table below is the
// single source of truth for classification; declaration order is the tie-break,
// so the first intent to reach the maximum score wins.
type intentEntry struct {
	intent   models.Intent
	patterns []*regexp.Regexp
}

var intentTable = []intentEntry{
	{models.IntentOrderCreate, compileAll(
		`\b(order|buy|purchase|want|need)\b`,
		`\b(create.*order|new.*order|place.*order)\b`,
		`\b(i want|i need|looking for)\b`,
	)},
	{models.IntentOrderStatus, compileAll(
		`\b(status|track|where.*order|order.*status)\b`,
		`\b(check.*order|find.*order)\b`,
		`\bord[-\s]*\d+\b`,
	)},
	{models.IntentOrderCancel, compileAll(
		`\b(cancel|delete|remove).*order\b`,
		`\b(cancel|stop)\b`,
	)},
	{models.IntentFaqHours, compileAll(
		`\b(hours|time|open|close|when)\b`,
		`\b(working.*hours|business.*hours)\b`,
	)},
	{models.IntentFaqContact, compileAll(
		`\b(contact|phone|email|address)\b`,
		`\b(reach|call|write)\b`,
	)},
	{models.IntentHelp, compileAll(
		`\b(help|assist|support)\b`,
		`\b(what.*can|how.*work)\b`,
	)},
	{models.IntentGreeting, compileAll(
		`\b(hello|hi|hey|good morning|good afternoon)\b`,
		`\b(greetings|welcome)\b`,
	)},
	{models.IntentRejectResponse, compileAll(
		`\b(no|not|reject|decline|refuse)\b`,
		`\b(don't want|not interested)\b`,
	)},
}

// FaqGeneral is deliberately not registered above. It is a catch-all that only
// the FAQ handler's own keyword scorer dispatches to, never the classifier.

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Classify scores normalized (lower-cased, trimmed) text against every intent's
// pattern set and returns the winner with a saturating confidence. A message
// matching no pattern at all classifies as Unknown with confidence 0.
func Classify(text string) (models.Intent, float64) {
	best := models.IntentUnknown
	bestScore := 0

	for _, entry := range intentTable {
		score := 0
		for _, re := range entry.patterns {
			score += len(re.FindAllStringIndex(text, -1))
		}
		if score > bestScore {
			bestScore = score
			best = entry.intent
		}
	}

	if bestScore == 0 {
		return models.IntentUnknown, 0.0
	}

	confidence := float64(bestScore) * 0.3
	if confidence > 1.0 {
		confidence = 1.0
	}
	return best, confidence
}
