package parser

import (
	"regexp"
	"strings"
)

// OrderDetails is the fixed-shape record produced by scanning a structured
// free-form order message line by line.
type OrderDetails struct {
	Product       string `json:"product"`
	Quantity      string `json:"quantity"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

var digitRun = regexp.MustCompile(`\d+`)

var orderVerbs = []string{"want", "order", "buy", "need"}

// ExtractOrderDetails parses a multi-line message into order fields. Labeled
// lines (name:, phone:, address:, quantity:/qty:) may appear in any order;
// unlabeled lines containing an order verb become the product, and any other
// non-empty line is appended to the notes in document order. Quantity defaults
// to "1". Best-effort by design: unparseable input degrades to notes, never
// to an error.
func ExtractOrderDetails(text string) OrderDetails {
	details := OrderDetails{Quantity: "1"}
	var notes []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		switch {
		case strings.Contains(lower, "name:"):
			details.CustomerName = afterLabel(trimmed)
		case strings.Contains(lower, "phone:"):
			details.CustomerPhone = afterLabel(trimmed)
		case strings.Contains(lower, "address:"):
			details.Address = afterLabel(trimmed)
		case strings.Contains(lower, "quantity:") || strings.Contains(lower, "qty:"):
			if qty := digitRun.FindString(trimmed); qty != "" {
				details.Quantity = qty
			}
		case containsAny(lower, orderVerbs):
			details.Product = trimmed
		default:
			if trimmed != "" {
				notes = append(notes, trimmed)
			}
		}
	}

	details.Notes = strings.Join(notes, " ")
	return details
}

func afterLabel(line string) string {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
