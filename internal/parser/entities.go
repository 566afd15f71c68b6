package parser

import "regexp"

// entityEntry binds one entity type to its pattern. group selects which capture
// group carries the value (0 means the whole match).
type entityEntry struct {
	name  string
	re    *regexp.Regexp
	group int
}

var entityTable = []entityEntry{
	// The numeric group only; the ord/order prefix is discarded.
	{"order_id", regexp.MustCompile(`(?i)\b(ord|order)[-\s]*(\d+)\b`), 2},
	{"phone_number", regexp.MustCompile(`\+?[\d\s\-()]{10,15}`), 0},
	{"email", regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`), 0},
	{"quantity", regexp.MustCompile(`(?i)\b(\d+)\s*(pieces?|items?)?\b`), 1},
	// Closed product vocabulary, optional suffix; the base noun is the value.
	{"product", regexp.MustCompile(`(?i)\b(laptop|phone|computer|tablet|monitor|keyboard|mouse)\w*\b`), 1},
}

// ExtractEntities returns every recognized entity in the text, keyed by entity
// type, in first-to-last occurrence order. Types with no match are absent from
// the result.
func ExtractEntities(text string) map[string][]string {
	entities := make(map[string][]string)

	for _, entry := range entityTable {
		matches := entry.re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		values := make([]string, 0, len(matches))
		for _, m := range matches {
			if entry.group < len(m) && m[entry.group] != "" {
				values = append(values, m[entry.group])
			}
		}
		if len(values) > 0 {
			entities[entry.name] = values
		}
	}

	return entities
}

// ExtractOrderID returns the first order id found in the text, or "".
func ExtractOrderID(text string) string {
	ids := ExtractEntities(text)["order_id"]
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
