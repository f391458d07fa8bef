package keywords

import "strings"

const maxKeywords = 3

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "about": true, "into": true,
	"through": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "between": true, "under": true,
	"what": true, "why": true, "how": true, "when": true, "where": true,
	"who": true, "which": true, "this": true, "that": true, "these": true,
	"those": true, "introduction": true, "overview": true,
	"conclusion": true, "summary": true,
}

// Extract derives an image search query from a slide title by dropping
// stop words and short tokens. It falls back to the full title when
// nothing useful survives, so the caller always gets a non-empty query
// for a non-empty title.
func Extract(title string) string {
	words := strings.Fields(strings.ToLower(title))

	var kept []string
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()[]{}")
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		kept = append(kept, w)
		if len(kept) == maxKeywords {
			break
		}
	}

	if len(kept) == 0 {
		return strings.TrimSpace(title)
	}
	return strings.Join(kept, " ")
}
