package intent

import (
	"context"
	"strings"
)

// stopWords are dropped from keyword output. Short function words carry no
// matching signal and inflate the keywords role with noise.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "can": {}, "do": {}, "does": {}, "for": {},
	"from": {}, "get": {}, "has": {}, "have": {}, "how": {}, "i": {},
	"if": {}, "in": {}, "is": {}, "it": {}, "its": {}, "me": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "so": {}, "that": {}, "the": {},
	"their": {}, "there": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

// domainTokens maps token occurrences to a domain signal.
var domainTokens = map[string]string{
	"payment":      "payments",
	"payments":     "payments",
	"invoice":      "payments",
	"billing":      "payments",
	"billed":       "payments",
	"subscription": "payments",
	"ticket":       "tickets",
	"tickets":      "tickets",
	"bug":          "tickets",
	"error":        "tickets",
	"crash":        "tickets",
}

// actionTokens maps token occurrences to an action signal.
var actionTokens = map[string]string{
	"charge":      "charge",
	"charged":     "charge",
	"refund":      "refund",
	"refunded":    "refund",
	"subscribe":   "subscribe",
	"subscribed":  "subscribe",
	"cancel":      "cancel",
	"cancelled":   "cancel",
	"canceled":    "cancel",
	"track":       "track",
	"tracking":    "track",
}

// RuleExtractor is the default extractor: a token-table lookup for domain
// and action plus stop-word filtering for keywords. It is deterministic,
// allocation-light and never fails.
type RuleExtractor struct{}

// NewRuleExtractor creates the rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract expects already-cleaned (lowercased, punctuation-free) text. The
// first token that maps to a domain or action wins; keywords keep the
// input token order minus stop words.
func (e *RuleExtractor) Extract(ctx context.Context, text string) (Extraction, error) {
	var ext Extraction
	keywords := make([]string, 0, 8)
	for _, token := range strings.Fields(text) {
		if ext.Domain == "" {
			if domain, ok := domainTokens[token]; ok {
				ext.Domain = domain
			}
		}
		if ext.Action == "" {
			if action, ok := actionTokens[token]; ok {
				ext.Action = action
			}
		}
		if _, ok := stopWords[token]; !ok {
			keywords = append(keywords, token)
		}
	}
	ext.Keywords = strings.Join(keywords, " ")
	return ext, nil
}
