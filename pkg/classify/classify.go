// Package classify infers the FAQ category of free text by counting
// category signal phrases, with domain/action hint fallbacks for text
// that carries no signal at all.
package classify

import (
	"strings"

	"github.com/soundprediction/faqmatch/pkg/types"
)

// CategorySignals associates one category with its signal phrases. Signals
// match by case-insensitive substring containment, so multi-word phrases
// like "credit card" must appear contiguously in the text.
type CategorySignals struct {
	Category types.Category
	Signals  []string
}

// Classifier scores text against an ordered list of per-category signal
// sets. The list order is the tie-break order: when two categories reach
// the same signal count, the one that appears first wins. A Classifier is
// immutable after construction and safe for concurrent use.
type Classifier struct {
	signals          []CategorySignals
	domainCategories map[string]types.Category
	actionCategories map[string]types.Category
	fallback         types.Category
}

// New creates a Classifier with custom tables. The signals slice order
// defines the tie-break order.
func New(signals []CategorySignals, domainCategories, actionCategories map[string]types.Category, fallback types.Category) *Classifier {
	return &Classifier{
		signals:          signals,
		domainCategories: domainCategories,
		actionCategories: actionCategories,
		fallback:         fallback,
	}
}

// NewDefault creates a Classifier with the built-in helpdesk tables,
// enumerated in the canonical category order.
func NewDefault() *Classifier {
	return New(DefaultSignals(), DefaultDomainCategories(), DefaultActionCategories(), types.CategoryGeneral)
}

// Classify infers the category for text. Text signals take priority: the
// category with the strictly highest signal count wins, ties resolving to
// the first category in table order. Only when no signal fires at all do
// the domain and action hints apply, in that precedence, and only when
// they map to a known category. Everything else resolves to the fallback
// category. Classify never fails.
func (c *Classifier) Classify(text, domainHint, actionHint string) types.Category {
	lower := strings.ToLower(text)

	best := c.fallback
	bestCount := 0
	for _, cs := range c.signals {
		count := 0
		for _, signal := range cs.Signals {
			if strings.Contains(lower, signal) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = cs.Category
		}
	}
	if bestCount > 0 {
		return best
	}

	// No textual signal; hints may break the deadlock but never override.
	if cat, ok := c.domainCategories[domainHint]; ok {
		return cat
	}
	if cat, ok := c.actionCategories[actionHint]; ok {
		return cat
	}
	return c.fallback
}

// SignalCount returns how many of category's signal phrases appear in text.
// Exposed for diagnostics and tests; Classify is the production path.
func (c *Classifier) SignalCount(text string, category types.Category) int {
	lower := strings.ToLower(text)
	for _, cs := range c.signals {
		if cs.Category != category {
			continue
		}
		count := 0
		for _, signal := range cs.Signals {
			if strings.Contains(lower, signal) {
				count++
			}
		}
		return count
	}
	return 0
}
