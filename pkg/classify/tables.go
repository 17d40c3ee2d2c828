package classify

import "github.com/soundprediction/faqmatch/pkg/types"

// DefaultSignals returns the curated per-category signal phrases in the
// canonical category order. The order matters: it is the documented
// tie-break order, so "refund" (billing) plus "return" (returns) in one
// text resolves to billing.
func DefaultSignals() []CategorySignals {
	return []CategorySignals{
		{Category: types.CategoryAccount, Signals: []string{
			"account", "login", "password", "sign in", "register", "profile",
			"verify", "2fa", "mfa", "username", "email address", "two-factor",
		}},
		{Category: types.CategoryBilling, Signals: []string{
			"billing", "invoice", "charge", "payment", "subscription", "plan",
			"upgrade", "downgrade", "refund", "credit card", "receipt", "price",
			"cost", "fee", "charged", "billed", "money back",
		}},
		{Category: types.CategoryProduct, Signals: []string{
			"feature", "setup", "configure", "integration", "api", "dashboard",
			"settings", "tutorial", "get started", "how to use", "install",
			"connect", "enable", "available",
		}},
		{Category: types.CategoryShipping, Signals: []string{
			"shipping", "delivery", "track", "tracking", "ship", "arrive",
			"package", "courier", "transit", "estimated", "international",
			"deliver", "order",
		}},
		{Category: types.CategoryReturns, Signals: []string{
			"return", "exchange", "warranty", "damaged", "broken", "wrong item",
			"cancel order", "return policy", "send back", "send it back",
			"wrong", "defective",
		}},
		{Category: types.CategoryTechnical, Signals: []string{
			"error", "bug", "crash", "not working", "broken", "fix", "issue",
			"troubleshoot", "debug", "timeout", "500", "404", "slow",
			"loading", "problem", "fails", "failing",
		}},
		{Category: types.CategoryGeneral, Signals: []string{
			"contact", "support", "business hours", "phone", "privacy policy",
			"data", "gdpr", "hours", "talk to", "speak to", "human",
		}},
	}
}

// DefaultDomainCategories maps intent-extractor domains to categories.
// Consulted only when the text itself carries no category signal.
func DefaultDomainCategories() map[string]types.Category {
	return map[string]types.Category{
		"payments": types.CategoryBilling,
		"tickets":  types.CategoryTechnical,
	}
}

// DefaultActionCategories maps intent-extractor actions to categories.
// Consulted after the domain table, and only as a last textual-signal-free
// resort before the fallback category.
func DefaultActionCategories() map[string]types.Category {
	return map[string]types.Category{
		"charge":    types.CategoryBilling,
		"refund":    types.CategoryBilling,
		"subscribe": types.CategoryBilling,
		"cancel":    types.CategoryBilling,
		"track":     types.CategoryShipping,
	}
}
