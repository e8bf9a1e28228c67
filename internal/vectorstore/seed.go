package vectorstore

import (
	"context"
	"fmt"
	"strings"
)

// KnowledgeEntry is one seeded estate planning concept. Indicators are the
// phrases that signal the concept in a transcript; considerations are the
// planning angles an advisor should raise when it appears.
type KnowledgeEntry struct {
	ID             string
	Concept        string
	Category       string
	Indicators     []string
	Score          int // complexity or urgency, 1-10
	Considerations []string
}

// KnowledgeEntries is the baseline concept set loaded by the seed command.
var KnowledgeEntries = []KnowledgeEntry{
	{
		ID:             "family-blended",
		Concept:        "blended_family",
		Category:       "family_structure",
		Indicators:     []string{"stepchildren", "previous marriage", "ex-wife", "ex-husband", "half-siblings"},
		Score:          8,
		Considerations: []string{"Separate trusts", "Step-child provisions", "Spouse protection"},
	},
	{
		ID:             "family-special-needs",
		Concept:        "special_needs",
		Category:       "family_structure",
		Indicators:     []string{"special needs", "disabled child", "disability benefits", "SSI", "medicaid"},
		Score:          9,
		Considerations: []string{"Special needs trust", "Medicaid planning", "ABLE accounts"},
	},
	{
		ID:             "business-llc",
		Concept:        "LLC_interest",
		Category:       "business_structure",
		Indicators:     []string{"LLC", "limited liability", "operating agreement", "member interests"},
		Score:          6,
		Considerations: []string{"Succession planning", "Buy-sell agreements", "Valuation discounts"},
	},
	{
		ID:             "business-s-corp",
		Concept:        "S_Corp_interest",
		Category:       "business_structure",
		Indicators:     []string{"S corp", "S corporation", "shareholder agreement", "pass-through"},
		Score:          7,
		Considerations: []string{"Shareholder agreements", "Stock redemption", "ESOP considerations"},
	},
	{
		ID:             "urgency-health",
		Concept:        "health_urgency",
		Category:       "urgency_factors",
		Indicators:     []string{"health issues", "terminal illness", "recent diagnosis", "surgery"},
		Score:          9,
		Considerations: []string{"Immediate execution", "Power of attorney", "Healthcare directives"},
	},
	{
		ID:             "urgency-business-sale",
		Concept:        "business_sale_urgency",
		Category:       "urgency_factors",
		Indicators:     []string{"business sale", "exit strategy", "liquidity event", "significant assets"},
		Score:          8,
		Considerations: []string{"Installment sales", "Tax deferral", "Charitable strategies"},
	},
}

// Document converts the entry into an embeddable document. The content joins
// concept, indicators, and considerations so indicator phrases in a
// transcript land near the concept in vector space.
func (e KnowledgeEntry) Document() Document {
	content := fmt.Sprintf("%s (%s): indicators: %s. planning considerations: %s.",
		strings.ReplaceAll(e.Concept, "_", " "),
		strings.ReplaceAll(e.Category, "_", " "),
		strings.Join(e.Indicators, ", "),
		strings.Join(e.Considerations, ", "))

	return Document{
		ID:      e.ID,
		Content: content,
		Metadata: map[string]any{
			"concept":  e.Concept,
			"category": e.Category,
			"score":    e.Score,
		},
		Collection: KnowledgeCollection,
	}
}

// Seed creates both pipeline collections and loads the knowledge base.
// Seeding is idempotent: existing entries are overwritten in place.
func Seed(ctx context.Context, store Store, vectorSize int) error {
	for _, name := range []string{TranscriptCollection, KnowledgeCollection} {
		if err := store.CreateCollection(ctx, name, vectorSize); err != nil {
			return fmt.Errorf("creating collection %s: %w", name, err)
		}
	}

	docs := make([]Document, len(KnowledgeEntries))
	for i, entry := range KnowledgeEntries {
		docs[i] = entry.Document()
	}

	if _, err := store.AddDocuments(ctx, docs); err != nil {
		return fmt.Errorf("seeding knowledge base: %w", err)
	}
	return nil
}
