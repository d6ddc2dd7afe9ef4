package metadata

import "strings"

// Rarity classifications, from most to least common.
const (
	RarityCommon    = "🟢 Common"
	RarityRare      = "🔴 Rare"
	RarityLegendary = "🟣 Legendary"
)

// Rarities returns the allowed rarity values in schema order.
func Rarities() []string {
	return []string{RarityCommon, RarityRare, RarityLegendary}
}

var legendaryTerms = []string{
	"groundbreaking", "revolutionary", "unprecedented",
	"extraordinary", "remarkable", "absurd", "paradoxical",
}

var rareTerms = []string{
	"innovative", "unique", "uncommon", "unusual",
	"specialized", "technical", "complex",
}

// CalculateRarity classifies a document from its summary. The heuristic
// takes precedence over whatever rarity the model reported.
func CalculateRarity(summary string) string {
	if summary == "" {
		return RarityCommon
	}
	lower := strings.ToLower(summary)

	if len(summary) > 500 && containsAny(lower, legendaryTerms) {
		return RarityLegendary
	}
	if len(summary) > 300 || containsAny(lower, rareTerms) {
		return RarityRare
	}
	return RarityCommon
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
