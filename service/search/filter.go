package search

import (
	"regexp"
	"strings"
)

// Entity names produced by the NLU pipeline.
const (
	EntityName       = "name"
	EntityColor      = "color"
	EntitySize       = "size"
	EntityPriceRange = "priceRange"
	EntityCategoryID = "id_cate"
)

// Entity is one value extracted from a user utterance.
type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// FilterSet holds the reconciled search criteria. Empty means absent.
// PriceRange is a canonical band name, or an unmapped phrase that filters nothing.
type FilterSet struct {
	Name       string `json:"name,omitempty"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
	CategoryID string `json:"id_cate,omitempty"`
}

// Band returns the parsed price band, BandNone when absent or unmapped.
func (f FilterSet) Band() PriceBand {
	b, _ := ParseBand(f.PriceRange)
	return b
}

// DisplayName is the product noun used in replies.
func (f FilterSet) DisplayName() string {
	if f.Name == "" {
		return defaultProductNoun
	}
	return f.Name
}

// FirstEntities keeps the first non-blank value per entity name.
func FirstEntities(entities []Entity) map[string]string {
	out := make(map[string]string, len(entities))
	for _, e := range entities {
		v := strings.TrimSpace(e.Value)
		if v == "" {
			continue
		}
		if _, seen := out[e.Entity]; !seen {
			out[e.Entity] = v
		}
	}
	return out
}

// pricePhrase catches amounts like "500k", "2tr" or "1m" misread as colors.
var pricePhrase = regexp.MustCompile(`^\d+(k|tr|m)`)

// Normalizer reconciles extracted entities with the previous turn's filters.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a normalizer over a phrase -> band alias table.
// Canonical band names always map to themselves.
func NewNormalizer(aliases map[string]string) *Normalizer {
	table := make(map[string]string, len(aliases)+len(bandNames))
	for _, b := range Bands() {
		table[b.String()] = b.String()
	}
	for phrase, band := range aliases {
		table[aliasKey(phrase)] = band
	}
	return &Normalizer{aliases: table}
}

func aliasKey(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// CanonicalPrice maps a raw phrase through the alias table; unmapped phrases
// come back unchanged.
func (n *Normalizer) CanonicalPrice(raw string) string {
	if band, ok := n.aliases[aliasKey(raw)]; ok {
		return band
	}
	return raw
}

// Normalize applies the reconciliation rules. It performs no I/O.
func (n *Normalizer) Normalize(entities []Entity, prior FilterSet) FilterSet {
	first := FirstEntities(entities)
	pick := func(entity, previous string) string {
		if v, ok := first[entity]; ok {
			return v
		}
		return previous
	}

	out := FilterSet{
		Name:       pick(EntityName, prior.Name),
		Color:      pick(EntityColor, prior.Color),
		Size:       pick(EntitySize, prior.Size),
		CategoryID: pick(EntityCategoryID, prior.CategoryID),
	}
	if out.Color != "" && pricePhrase.MatchString(strings.ToLower(out.Color)) {
		out.Color = ""
	}
	// price intent only counts when restated this turn
	if raw, ok := first[EntityPriceRange]; ok {
		out.PriceRange = n.CanonicalPrice(raw)
	}
	return out
}
