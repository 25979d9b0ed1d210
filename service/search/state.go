package search

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	entity "chatshop.GO/model/entity/catalog"
	"chatshop.GO/service/session"
)

// State is the typed view of one session's slots.
type State struct {
	Filters    FilterSet        `json:"filters"`
	Results    []entity.Product `json:"-"`
	Offset     int              `json:"offset"`
	Suggestion *Suggestion      `json:"suggestion,omitempty"`
}

// slotState mirrors the slot keys. Values may come from the memory store as
// Go values or from JSON (Redis, webhook trackers) as generic maps and numbers.
type slotState struct {
	Name            string           `mapstructure:"name"`
	Color           string           `mapstructure:"color"`
	Size            string           `mapstructure:"size"`
	PriceRange      string           `mapstructure:"priceRange"`
	CategoryID      string           `mapstructure:"id_cate"`
	MatchedProducts []entity.Product `mapstructure:"matched_products"`
	ProductOffset   int              `mapstructure:"product_offset"`
	SuggestedEntity string           `mapstructure:"suggested_entity"`
	SuggestedValue  string           `mapstructure:"suggested_value"`
}

// StateFromSlots decodes a slot snapshot with weak typing.
func StateFromSlots(slots session.Slots) (State, error) {
	var raw slotState
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return State{}, err
	}
	if err := dec.Decode(map[string]any(slots)); err != nil {
		return State{}, errors.Wrap(err, "decode session slots")
	}
	for i := range raw.MatchedProducts {
		p := &raw.MatchedProducts[i]
		if p.CategoryID == "" {
			p.CategoryID = p.Category.ID
		}
	}
	return State{
		Filters: FilterSet{
			Name:       raw.Name,
			Color:      raw.Color,
			Size:       raw.Size,
			PriceRange: raw.PriceRange,
			CategoryID: raw.CategoryID,
		},
		Results:    raw.MatchedProducts,
		Offset:     raw.ProductOffset,
		Suggestion: ParseSuggestion(raw.SuggestedEntity, raw.SuggestedValue),
	}, nil
}

// filterEvents writes every filter slot; absent values clear the slot.
func filterEvents(f FilterSet) []session.SlotSet {
	return []session.SlotSet{
		session.Set(session.SlotName, nilIfEmpty(f.Name)),
		session.Set(session.SlotColor, nilIfEmpty(f.Color)),
		session.Set(session.SlotSize, nilIfEmpty(f.Size)),
		session.Set(session.SlotPriceRange, nilIfEmpty(f.PriceRange)),
		session.Set(session.SlotCategoryID, nilIfEmpty(f.CategoryID)),
	}
}

func suggestionEvents(s *Suggestion) []session.SlotSet {
	if s == nil {
		return []session.SlotSet{
			session.Set(session.SlotSuggestedEntity, nil),
			session.Set(session.SlotSuggestedValue, nil),
		}
	}
	return []session.SlotSet{
		session.Set(session.SlotSuggestedEntity, string(s.Dimension)),
		session.Set(session.SlotSuggestedValue, s.Value),
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
