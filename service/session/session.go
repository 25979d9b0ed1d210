// Package session keeps per-conversation slot values between chat turns.
package session

import (
	"context"
	"errors"
)

// Slot keys shared with the chat transport.
const (
	SlotName            = "name"
	SlotColor           = "color"
	SlotSize            = "size"
	SlotPriceRange      = "priceRange"
	SlotCategoryID      = "id_cate"
	SlotMatchedProducts = "matched_products"
	SlotProductOffset   = "product_offset"
	SlotSuggestedEntity = "suggested_entity"
	SlotSuggestedValue  = "suggested_value"
)

// ErrSessionStore wraps every failure of a slot store backend.
var ErrSessionStore = errors.New("session store unavailable")

// Slots is a snapshot of one session. A missing key and a nil value both mean unset.
type Slots map[string]any

// String returns the slot as a string, "" when unset or not a string.
func (s Slots) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// SlotSet is one slot write. A nil Value clears the slot.
type SlotSet struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Set builds a SlotSet.
func Set(name string, value any) SlotSet {
	return SlotSet{Name: name, Value: value}
}

// Store persists slots per session id.
type Store interface {
	Load(ctx context.Context, sessionID string) (Slots, error)
	Get(ctx context.Context, sessionID, key string) (any, error)
	Apply(ctx context.Context, sessionID string, events []SlotSet) error
}

func cloneSlots(s Slots) Slots {
	out := make(Slots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
