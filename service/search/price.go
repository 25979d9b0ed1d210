package search

import (
	"math"

	entity "chatshop.GO/model/entity/catalog"
)

// PriceBand is one of the canonical price ranges, ordered by lower bound.
type PriceBand int

const (
	BandNone PriceBand = iota
	BandUnder500K
	Band500KTo1M
	Band1MTo2M
	Band2MTo4M
	BandOver4M
)

var bandNames = [...]string{
	BandNone:      "",
	BandUnder500K: "under-500k",
	Band500KTo1M:  "500k-1m",
	Band1MTo2M:    "1m-2m",
	Band2MTo4M:    "2m-4m",
	BandOver4M:    "over-4m",
}

// Bands lists every canonical band in ascending order.
func Bands() []PriceBand {
	return []PriceBand{BandUnder500K, Band500KTo1M, Band1MTo2M, Band2MTo4M, BandOver4M}
}

// ParseBand maps a canonical band name to its PriceBand. Anything else is BandNone.
func ParseBand(name string) (PriceBand, bool) {
	for _, b := range Bands() {
		if bandNames[b] == name {
			return b, true
		}
	}
	return BandNone, false
}

func (b PriceBand) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return ""
	}
	return bandNames[b]
}

// Contains reports whether an effective price falls in the band.
// Interior bands are inclusive on both ends; BandNone contains everything.
func (b PriceBand) Contains(p int64) bool {
	switch b {
	case BandUnder500K:
		return p < 500_000
	case Band500KTo1M:
		return p >= 500_000 && p <= 1_000_000
	case Band1MTo2M:
		return p >= 1_000_000 && p <= 2_000_000
	case Band2MTo4M:
		return p >= 2_000_000 && p <= 4_000_000
	case BandOver4M:
		return p > 4_000_000
	default:
		return true
	}
}

// BandOf returns the first band containing p. Shared bounds resolve to the lower band.
func BandOf(p int64) PriceBand {
	for _, b := range Bands() {
		if b.Contains(p) {
			return b
		}
	}
	return BandNone
}

// EffectivePrice returns floor(price * (100 - discount) / 100).
// ok is false for a negative price or a discount outside 0..100.
func EffectivePrice(v entity.Variant) (int64, bool) {
	if v.Price < 0 || v.DiscountPercent < 0 || v.DiscountPercent > 100 || math.IsNaN(v.DiscountPercent) {
		return 0, false
	}
	return int64(math.Floor(float64(v.Price) * (100 - v.DiscountPercent) / 100)), true
}

// EffectivePrices maps variants to discounted prices, skipping malformed ones.
func EffectivePrices(variants []entity.Variant) []int64 {
	prices := make([]int64, 0, len(variants))
	for _, v := range variants {
		if p, ok := EffectivePrice(v); ok {
			prices = append(prices, p)
		}
	}
	return prices
}

// MatchesBand is false for an empty price list. An absent or unknown band
// passes every non-empty list; otherwise some price must fall in the band.
func MatchesBand(prices []int64, band string) bool {
	if len(prices) == 0 {
		return false
	}
	b, _ := ParseBand(band)
	for _, p := range prices {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// MinPrice returns the lowest price, 0 for an empty list.
func MinPrice(prices []int64) int64 {
	if len(prices) == 0 {
		return 0
	}
	min := prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
	}
	return min
}
