package config

import (
	"encoding/json"
	"os"
)

// SearchConfig is the business data behind the search engine: free-text price
// aliases and the canned refinement values offered to the shopper.
type SearchConfig struct {
	PriceAliases    map[string]string `json:"price_aliases"`
	SizeSuggestion  string            `json:"size_suggestion"`
	ColorSuggestion string            `json:"color_suggestion"`
}

// DefaultSearchConfig returns the built-in alias table and suggestion values.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		PriceAliases: map[string]string{
			"500k":                       "500k-1m",
			"1m":                         "1m-2m",
			"2m":                         "2m-4m",
			"4m":                         "over-4m",
			"trên 4 triệu":               "over-4m",
			"dưới 500k":                  "under-500k",
			"từ 500k đến 1 triệu":        "500k-1m",
			"khoảng 1 triệu đến 2 triệu": "1m-2m",
			"2 triệu tới 4 triệu":        "2m-4m",
		},
		SizeSuggestion:  "M",
		ColorSuggestion: "trắng",
	}
}

// LoadSearchConfig reads SEARCH_CONFIG_FILE when set; fields present in the
// file replace the defaults, aliases are merged over the built-in table.
func LoadSearchConfig() (SearchConfig, error) {
	cfg := DefaultSearchConfig()
	path := os.Getenv("SEARCH_CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var override SearchConfig
	if err := json.Unmarshal(data, &override); err != nil {
		return cfg, err
	}
	for phrase, band := range override.PriceAliases {
		cfg.PriceAliases[phrase] = band
	}
	if override.SizeSuggestion != "" {
		cfg.SizeSuggestion = override.SizeSuggestion
	}
	if override.ColorSuggestion != "" {
		cfg.ColorSuggestion = override.ColorSuggestion
	}
	return cfg, nil
}
