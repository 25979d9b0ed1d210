package search

// Dimension is a filter the engine may propose to fill in.
type Dimension string

const (
	DimensionColor Dimension = "color"
	DimensionSize  Dimension = "size"
)

// Label is the word used for the dimension in replies.
func (d Dimension) Label() string {
	if d == DimensionColor {
		return "màu"
	}
	return string(d)
}

// Suggestion is a pending one-shot refinement offered to the shopper.
type Suggestion struct {
	Dimension Dimension `json:"dimension"`
	Value     string    `json:"value"`
}

// ParseSuggestion rebuilds a pending suggestion from stored slots.
// Unknown dimensions or blank values mean nothing is pending.
func ParseSuggestion(dimension, value string) *Suggestion {
	d := Dimension(dimension)
	if (d != DimensionColor && d != DimensionSize) || value == "" {
		return nil
	}
	return &Suggestion{Dimension: d, Value: value}
}

// Apply overwrites the suggested dimension in f.
func (s Suggestion) Apply(f FilterSet) FilterSet {
	switch s.Dimension {
	case DimensionColor:
		f.Color = s.Value
	case DimensionSize:
		f.Size = s.Value
	}
	return f
}

// Suggester decides which dimension, if any, to propose after a search.
type Suggester struct {
	sizeValue  string
	colorValue string
}

func NewSuggester(sizeValue, colorValue string) *Suggester {
	return &Suggester{sizeValue: sizeValue, colorValue: colorValue}
}

// Decide: color without size proposes a size, neither proposes a color,
// and a known size never gets a proposal.
func (s *Suggester) Decide(f FilterSet) *Suggestion {
	switch {
	case f.Size != "":
		return nil
	case f.Color != "":
		if s.sizeValue == "" {
			return nil
		}
		return &Suggestion{Dimension: DimensionSize, Value: s.sizeValue}
	default:
		if s.colorValue == "" {
			return nil
		}
		return &Suggestion{Dimension: DimensionColor, Value: s.colorValue}
	}
}
