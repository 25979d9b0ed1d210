package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggester_DecideMatrix(t *testing.T) {
	s := NewSuggester("M", "trắng")
	tests := []struct {
		name string
		f    FilterSet
		want *Suggestion
	}{
		{"color only", FilterSet{Color: "đỏ"}, &Suggestion{Dimension: DimensionSize, Value: "M"}},
		{"neither", FilterSet{Name: "áo"}, &Suggestion{Dimension: DimensionColor, Value: "trắng"}},
		{"size only", FilterSet{Size: "L"}, nil},
		{"both", FilterSet{Color: "đỏ", Size: "L"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Decide(tt.f))
		})
	}
}

func TestSuggester_EmptyValueDisables(t *testing.T) {
	s := NewSuggester("", "")
	assert.Nil(t, s.Decide(FilterSet{Color: "đỏ"}))
	assert.Nil(t, s.Decide(FilterSet{}))
}

func TestSuggestion_Apply(t *testing.T) {
	f := FilterSet{Name: "áo", Color: "đen", Size: "S"}
	assert.Equal(t, FilterSet{Name: "áo", Color: "đen", Size: "M"},
		Suggestion{Dimension: DimensionSize, Value: "M"}.Apply(f))
	assert.Equal(t, FilterSet{Name: "áo", Color: "trắng", Size: "S"},
		Suggestion{Dimension: DimensionColor, Value: "trắng"}.Apply(f))
}

func TestParseSuggestion(t *testing.T) {
	assert.Equal(t, &Suggestion{Dimension: DimensionSize, Value: "M"}, ParseSuggestion("size", "M"))
	assert.Nil(t, ParseSuggestion("material", "cotton"))
	assert.Nil(t, ParseSuggestion("color", ""))
	assert.Nil(t, ParseSuggestion("", ""))
}

func TestDimension_Label(t *testing.T) {
	assert.Equal(t, "màu", DimensionColor.Label())
	assert.Equal(t, "size", DimensionSize.Label())
}
