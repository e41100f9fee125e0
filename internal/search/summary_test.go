package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty criteria", Criteria{}, []string{}},
		{
			"both rent bounds",
			Criteria{MinRent: amountPtr(20000), MaxRent: amountPtr(50000)},
			[]string{"20000 - 50000"},
		},
		{
			"min rent only",
			Criteria{MinRent: amountPtr(20000)},
			[]string{"From 20000"},
		},
		{
			"max rent only",
			Criteria{MaxRent: amountPtr(50000)},
			[]string{"Up to 50000"},
		},
		{
			"fixed ordering",
			Criteria{
				Neighborhood: strPtr("Kilimani"),
				MinRent:      amountPtr(20000),
				MaxRent:      amountPtr(50000),
				PropertyType: typePtr(PropertyTypeApartment),
			},
			[]string{"Kilimani", "20000 - 50000", "Apartment"},
		},
		{
			"absent dimensions are skipped",
			Criteria{Neighborhood: strPtr("Westlands"), PropertyType: typePtr(PropertyTypeBedsitter)},
			[]string{"Westlands", "Bedsitter"},
		},
		{
			"square feet never render",
			Criteria{MinSquareFeet: amountPtr(400), MaxSquareFeet: amountPtr(1200)},
			[]string{},
		},
		{
			"zero bound renders literally",
			Criteria{MinRent: amountPtr(0)},
			[]string{"From 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Summary())
		})
	}
}
