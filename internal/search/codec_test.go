package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeQuery(t *testing.T) {
	criteria := Criteria{
		Neighborhood:  strPtr("Kilimani"),
		MinRent:       amountPtr(20000),
		MaxRent:       amountPtr(50000),
		PropertyType:  typePtr(PropertyTypeApartment),
		MinSquareFeet: amountPtr(400),
		MaxSquareFeet: amountPtr(1200),
	}

	assert.Equal(t, url.Values{
		"neighborhood":  {"Kilimani"},
		"minRent":       {"20000"},
		"maxRent":       {"50000"},
		"propertyType":  {"APARTMENT"},
		"minSquareFeet": {"400"},
		"maxSquareFeet": {"1200"},
	}, EncodeQuery(criteria))
}

func TestEncodeQueryOmitsUnsetFields(t *testing.T) {
	assert.Empty(t, EncodeQuery(Criteria{}))
	assert.Equal(t, "", QueryString(Criteria{}))

	values := EncodeQuery(Criteria{MinRent: amountPtr(20000), MaxRent: amountPtr(50000)})
	assert.Equal(t, url.Values{"minRent": {"20000"}, "maxRent": {"50000"}}, values)
}

func TestEncodeQueryKeepsZeroBounds(t *testing.T) {
	values := EncodeQuery(Criteria{MinRent: amountPtr(0)})
	assert.Equal(t, url.Values{"minRent": {"0"}}, values)
}

func TestQueryRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
	}{
		{"empty", Criteria{}},
		{
			"all fields",
			Criteria{
				Neighborhood:  strPtr("Kilimani"),
				MinRent:       amountPtr(20000),
				MaxRent:       amountPtr(50000),
				PropertyType:  typePtr(PropertyTypeApartment),
				MinSquareFeet: amountPtr(400),
				MaxSquareFeet: amountPtr(1200),
			},
		},
		{"price range only", Criteria{MinRent: amountPtr(20000), MaxRent: amountPtr(50000)}},
		{"upper bound only", Criteria{MaxRent: amountPtr(35000)}},
		{"zero bounds survive", Criteria{MinRent: amountPtr(0), MinSquareFeet: amountPtr(0)}},
		{"neighborhood with spaces", Criteria{Neighborhood: strPtr("South B")}},
		{"property type only", Criteria{PropertyType: typePtr(PropertyTypeBedsitter)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := url.ParseQuery(QueryString(tt.criteria))
			require.NoError(t, err)

			decoded, err := DecodeQuery(parsed)
			require.NoError(t, err)
			assert.Equal(t, tt.criteria, decoded)
		})
	}
}

func TestDecodeQueryRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantKey string
	}{
		{"non-numeric rent", "minRent=abc", "minRent"},
		{"decimal rent", "maxRent=50000.50", "maxRent"},
		{"negative rent", "minRent=-100", "minRent"},
		{"negative square feet", "maxSquareFeet=-1", "maxSquareFeet"},
		{"unknown property type", "propertyType=CASTLE", "propertyType"},
		{"one bad field rejects the lot", "minRent=abc&maxRent=50000", "minRent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = DecodeQuery(values)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantKey, parseErr.Key)
		})
	}
}

func TestDecodeQueryLenientInputs(t *testing.T) {
	t.Run("unknown keys are ignored", func(t *testing.T) {
		values, err := url.ParseQuery("minRent=20000&page=3&sortBy=newest")
		require.NoError(t, err)

		decoded, err := DecodeQuery(values)
		require.NoError(t, err)
		assert.Equal(t, Criteria{MinRent: amountPtr(20000)}, decoded)
	})

	t.Run("cleared form fields arrive as empty strings", func(t *testing.T) {
		values, err := url.ParseQuery("minRent=&neighborhood=&maxRent=50000")
		require.NoError(t, err)

		decoded, err := DecodeQuery(values)
		require.NoError(t, err)
		assert.Equal(t, Criteria{MaxRent: amountPtr(50000)}, decoded)
	})

	t.Run("first value wins on duplicate keys", func(t *testing.T) {
		values, err := url.ParseQuery("minRent=20000&minRent=99999")
		require.NoError(t, err)

		decoded, err := DecodeQuery(values)
		require.NoError(t, err)
		assert.Equal(t, Criteria{MinRent: amountPtr(20000)}, decoded)
	})

	t.Run("property type is normalized to canonical form", func(t *testing.T) {
		values, err := url.ParseQuery("propertyType=apartment")
		require.NoError(t, err)

		decoded, err := DecodeQuery(values)
		require.NoError(t, err)
		assert.Equal(t, Criteria{PropertyType: typePtr(PropertyTypeApartment)}, decoded)
	})
}

func TestParseErrorMessage(t *testing.T) {
	values, err := url.ParseQuery("minRent=abc")
	require.NoError(t, err)

	_, err = DecodeQuery(values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minRent")
	assert.Contains(t, err.Error(), "abc")
}
