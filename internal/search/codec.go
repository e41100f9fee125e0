package search

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Canonical query keys shared with the web and mobile clients. Renaming one
// breaks every saved-search URL already in the wild.
const (
	keyNeighborhood  = "neighborhood"
	keyMinRent       = "minRent"
	keyMaxRent       = "maxRent"
	keyPropertyType  = "propertyType"
	keyMinSquareFeet = "minSquareFeet"
	keyMaxSquareFeet = "maxSquareFeet"
)

var (
	errNegativeAmount      = errors.New("must not be negative")
	errUnknownPropertyType = errors.New("unknown property type")
)

// ParseError reports a query value that could not be decoded into its
// criteria field. The whole criteria is rejected, never a partial decode.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EncodeQuery renders the criteria as URL query values under the canonical
// keys. Unset fields are omitted entirely, never emitted as empty strings.
func EncodeQuery(c Criteria) url.Values {
	values := url.Values{}
	if c.Neighborhood != nil {
		values.Set(keyNeighborhood, *c.Neighborhood)
	}
	if c.MinRent != nil {
		values.Set(keyMinRent, strconv.FormatInt(*c.MinRent, 10))
	}
	if c.MaxRent != nil {
		values.Set(keyMaxRent, strconv.FormatInt(*c.MaxRent, 10))
	}
	if c.PropertyType != nil {
		values.Set(keyPropertyType, string(*c.PropertyType))
	}
	if c.MinSquareFeet != nil {
		values.Set(keyMinSquareFeet, strconv.FormatInt(*c.MinSquareFeet, 10))
	}
	if c.MaxSquareFeet != nil {
		values.Set(keyMaxSquareFeet, strconv.FormatInt(*c.MaxSquareFeet, 10))
	}
	return values
}

// QueryString is EncodeQuery in wire form, e.g. "maxRent=50000&minRent=20000".
func QueryString(c Criteria) string {
	return EncodeQuery(c).Encode()
}

// DecodeQuery rebuilds criteria from URL query values. Unknown keys are
// ignored and empty values are treated as unset, which is how browser form
// serializers emit cleared fields. Malformed or negative numbers and
// unknown property types fail with a *ParseError instead of being coerced.
// When a key repeats, the first value wins.
func DecodeQuery(values url.Values) (Criteria, error) {
	var c Criteria
	if v := values.Get(keyNeighborhood); v != "" {
		neighborhood := v
		c.Neighborhood = &neighborhood
	}
	for _, numeric := range []struct {
		key   string
		field **int64
	}{
		{keyMinRent, &c.MinRent},
		{keyMaxRent, &c.MaxRent},
		{keyMinSquareFeet, &c.MinSquareFeet},
		{keyMaxSquareFeet, &c.MaxSquareFeet},
	} {
		v := values.Get(numeric.key)
		if v == "" {
			continue
		}
		n, err := parseAmount(numeric.key, v)
		if err != nil {
			return Criteria{}, err
		}
		*numeric.field = n
	}
	if v := values.Get(keyPropertyType); v != "" {
		t, ok := ParsePropertyType(v)
		if !ok {
			return Criteria{}, &ParseError{Key: keyPropertyType, Value: v, Err: errUnknownPropertyType}
		}
		c.PropertyType = &t
	}
	return c, nil
}

func parseAmount(key, value string) (*int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, &ParseError{Key: key, Value: value, Err: err}
	}
	if n < 0 {
		return nil, &ParseError{Key: key, Value: value, Err: errNegativeAmount}
	}
	return &n, nil
}
