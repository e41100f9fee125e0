package search

import "fmt"

// Summary renders the criteria as short display tokens for filter badges.
// The order is fixed: neighborhood, then price range, then property type,
// skipping whatever is unset. Amounts are plain integers with no currency
// symbol; the clients attach "KES" themselves.
func (c Criteria) Summary() []string {
	tokens := make([]string, 0, 3)
	if c.Neighborhood != nil {
		tokens = append(tokens, *c.Neighborhood)
	}
	if token, ok := priceToken(c.MinRent, c.MaxRent); ok {
		tokens = append(tokens, token)
	}
	if c.PropertyType != nil {
		tokens = append(tokens, c.PropertyType.Label())
	}
	return tokens
}

func priceToken(min, max *int64) (string, bool) {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d - %d", *min, *max), true
	case min != nil:
		return fmt.Sprintf("From %d", *min), true
	case max != nil:
		return fmt.Sprintf("Up to %d", *max), true
	default:
		return "", false
	}
}
