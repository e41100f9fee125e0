package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	inquirymodels "ke.kejani.api/internal/models/inquiry"
)

func sampleInquiries() []inquirymodels.Inquiry {
	return []inquirymodels.Inquiry{
		{ID: "i1", ListingTitle: "Kilimani 2BR", Message: "Is the unit still available?", Status: inquirymodels.StatusPending},
		{ID: "i2", ListingTitle: "Westlands studio", Message: "Does rent include water?", Response: "Yes, water and garbage.", Status: inquirymodels.StatusResponded},
		{ID: "i3", ListingTitle: "South B bedsitter", Message: "Can I view on Saturday?", Response: "Viewing is closed.", Status: inquirymodels.StatusClosed},
	}
}

func TestApplyInquiryFiltersByStatus(t *testing.T) {
	got := applyInquiryFilters(sampleInquiries(), inquirymodels.StatusResponded, "")

	assert.Len(t, got, 1)
	assert.Equal(t, "i2", got[0].ID)
}

func TestApplyInquiryFiltersByText(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"matches message", "available", []string{"i1"}},
		{"matches response", "garbage", []string{"i2"}},
		{"matches listing title", "westlands", []string{"i2"}},
		{"case insensitive", "SATURDAY", []string{"i3"}},
		{"no hit", "parking", []string{}},
		{"blank keeps all", "   ", []string{"i1", "i2", "i3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyInquiryFilters(sampleInquiries(), "", tt.query)

			gotIDs := make([]string, 0, len(got))
			for _, inquiry := range got {
				gotIDs = append(gotIDs, inquiry.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestApplyInquiryFiltersCombined(t *testing.T) {
	// Status narrows first, then text; "closed" appears in i3's response
	// but i3 is CLOSED, not RESPONDED.
	got := applyInquiryFilters(sampleInquiries(), inquirymodels.StatusResponded, "closed")

	assert.Empty(t, got)
}
