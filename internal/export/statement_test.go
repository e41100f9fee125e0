package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentmodels "ke.kejani.api/internal/models/payment"
)

func TestBuildStatement(t *testing.T) {
	created := time.Date(2025, time.March, 4, 10, 30, 0, 0, time.UTC)
	payments := []paymentmodels.Payment{
		{
			Amount:           35000,
			PhoneNumber:      "254712345678",
			AccountReference: "KEJ-4411",
			MpesaReceipt:     "NLJ7RT61SV",
			Status:           paymentmodels.StatusCompleted,
			CreatedAt:        created,
		},
		{
			Amount:           35000,
			PhoneNumber:      "254712345678",
			AccountReference: "KEJ-4412",
			Status:           paymentmodels.StatusFailed,
			FailureReason:    "Request cancelled by user.",
			CreatedAt:        created.AddDate(0, 1, 0),
		},
	}

	f, err := BuildStatement(payments, 2025)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Statement")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)

	assert.Equal(t, []string{"Date", "M-Pesa Receipt", "Reference", "Phone", "Status", "Amount (KES)"}, rows[0])
	assert.Equal(t, "2025-03-04 10:30", rows[1][0])
	assert.Equal(t, "NLJ7RT61SV", rows[1][1])
	assert.Equal(t, "KEJ-4411", rows[1][2])
	assert.Equal(t, "COMPLETED", rows[1][4])
	assert.Equal(t, "35000", rows[1][5])
	assert.Equal(t, "FAILED", rows[2][4])

	// Failed payments stay out of the total.
	totalRow := rows[len(rows)-1]
	assert.Equal(t, "Total completed 2025", totalRow[4])
	assert.Equal(t, "35000", totalRow[5])
}

func TestBuildStatementEmptyYear(t *testing.T) {
	f, err := BuildStatement(nil, 2024)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Statement")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Date", rows[0][0])
}

func TestStatementFilename(t *testing.T) {
	assert.Equal(t, "kejani-statement-2025.xlsx", StatementFilename(2025))
}
