package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviguptakonda/yc-demoday-batch/company"
)

func TestCompaniesDataset(t *testing.T) {
	records := Companies("Summer 2025")
	require.Len(t, records, 10)

	for _, r := range records {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.Categories)
		assert.NotEmpty(t, r.Founders)
		assert.Equal(t, "Summer 2025", r.Batch)
		for _, f := range r.Founders {
			assert.NotEqual(t, company.ProfileUnknown, f.ProfileType)
		}
	}

	// The dataset itself must be duplicate-free.
	assert.Len(t, company.Dedupe(records), len(records))
}

func TestCompaniesReturnsFreshCopies(t *testing.T) {
	a := Companies("Summer 2025")
	b := Companies("Summer 2025")

	a[0].Founders[0].Name = "changed"
	assert.NotEqual(t, "changed", b[0].Founders[0].Name)
}
