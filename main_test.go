package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviguptakonda/yc-demoday-batch/sample"
	"github.com/aviguptakonda/yc-demoday-batch/store"
)

func TestReanalyzeRebuildsReportFromJSON(t *testing.T) {
	writer := store.NewWriter(t.TempDir())
	path, err := writer.WriteJSON(sample.Companies("Summer 2025"))
	require.NoError(t, err)

	report, err := reanalyze(path)
	require.NoError(t, err)

	assert.Equal(t, 10, report.TotalCompanies)
	assert.Equal(t, map[string]int{"Summer 2025": 10}, report.BatchCounts)
	assert.Zero(t, report.DataQuality.MissingDescriptions)
}

func TestReanalyzeMissingFile(t *testing.T) {
	_, err := reanalyze("no-such-file.json")
	assert.Error(t, err)
}
