package store

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFilterArgs(t *testing.T) {
	f := ReportFilter{
		From:    civil.Date{Year: 2026, Month: 8, Day: 1},
		To:      civil.Date{Year: 2026, Month: 8, Day: 31},
		Regions: []string{"North", "West"},
	}

	args := f.args()
	require.Len(t, args, 3)
	assert.Equal(t, "2026-08-01", args[0])
	assert.Equal(t, "2026-08-31", args[1])
	assert.Equal(t, []string{"North", "West"}, args[2])
}

func TestReportFilterArgsNilRegions(t *testing.T) {
	f := ReportFilter{
		From: civil.Date{Year: 2026, Month: 1, Day: 1},
		To:   civil.Date{Year: 2026, Month: 12, Day: 31},
	}

	args := f.args()
	require.Len(t, args, 3)

	// The region parameter must bind as an empty array, not NULL, so the
	// cardinality predicate matches all regions.
	assert.Equal(t, []string{}, args[2])
}
