package timezone_test

import (
	"testing"
	"time"

	"bayleaf/shared/constant"
	"bayleaf/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { timezone.Setup("UTC") })

	timezone.Setup("Europe/Berlin")
	assert.Equal(t, "Europe/Berlin", timezone.GetLocation().String())

	timezone.Setup("Not/AZone")
	assert.Equal(t, time.UTC, timezone.GetLocation())

	timezone.Setup("")
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestFormatAndParse(t *testing.T) {
	timezone.Setup("UTC")

	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 12:00", timezone.Format(testTime, "2006-01-02 15:04"))

	parsed, err := timezone.Parse(constant.ISODateFormat, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
}

func TestIsPastDate(t *testing.T) {
	timezone.Setup("UTC")

	tests := []struct {
		name string
		date string
		past bool
	}{
		{"today", timezone.Today(), false},
		{"far future", "2099-01-01", false},
		{"yesterday", timezone.Now().AddDate(0, 0, -1).Format(constant.ISODateFormat), true},
		{"long ago", "2001-05-04", true},
		{"garbage", "next friday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.past, timezone.IsPastDate(tt.date))
		})
	}
}
