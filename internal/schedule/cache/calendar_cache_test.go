package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "cal:month:2024-01", cache.MonthKey(2024, 0))
	assert.Equal(t, "cal:month:2024-12", cache.MonthKey(2024, 11))
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "cal:week:2024-01-29", cache.WeekKey("2024-01-29"))
}

func TestKeysForDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want []string
	}{
		{
			// Jan 31 sits in the leading cells of February's grid, so
			// February's key must be dropped along with January's.
			name: "end of month",
			date: "2024-01-31",
			want: []string{
				"cal:week:2024-01-29",
				"cal:month:2024-01",
				"cal:month:2023-12",
				"cal:month:2024-02",
			},
		},
		{
			name: "mid month",
			date: "2024-06-15",
			want: []string{
				"cal:week:2024-06-10",
				"cal:month:2024-06",
				"cal:month:2024-05",
				"cal:month:2024-07",
			},
		},
		{
			name: "year start",
			date: "2024-01-01",
			want: []string{
				"cal:week:2024-01-01",
				"cal:month:2024-01",
				"cal:month:2023-12",
				"cal:month:2024-02",
			},
		},
		{
			name: "year end",
			date: "2024-12-31",
			want: []string{
				"cal:week:2024-12-30",
				"cal:month:2024-12",
				"cal:month:2024-11",
				"cal:month:2025-01",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := calendar.ParseDate(tt.date)
			require.NoError(t, err)

			assert.ElementsMatch(t, tt.want, cache.KeysForDate(d))
		})
	}
}

func TestCalendarCache_NilClient(t *testing.T) {
	c := cache.New(nil, time.Minute, logger.New("test", "test"))
	ctx := context.Background()

	days, hit := c.GetDays(ctx, cache.MonthKey(2024, 0))
	assert.False(t, hit)
	assert.Nil(t, days)

	// No-ops, must not panic without a backend.
	c.SetDays(ctx, cache.MonthKey(2024, 0), []calendar.Day{{Date: "2024-01-01"}})
	c.InvalidateDate(ctx, "2024-01-31")

	assert.Equal(t, "disabled", c.Health(ctx)["status"])
}
