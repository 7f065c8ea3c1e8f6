// Package cache holds the Redis-backed calendar response cache. Month and
// week views are expensive to rebuild on every poll, so built grids are
// kept briefly and dropped whenever a shift in their window changes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// CalendarCache caches built month grids and week views. A nil client
// disables caching entirely; every method degrades to a no-op miss.
type CalendarCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// New creates a calendar cache over the given Redis client
func New(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CalendarCache {
	return &CalendarCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: log,
	}
}

// MonthKey returns the cache key for a month grid. month is zero-based.
func MonthKey(year, month int) string {
	return fmt.Sprintf("cal:month:%04d-%02d", year, month+1)
}

// WeekKey returns the cache key for a week view, keyed by its Monday.
func WeekKey(mondayDate string) string {
	return "cal:week:" + mondayDate
}

// GetDays fetches a cached day sequence. The boolean reports a hit.
// IsToday markings in a cached grid are stale by definition; callers must
// restamp them against the current date.
func (c *CalendarCache) GetDays(ctx context.Context, key string) ([]calendar.Day, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("calendar cache read failed")
		return nil, false
	}

	var days []calendar.Day
	if err := json.Unmarshal(raw, &days); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("calendar cache entry corrupt")
		return nil, false
	}

	return days, true
}

// SetDays stores a day sequence under key
func (c *CalendarCache) SetDays(ctx context.Context, key string, days []calendar.Day) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(days)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("calendar cache marshal failed")
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("calendar cache write failed")
	}
}

// InvalidateDate drops every cached view that could contain the given
// date: its week, its month, and both neighboring months (whose grids
// overlap into it through leading/trailing cells).
func (c *CalendarCache) InvalidateDate(ctx context.Context, date string) {
	if c.rdb == nil {
		return
	}

	d, err := calendar.ParseDate(date)
	if err != nil {
		return
	}

	if err := c.rdb.Del(ctx, KeysForDate(d)...).Err(); err != nil {
		c.logger.Warn().Err(err).Str("date", date).Msg("calendar cache invalidation failed")
	}
}

// KeysForDate returns the cache keys a change on the given day can make
// stale: the day's week view plus its month and both neighbor months.
// Neighbors are anchored to the first of the month so that end-of-month
// dates do not skip a month under AddDate normalization.
func KeysForDate(d time.Time) []string {
	monday, _ := calendar.WeekBounds(d)
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	return []string{
		WeekKey(calendar.FormatDate(monday)),
		MonthKey(d.Year(), int(d.Month())-1),
		MonthKey(prev.Year(), int(prev.Month())-1),
		MonthKey(next.Year(), int(next.Month())-1),
	}
}

// Health reports the cache backend status
func (c *CalendarCache) Health(ctx context.Context) map[string]string {
	if c.rdb == nil {
		return map[string]string{"status": "disabled"}
	}

	status := map[string]string{"status": "up"}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
	}

	return status
}
