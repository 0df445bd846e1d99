// Package cache keeps short-lived Redis snapshots of read-side data. The
// availability calendar tolerates eventual consistency: a stale snapshot only
// ever makes the client-side pre-flight more optimistic, and booking creation
// re-validates against the database anyway.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"driveshare/internal/domain/availability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const intervalKeyPrefix = "driveshare:intervals:"

// IntervalSource is the authoritative loader the cache falls back to.
type IntervalSource interface {
	ActiveIntervals(ctx context.Context, vehicleID uuid.UUID) ([]availability.ReservedInterval, error)
}

// CachedIntervalSource serves reserved-interval snapshots from Redis with a
// short TTL. Redis being down degrades to the underlying source; it never
// fails a request.
type CachedIntervalSource struct {
	rdb    *redis.Client
	source IntervalSource
	ttl    time.Duration
}

func NewCachedIntervalSource(rdb *redis.Client, source IntervalSource, ttl time.Duration) *CachedIntervalSource {
	return &CachedIntervalSource{rdb: rdb, source: source, ttl: ttl}
}

type cachedInterval struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	PickupHour int       `json:"pickup_hour"`
	ReturnHour int       `json:"return_hour"`
}

func (c *CachedIntervalSource) ActiveIntervals(ctx context.Context, vehicleID uuid.UUID) ([]availability.ReservedInterval, error) {
	key := intervalKeyPrefix + vehicleID.String()

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached []cachedInterval
		if unmarshalErr := json.Unmarshal(payload, &cached); unmarshalErr == nil {
			return fromCached(cached), nil
		}
		// Corrupt entry: drop it and reload.
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		slog.Warn("interval cache read failed", "vehicle_id", vehicleID, "error", err.Error())
	}

	intervals, err := c.source.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(toCached(intervals)); marshalErr == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			slog.Warn("interval cache write failed", "vehicle_id", vehicleID, "error", setErr.Error())
		}
	}

	return intervals, nil
}

// Invalidate drops a vehicle's snapshot after its booking set changes.
func (c *CachedIntervalSource) Invalidate(ctx context.Context, vehicleID uuid.UUID) {
	key := intervalKeyPrefix + vehicleID.String()
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("interval cache invalidation failed", "vehicle_id", vehicleID, "error", err.Error())
	}
}

func toCached(intervals []availability.ReservedInterval) []cachedInterval {
	out := make([]cachedInterval, len(intervals))
	for i, iv := range intervals {
		out[i] = cachedInterval{
			Start:      iv.Start,
			End:        iv.End,
			PickupHour: iv.PickupHour,
			ReturnHour: iv.ReturnHour,
		}
	}
	return out
}

func fromCached(cached []cachedInterval) []availability.ReservedInterval {
	out := make([]availability.ReservedInterval, len(cached))
	for i, iv := range cached {
		out[i] = availability.ReservedInterval{
			Start:      iv.Start.UTC(),
			End:        iv.End.UTC(),
			PickupHour: iv.PickupHour,
			ReturnHour: iv.ReturnHour,
		}
	}
	return out
}
