package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"sfc-bus-schedule/internal/domain"
	"sfc-bus-schedule/internal/platform/obs"
	"sfc-bus-schedule/internal/ports"
)

const DefaultKeyPrefix = "sfc_bus_schedule_"

// ScheduleCache implements ports.ScheduleCache on any ports.KeyValueStore.
//
// Writes are best effort: encoding and store failures are logged and
// dropped. There is no locking here; concurrent writers to one key race and
// the last write wins.
type ScheduleCache struct {
	store  ports.KeyValueStore
	prefix string
	log    *zap.Logger
}

func NewScheduleCache(store ports.KeyValueStore, prefix string, log *zap.Logger) *ScheduleCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ScheduleCache{store: store, prefix: prefix, log: log}
}

// Key is {prefix}{direction}_{pathComponent}.
func (c *ScheduleCache) Key(direction domain.Direction, scheduleType domain.ScheduleType) string {
	return c.prefix + string(direction) + "_" + scheduleType.PathComponent()
}

func (c *ScheduleCache) Put(
	ctx context.Context,
	direction domain.Direction,
	scheduleType domain.ScheduleType,
	resp domain.ScheduleResponse,
) {
	key := c.Key(direction, scheduleType)

	b, err := json.Marshal(resp)
	if err != nil {
		obs.CacheWrites.WithLabelValues("error").Inc()
		c.log.Warn("schedule cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, key, b); err != nil {
		obs.CacheWrites.WithLabelValues("error").Inc()
		c.log.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
		return
	}

	obs.CacheWrites.WithLabelValues("ok").Inc()
}

func (c *ScheduleCache) Get(
	ctx context.Context,
	direction domain.Direction,
	scheduleType domain.ScheduleType,
) (domain.ScheduleResponse, bool) {
	key := c.Key(direction, scheduleType)

	b, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			obs.CacheReads.WithLabelValues("miss").Inc()
		} else {
			obs.CacheReads.WithLabelValues("error").Inc()
			c.log.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
		}
		return domain.ScheduleResponse{}, false
	}

	var resp domain.ScheduleResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		obs.CacheReads.WithLabelValues("corrupt").Inc()
		c.log.Warn("schedule cache record unreadable", zap.String("key", key), zap.Error(err))
		return domain.ScheduleResponse{}, false
	}

	obs.CacheReads.WithLabelValues("hit").Inc()
	return resp, true
}

// Invalidate removes the record for (direction, scheduleType). Removing an
// absent record is not an error.
func (c *ScheduleCache) Invalidate(ctx context.Context, direction domain.Direction, scheduleType domain.ScheduleType) error {
	key := c.Key(direction, scheduleType)
	if err := c.store.Delete(ctx, key); err != nil {
		c.log.Warn("schedule cache delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("invalidate %q: %w", key, err)
	}
	return nil
}

// ParseKey splits an unprefixed key such as "from_sfc_weekday" back into
// its direction and schedule type.
func ParseKey(key string) (domain.Direction, domain.ScheduleType, error) {
	for _, dir := range []domain.Direction{domain.FromSFC, domain.ToSFC} {
		rest, ok := strings.CutPrefix(key, string(dir)+"_")
		if !ok {
			continue
		}
		st := domain.ParseScheduleType(rest)
		if st.IsUnknown() {
			return "", domain.ScheduleType{}, fmt.Errorf("parse key %q: unknown schedule type %q", key, rest)
		}
		return dir, st, nil
	}
	return "", domain.ScheduleType{}, fmt.Errorf("parse key %q: unknown direction", key)
}
