// Package ban blocks clients that keep hitting the rate limit.
package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/redissvc"
)

const (
	DefaultMaxStrikes  = 5
	DefaultStrikeTTL   = time.Minute
	DefaultBanDuration = 15 * time.Minute
)

// Tracker counts rate limit strikes and bans a target after too many.
type Tracker interface {
	// Strike records one rejected request and reports whether the target is
	// now banned.
	Strike(ctx context.Context, target, route string) (bool, error)
	IsBanned(ctx context.Context, target string) (bool, error)
}

// Policy is shared by both trackers.
type Policy struct {
	MaxStrikes  int
	StrikeTTL   time.Duration
	BanDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxStrikes: DefaultMaxStrikes, StrikeTTL: DefaultStrikeTTL, BanDuration: DefaultBanDuration}
}

type LogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

func logBan(ctx context.Context, e LogEntry) {
	logger.Warn(ctx).
		Str("target", e.Target).
		Str("route", e.Route).
		Int("strikes", e.Strikes).
		Msg("client banned")
}

type strikes struct {
	count int
	reset time.Time
}

type MemoryTracker struct {
	policy Policy
	now    func() time.Time

	mu      sync.Mutex
	strikes map[string]strikes
	banned  map[string]time.Time
	log     []LogEntry
}

func NewMemoryTracker(p Policy) *MemoryTracker {
	return &MemoryTracker{
		policy:  p,
		now:     time.Now,
		strikes: map[string]strikes{},
		banned:  map[string]time.Time{},
	}
}

func (t *MemoryTracker) Strike(ctx context.Context, target, route string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	s := t.strikes[target]
	if now.After(s.reset) {
		s = strikes{reset: now.Add(t.policy.StrikeTTL)}
	}
	s.count++
	t.strikes[target] = s

	if s.count < t.policy.MaxStrikes {
		return false, nil
	}

	delete(t.strikes, target)
	t.banned[target] = now.Add(t.policy.BanDuration)
	entry := LogEntry{Target: target, Route: route, Strikes: s.count, Time: now}
	t.log = append(t.log, entry)
	logBan(ctx, entry)
	return true, nil
}

func (t *MemoryTracker) IsBanned(_ context.Context, target string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	until, ok := t.banned[target]
	if !ok {
		return false, nil
	}
	if t.now().After(until) {
		delete(t.banned, target)
		return false, nil
	}
	return true, nil
}

// Log returns the bans recorded so far.
func (t *MemoryTracker) Log() []LogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]LogEntry(nil), t.log...)
}

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:banned:"
	// DailyBanLogKey holds one JSON LogEntry per ban.
	DailyBanLogKey = "ratelimit:banlog:daily"
)

type RedisTracker struct {
	policy Policy
	rdb    *redis.Client
}

func NewRedisTracker(rs *redissvc.RedisService, p Policy) *RedisTracker {
	return &RedisTracker{policy: p, rdb: rs.Rdb()}
}

func (t *RedisTracker) Strike(ctx context.Context, target, route string) (bool, error) {
	key := strikeKeyPrefix + target

	pipe := t.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.policy.StrikeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record strike: %w", err)
	}

	count := int(incr.Val())
	if count < t.policy.MaxStrikes {
		return false, nil
	}

	entry := LogEntry{Target: target, Route: route, Strikes: count, Time: time.Now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return false, err
	}

	pipe = t.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.Set(ctx, banKeyPrefix+target, route, t.policy.BanDuration)
	pipe.RPush(ctx, DailyBanLogKey, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to ban %s: %w", target, err)
	}

	logBan(ctx, entry)
	return true, nil
}

func (t *RedisTracker) IsBanned(ctx context.Context, target string) (bool, error) {
	n, err := t.rdb.Exists(ctx, banKeyPrefix+target).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Log returns the bans recorded in the daily log.
func (t *RedisTracker) Log(ctx context.Context) ([]LogEntry, error) {
	items, err := t.rdb.LRange(ctx, DailyBanLogKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(items))
	for _, item := range items {
		var e LogEntry
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
