package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DayGuard serializes admission decisions per service day so two concurrent
// booking attempts cannot both observe the same quota counts and overshoot a
// cap. Callers wrap the read-check-append sequence in WithDay.
type DayGuard interface {
	WithDay(ctx context.Context, date string, fn func() error) error
}

// LocalDayGuard is the single-process guard: one mutex per calendar day.
type LocalDayGuard struct {
	mu   sync.Mutex
	days map[string]*sync.Mutex
}

// NewLocalDayGuard returns a guard suitable for a single-instance deployment.
func NewLocalDayGuard() *LocalDayGuard {
	return &LocalDayGuard{days: make(map[string]*sync.Mutex)}
}

func (g *LocalDayGuard) dayMutex(date string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.days[date]
	if !ok {
		m = &sync.Mutex{}
		g.days[date] = m
	}
	return m
}

// WithDay runs fn while holding the day's mutex.
func (g *LocalDayGuard) WithDay(_ context.Context, date string, fn func() error) error {
	m := g.dayMutex(date)
	m.Lock()
	defer m.Unlock()
	return fn()
}

// RedisDayGuard serializes across instances with a SetNX lock per day.
type RedisDayGuard struct {
	Client *redis.Client
	TTL    time.Duration // lock expiry guarding against a crashed holder
}

// NewRedisDayGuard returns a guard backed by the given redis client.
func NewRedisDayGuard(client *redis.Client) *RedisDayGuard {
	return &RedisDayGuard{Client: client, TTL: 10 * time.Second}
}

// releaseDayLock deletes the lock only if it still carries the holder's
// token. A holder that outlived the TTL must not remove a lock reacquired by
// another instance.
var releaseDayLock = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// WithDay acquires the day lock, polling until it is granted or ctx expires.
func (g *RedisDayGuard) WithDay(ctx context.Context, date string, fn func() error) error {
	key := fmt.Sprintf("daylock:%s", date)
	token := uuid.New().String()
	for {
		ok, err := g.Client.SetNX(ctx, key, token, g.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire day lock for %s: %w", date, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for day lock for %s: %w", date, ctx.Err())
		case <-time.After(20 * time.Millisecond):
		}
	}
	defer func() {
		// Release on a detached context so a cancelled request still frees
		// the lock instead of leaving it to TTL expiry.
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		releaseDayLock.Run(relCtx, g.Client, []string{key}, token)
	}()
	return fn()
}
