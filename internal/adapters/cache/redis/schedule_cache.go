package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"medicine-reminder/internal/domain/schedule"
)

// kv es lo mínimo que usamos de redis; *goredis.Client lo cumple.
type kv interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// ScheduleCache implementa schedule.Cache sobre redis. Guarda el Result como JSON.
type ScheduleCache struct {
	rdb kv
	ttl time.Duration
}

var _ schedule.Cache = (*ScheduleCache)(nil)

func NewScheduleCache(rdb kv, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{rdb: rdb, ttl: ttl}
}

// Dial abre el cliente y hace ping. El caller cierra el cliente.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("missing redis addr")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (c *ScheduleCache) Get(ctx context.Context, key string) (schedule.Result, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return schedule.Result{}, false, nil
		}
		return schedule.Result{}, false, err
	}

	var r schedule.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		// entrada corrupta: se trata como miss y se pisa en el próximo Set
		return schedule.Result{}, false, nil
	}
	return r, true, nil
}

func (c *ScheduleCache) Set(ctx context.Context, key string, r schedule.Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}
