package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"photoshare/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern. If the key holds a JSON value it
// is unmarshaled into dest. Otherwise loader runs, is expected to populate
// dest, and the result is cached with the given TTL. Cache failures are never
// surfaced; the loader result wins.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, loader func() error) error {
	prefix := keyPrefix(key)

	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
				observability.CacheHits.WithLabelValues(prefix, "hit").Inc()
				return nil
			}
			// Corrupt entry, drop it and fall through to the loader.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			observability.CacheHits.WithLabelValues(prefix, "error").Inc()
		}
	}

	if err := loader(); err != nil {
		return err
	}

	if client != nil {
		if data, marshalErr := json.Marshal(dest); marshalErr == nil {
			client.Set(ctx, key, data, ttl)
		}
		observability.CacheHits.WithLabelValues(prefix, "miss").Inc()
	}

	return nil
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
