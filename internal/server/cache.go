package server

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/briefer/config"
	agentcore "github.com/mohammad-safakhou/briefer/internal/agent/core"
	"github.com/redis/go-redis/v9"
)

// RunCache keeps finished research runs in redis keyed by query hash. Every
// method degrades to a miss on failure; the cache must never fail a request.
type RunCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRunCache connects to redis and verifies the connection.
func NewRunCache(cfg config.RedisConfig) (*RunCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RunCache{
		client: client,
		ttl:    ttl,
		logger: log.New(log.Writer(), "[CACHE] ", log.LstdFlags),
	}, nil
}

func runKey(query string) string {
	sum := sha1.Sum([]byte(query))
	return "run:" + hex.EncodeToString(sum[:])
}

// Get looks up a cached run for the query.
func (rc *RunCache) Get(ctx context.Context, query string) (agentcore.RunResult, bool) {
	raw, err := rc.client.Get(ctx, runKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			rc.logger.Printf("get failed: %v", err)
		}
		return agentcore.RunResult{}, false
	}
	var res agentcore.RunResult
	if err := json.Unmarshal(raw, &res); err != nil {
		rc.logger.Printf("cached run is corrupt, discarding: %v", err)
		_ = rc.client.Del(ctx, runKey(query)).Err()
		return agentcore.RunResult{}, false
	}
	return res, true
}

// Set stores a finished run.
func (rc *RunCache) Set(ctx context.Context, query string, res agentcore.RunResult) {
	raw, err := json.Marshal(res)
	if err != nil {
		rc.logger.Printf("marshal failed: %v", err)
		return
	}
	if err := rc.client.Set(ctx, runKey(query), raw, rc.ttl).Err(); err != nil {
		rc.logger.Printf("set failed: %v", err)
	}
}

// Close releases the redis connection.
func (rc *RunCache) Close() error {
	return rc.client.Close()
}
