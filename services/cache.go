package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"vehicle-forecast-api/config"
	"vehicle-forecast-api/models"

	"github.com/redis/go-redis/v9"
)

const (
	recordsCacheKey = "historical:all"
	recordsCacheTTL = 30 * time.Second

	// ChangeChannel carries models.ChangeEvent payloads.
	ChangeChannel = "vehicle-forecast:historical"
)

// CacheService wraps an optional Redis client. Every method is a no-op when
// Redis is not configured or unreachable.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(cfg config.RedisConfig) (*CacheService, error) {
	if !cfg.Enabled() {
		return &CacheService{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		log.Printf("Redis ping attempt %d/5 failed: %v", i+1, lastErr)
		time.Sleep(2 * time.Second)
	}

	_ = client.Close()
	return &CacheService{}, fmt.Errorf("redis ping failed after 5 attempts: %w", lastErr)
}

// NewCacheServiceWithClient wraps an existing client; nil disables caching.
func NewCacheServiceWithClient(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes key into dest and reports whether it was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Available() {
		return false, nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if !s.Available() {
		return nil
	}
	return s.client.Del(ctx, key).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, channel, data).Err()
}

// Subscribe returns nil when Redis is unavailable.
func (s *CacheService) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if !s.Available() {
		return nil
	}
	return s.client.Subscribe(ctx, channel)
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}

func (s *CacheService) CachedRecords(ctx context.Context) ([]models.HistoricalRecord, bool) {
	var rows []models.HistoricalRecord
	found, err := s.Get(ctx, recordsCacheKey, &rows)
	if err != nil {
		log.Printf("cache read %s failed: %v", recordsCacheKey, err)
		return nil, false
	}
	return rows, found
}

func (s *CacheService) StoreRecords(ctx context.Context, rows []models.HistoricalRecord) {
	if err := s.Set(ctx, recordsCacheKey, rows, recordsCacheTTL); err != nil {
		log.Printf("cache write %s failed: %v", recordsCacheKey, err)
	}
}

func (s *CacheService) InvalidateRecords(ctx context.Context) {
	if err := s.Delete(ctx, recordsCacheKey); err != nil {
		log.Printf("cache invalidate %s failed: %v", recordsCacheKey, err)
	}
}

func (s *CacheService) PublishChange(ctx context.Context, ev models.ChangeEvent) {
	if err := s.Publish(ctx, ChangeChannel, ev); err != nil {
		log.Printf("publish %s for tahun=%d failed: %v", ev.Action, ev.Tahun, err)
	}
}
