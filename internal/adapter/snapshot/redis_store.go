// Package snapshot persists the last generated resume document and
// artifact state in Redis.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-editor/internal/domain"
	"resume-editor/internal/usecase"

	"github.com/redis/go-redis/v9"
)

// Keys shared with the generation flow.
const (
	keyResumeData = "lastResumeData"
	keyCompany    = "lastCompany"
	keyViewURL    = "lastViewUrl"
	keyStatus     = "lastStatus"
)

// RedisStore implements the persisted snapshot store on Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// LoadDocument reads the last persisted document.
func (s *RedisStore) LoadDocument(ctx context.Context) (*domain.Document, error) {
	data, err := s.client.Get(ctx, keyResumeData).Result()
	if err == redis.Nil {
		return nil, usecase.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", keyResumeData, err)
	}
	var doc domain.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyResumeData, err)
	}
	return &doc, nil
}

// LoadCompany reads the artifact identity established at generation time.
func (s *RedisStore) LoadCompany(ctx context.Context) (string, error) {
	company, err := s.client.Get(ctx, keyCompany).Result()
	if err == redis.Nil {
		return "", usecase.ErrNoSnapshot
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", keyCompany, err)
	}
	return company, nil
}

// SaveResult replaces the persisted document and artifact reference after
// a successful rebuild.
func (s *RedisStore) SaveResult(ctx context.Context, doc *domain.Document, viewURL, status string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyResumeData, data, 0)
	pipe.Set(ctx, keyViewURL, viewURL, 0)
	pipe.Set(ctx, keyStatus, status, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// Seed writes an initial generated document and company key, as the
// generation flow would.
func (s *RedisStore) Seed(ctx context.Context, doc *domain.Document, company string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyResumeData, data, 0)
	pipe.Set(ctx, keyCompany, company, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}
	return nil
}

// ViewURL reads the current artifact reference, empty when none exists.
func (s *RedisStore) ViewURL(ctx context.Context) (string, error) {
	url, err := s.client.Get(ctx, keyViewURL).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", keyViewURL, err)
	}
	return url, nil
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
