package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Abdus2609/vizor/internal/models"
)

// QueryHistoryRepository keeps the most recent executed visualisation queries.
type QueryHistoryRepository interface {
	Create(ctx context.Context, entry *models.QueryHistory) error
	Recent(ctx context.Context, limit int) ([]models.QueryHistory, error)
}

const queryHistoryKey = "vizor:query_history"

// RedisQueryHistoryRepository stores entries as JSON in a capped list, newest first.
type RedisQueryHistoryRepository struct {
	rdb     *redis.Client
	maxSize int64
}

func NewRedisQueryHistoryRepository(rdb *redis.Client, maxSize int) *RedisQueryHistoryRepository {
	return &RedisQueryHistoryRepository{rdb: rdb, maxSize: int64(maxSize)}
}

func (r *RedisQueryHistoryRepository) Create(ctx context.Context, entry *models.QueryHistory) error {
	entry.Prepare()

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode query history: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, queryHistoryKey, payload)
		pipe.LTrim(ctx, queryHistoryKey, 0, r.maxSize-1)
		return nil
	})
	return err
}

func (r *RedisQueryHistoryRepository) Recent(ctx context.Context, limit int) ([]models.QueryHistory, error) {
	if limit <= 0 {
		return []models.QueryHistory{}, nil
	}

	raw, err := r.rdb.LRange(ctx, queryHistoryKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.QueryHistory, 0, len(raw))
	for _, item := range raw {
		var entry models.QueryHistory
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode query history: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MemoryQueryHistoryRepository is the fallback when Redis is not configured.
type MemoryQueryHistoryRepository struct {
	mu      sync.RWMutex
	entries []models.QueryHistory
	maxSize int
}

func NewMemoryQueryHistoryRepository(maxSize int) *MemoryQueryHistoryRepository {
	return &MemoryQueryHistoryRepository{maxSize: maxSize}
}

func (m *MemoryQueryHistoryRepository) Create(ctx context.Context, entry *models.QueryHistory) error {
	entry.Prepare()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]models.QueryHistory{*entry}, m.entries...)
	if len(m.entries) > m.maxSize {
		m.entries = m.entries[:m.maxSize]
	}
	return nil
}

func (m *MemoryQueryHistoryRepository) Recent(ctx context.Context, limit int) ([]models.QueryHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]models.QueryHistory, limit)
	copy(out, m.entries[:limit])
	return out, nil
}

var (
	_ QueryHistoryRepository = (*RedisQueryHistoryRepository)(nil)
	_ QueryHistoryRepository = (*MemoryQueryHistoryRepository)(nil)
)
