package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdus2609/vizor/internal/models"
)

// ConnectionHistoryRepository remembers connection values (never passwords)
// so the login form can offer them again.
type ConnectionHistoryRepository interface {
	Remember(ctx context.Context, details models.ConnectionDetails) error
	Options(ctx context.Context) (models.ConnectionOptions, error)
}

const (
	usernamesKey = "vizor:connections:usernames"
	hostsKey     = "vizor:connections:hosts"
	portsKey     = "vizor:connections:ports"
	databasesKey = "vizor:connections:databases"
)

type RedisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) Remember(ctx context.Context, details models.ConnectionDetails) error {
	values := map[string]string{
		usernamesKey: details.Username,
		hostsKey:     details.Host,
		portsKey:     details.Port,
		databasesKey: details.DatabaseName,
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			if value == "" {
				continue
			}
			pipe.SAdd(ctx, key, value)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	return err
}

func (r *RedisRepository) Options(ctx context.Context) (models.ConnectionOptions, error) {
	var opts models.ConnectionOptions
	targets := []struct {
		key string
		dst *[]string
	}{
		{usernamesKey, &opts.Usernames},
		{hostsKey, &opts.Hosts},
		{portsKey, &opts.Ports},
		{databasesKey, &opts.Databases},
	}

	for _, target := range targets {
		members, err := r.rdb.SMembers(ctx, target.key).Result()
		if err != nil {
			return models.ConnectionOptions{}, err
		}
		sort.Strings(members)
		*target.dst = members
	}
	return opts, nil
}

// MemoryConnectionHistory is used when no Redis address is configured.
type MemoryConnectionHistory struct {
	mu     sync.RWMutex
	values map[string]map[string]struct{}
}

func NewMemoryConnectionHistory() *MemoryConnectionHistory {
	return &MemoryConnectionHistory{values: make(map[string]map[string]struct{})}
}

func (m *MemoryConnectionHistory) Remember(ctx context.Context, details models.ConnectionDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.add(usernamesKey, details.Username)
	m.add(hostsKey, details.Host)
	m.add(portsKey, details.Port)
	m.add(databasesKey, details.DatabaseName)
	return nil
}

func (m *MemoryConnectionHistory) add(key, value string) {
	if value == "" {
		return
	}
	set, ok := m.values[key]
	if !ok {
		set = make(map[string]struct{})
		m.values[key] = set
	}
	set[value] = struct{}{}
}

func (m *MemoryConnectionHistory) Options(ctx context.Context) (models.ConnectionOptions, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return models.ConnectionOptions{
		Usernames: m.sorted(usernamesKey),
		Hosts:     m.sorted(hostsKey),
		Ports:     m.sorted(portsKey),
		Databases: m.sorted(databasesKey),
	}, nil
}

func (m *MemoryConnectionHistory) sorted(key string) []string {
	out := make([]string, 0, len(m.values[key]))
	for v := range m.values[key] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var (
	_ ConnectionHistoryRepository = (*RedisRepository)(nil)
	_ ConnectionHistoryRepository = (*MemoryConnectionHistory)(nil)
)
