package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/paisabot-dev/paisabot/internal/model"
)

const keyPrefix = "ledger:"

// Compile-time check.
var _ Store = (*RedisStore)(nil)

// RedisStore keeps one JSON-encoded record per chat under ledger:<chatID>.
// A per-chat mutex serializes the read-modify-write in Update; distinct
// chats proceed concurrently.
type RedisStore struct {
	client *redis.Client
	locks  sync.Map // chat key -> *sync.Mutex
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetOrCreate(ctx context.Context, chatID int64) (model.Record, error) {
	rec, ok, err := s.get(ctx, chatKey(chatID))
	if err != nil {
		return model.Record{}, err
	}
	if !ok {
		return model.NewRecord(), nil
	}
	return rec, nil
}

func (s *RedisStore) Update(ctx context.Context, chatID int64, mutate func(*model.Record)) (model.Record, error) {
	key := chatKey(chatID)
	mu := s.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	rec, ok, err := s.get(ctx, key)
	if err != nil {
		return model.Record{}, err
	}
	if !ok {
		rec = model.NewRecord()
	}
	mutate(&rec)

	data, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("marshaling record: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return rec, fmt.Errorf("writing record %s: %w", key, err)
	}
	return rec, nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) get(ctx context.Context, key string) (model.Record, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Record{}, false, nil
	}
	if err != nil {
		return model.Record{}, false, fmt.Errorf("reading record %s: %w", key, err)
	}
	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Record{}, false, fmt.Errorf("parsing record %s: %w", key, err)
	}
	return rec, true, nil
}

func (s *RedisStore) lockFor(key string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
