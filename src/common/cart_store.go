package common

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type CartStore interface {
	Load(ctx context.Context, key string) (*Cart, error)
	Save(ctx context.Context, key string, cart *Cart) error
	Clear(ctx context.Context, key string) error
}

// RedisCartStore keeps each cart as a JSON string with a sliding TTL.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) Load(ctx context.Context, key string) (*Cart, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return NewCart(), nil
	} else if err != nil {
		return nil, err
	}
	return decodeCart([]byte(val))
}

func (s *RedisCartStore) Save(ctx context.Context, key string, cart *Cart) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, string(b), s.ttl).Err()
}

func (s *RedisCartStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// MemoryCartStore serves single-instance deployments without Redis.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: map[string][]byte{}}
}

func (s *MemoryCartStore) Load(_ context.Context, key string) (*Cart, error) {
	s.mu.Lock()
	b, ok := s.carts[key]
	s.mu.Unlock()
	if !ok {
		return NewCart(), nil
	}
	return decodeCart(b)
}

func (s *MemoryCartStore) Save(_ context.Context, key string, cart *Cart) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[key] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryCartStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}

func decodeCart(b []byte) (*Cart, error) {
	cart := NewCart()
	if err := json.Unmarshal(b, cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	cart.Recalculate()
	return cart, nil
}
