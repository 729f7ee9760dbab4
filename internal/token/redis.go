package token

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists the credential in Redis under the shared Key, standing
// in for browser-profile storage. Stores pointing at the same Redis database
// act like tabs of one profile: a Set or Clear notifies local subscribers
// synchronously, then publishes on AuthChannel so the other stores hear about
// it asynchronously. Messages carry the origin id so a store does not notify
// itself twice off its own publish.
type RedisStore struct {
	client *redis.Client
	origin string

	mu     sync.Mutex
	nextID int
	subs   map[int]func()

	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisStore connects the store to a Redis database and starts listening
// for remote credential changes. Close releases the listener.
func NewRedisStore(ctx context.Context, client *redis.Client) (*RedisStore, error) {
	s := &RedisStore{
		client: client,
		origin: uuid.NewString(),
		subs:   make(map[int]func()),
		done:   make(chan struct{}),
	}

	s.pubsub = client.Subscribe(ctx, AuthChannel)
	// Force the subscription to be established before returning so a change
	// published right after construction is not lost.
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return nil, err
	}

	go s.listen()
	return s, nil
}

func (s *RedisStore) listen() {
	defer close(s.done)
	for msg := range s.pubsub.Channel() {
		if msg.Payload == s.origin {
			continue
		}
		for _, fn := range s.subscribers() {
			fn()
		}
	}
}

// Get returns the persisted credential. Unreachable storage reads as logged
// out rather than failing.
func (s *RedisStore) Get() (string, bool) {
	val, err := s.client.Get(context.Background(), Key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set persists the credential, notifies local subscribers, then broadcasts.
func (s *RedisStore) Set(token string) error {
	ctx := context.Background()
	if err := s.client.Set(ctx, Key, token, 0).Err(); err != nil {
		return err
	}
	for _, fn := range s.subscribers() {
		fn()
	}
	return s.client.Publish(ctx, AuthChannel, s.origin).Err()
}

// Clear removes the credential, notifies local subscribers, then broadcasts.
func (s *RedisStore) Clear() error {
	ctx := context.Background()
	if err := s.client.Del(ctx, Key).Err(); err != nil {
		return err
	}
	for _, fn := range s.subscribers() {
		fn()
	}
	return s.client.Publish(ctx, AuthChannel, s.origin).Err()
}

// Subscribe registers fn for change notifications until cancel is called.
func (s *RedisStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close stops the remote-change listener. The credential stays persisted.
func (s *RedisStore) Close() error {
	err := s.pubsub.Close()
	<-s.done
	return err
}

func (s *RedisStore) subscribers() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
