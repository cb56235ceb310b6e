package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/mazewalk/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "mazewalk:"
	// DefaultTTL bounds how long a frame outlives its runner.
	DefaultTTL = 10 * time.Minute
)

// Store implements ports.SnapshotStore on Redis.
//
// Each session keeps its latest snapshot, without the graph, under
// <prefix><session>. Graphs are written once per maze under
// <prefix>maze:<maze id> and replaced when the session moves to a new maze.
// A sorted set <prefix>index tracks live sessions by expiry time.
type Store struct {
	client backend.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	written map[string]string // session -> maze ID whose graph is stored
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiry of snapshots and graphs. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock replaces the clock used to score the session index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New connects to Redis at addr.
func New(addr, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:  client,
		prefix:  DefaultPrefix,
		ttl:     DefaultTTL,
		now:     time.Now,
		written: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Locker returns a distributed locker sharing the store client and prefix.
func (s *Store) Locker(opts ...LockerOption) *Locker {
	return NewLocker(s.client, s.prefix, opts...)
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(sessionID string) string { return s.prefix + sessionID }

func (s *Store) graphKey(mazeID string) string { return s.prefix + "maze:" + mazeID }

func (s *Store) indexKey() string { return s.prefix + "index" }

// Save publishes the snapshot of a session.
func (s *Store) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	payload, err := json.Marshal(snap.WithoutGraph())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	score := 0.0
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).UnixNano()) / 1e9
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sessionID), payload, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})

	var refresh *backend.BoolCmd
	if snap.Graph != nil && snap.MazeID != "" {
		prev := s.storedMaze(sessionID)
		if prev == snap.MazeID {
			if s.ttl > 0 {
				refresh = pipe.Expire(ctx, s.graphKey(snap.MazeID), s.ttl)
			}
		} else {
			graph, err := json.Marshal(snap.Graph)
			if err != nil {
				return fmt.Errorf("failed to encode maze %s: %w", snap.MazeID, err)
			}
			pipe.Set(ctx, s.graphKey(snap.MazeID), graph, s.ttl)
			if prev != "" {
				pipe.Del(ctx, s.graphKey(prev))
			}
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.forget(sessionID)
		return fmt.Errorf("redis error saving session %s: %w", sessionID, err)
	}

	if refresh != nil && !refresh.Val() {
		// The graph expired under us; write it again on the next save.
		s.forget(sessionID)
	} else if snap.Graph != nil {
		s.remember(sessionID, snap.MazeID)
	}
	return nil
}

// Load retrieves the snapshot of a session and the graph it refers to.
// The graph is nil when it has already expired.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("redis error loading session %s: %w", sessionID, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.MazeID == "" {
		return snap, nil
	}

	graph, err := s.LoadGraph(ctx, snap.MazeID)
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		return domain.Snapshot{}, err
	}
	snap.Graph = graph
	return snap, nil
}

// LoadGraph retrieves a stored maze by ID.
func (s *Store) LoadGraph(ctx context.Context, mazeID string) (*domain.Graph, error) {
	data, err := s.client.Get(ctx, s.graphKey(mazeID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: maze %s", domain.ErrSnapshotNotFound, mazeID)
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading maze %s: %w", mazeID, err)
	}

	var g domain.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode maze %s: %w", mazeID, err)
	}
	return &g, nil
}

// Delete removes the snapshot of a session and the graphs it refers to.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	keys := []string{s.key(sessionID)}

	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == nil {
		var snap domain.Snapshot
		if json.Unmarshal(data, &snap) == nil && snap.MazeID != "" {
			keys = append(keys, s.graphKey(snap.MazeID))
		}
	} else if !errors.Is(err, backend.Nil) {
		return fmt.Errorf("redis error deleting session %s: %w", sessionID, err)
	}
	if prev := s.storedMaze(sessionID); prev != "" {
		keys = append(keys, s.graphKey(prev))
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error deleting session %s: %w", sessionID, err)
	}
	s.forget(sessionID)
	return nil
}

// List returns the live sessions. Expired entries are pruned from the index
// on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		now := strconv.FormatFloat(float64(s.now().UnixNano())/1e9, 'f', -1, 64)
		if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", now).Err(); err != nil {
			return nil, fmt.Errorf("redis error pruning index: %w", err)
		}
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing sessions: %w", err)
	}
	return sessions, nil
}

// storedMaze returns the maze ID whose graph this store last wrote for a session.
func (s *Store) storedMaze(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written[sessionID]
}

func (s *Store) remember(sessionID, mazeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[sessionID] = mazeID
}

func (s *Store) forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.written, sessionID)
}
