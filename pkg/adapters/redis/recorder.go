package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/blockflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Recorder implements ports.Recorder using Redis.
// Each run is a list of JSON snapshots under prefix+"runs:"; a sorted set at
// prefix+"index" indexes run IDs by expiry.
type Recorder struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Recorder)

// WithTTL sets the expiration for runs.
func WithTTL(ttl time.Duration) Option {
	return func(r *Recorder) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix for runs.
func WithPrefix(prefix string) Option {
	return func(r *Recorder) {
		r.prefix = prefix
	}
}

// New creates a new Redis recorder with options.
func New(address, password string, db int, opts ...Option) *Recorder {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis recorder from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Recorder {
	r := &Recorder{
		client: client,
		prefix: "blockflow:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Recorder) key(runID string) string {
	return r.prefix + "runs:" + runID
}

func (r *Recorder) indexKey() string {
	return r.prefix + "index"
}

// Record appends the snapshot to its run.
func (r *Recorder) Record(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.RPush(ctx, r.key(snapshot.RunID), data)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(snapshot.RunID), r.ttl)
	}

	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(r.ttl).Unix())
	if r.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{
		Score:  score,
		Member: snapshot.RunID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record to redis: %w", err)
	}
	return nil
}

// Load retrieves the snapshots of a run in recording order.
func (r *Recorder) Load(ctx context.Context, runID string) ([]domain.Snapshot, error) {
	raw, err := r.client.LRange(ctx, r.key(runID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}
	if len(raw) == 0 {
		return nil, domain.ErrRunNotFound
	}

	snaps := make([]domain.Snapshot, 0, len(raw))
	for _, item := range raw {
		var s domain.Snapshot
		if err := json.Unmarshal([]byte(item), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

// Delete removes the run.
func (r *Recorder) Delete(ctx context.Context, runID string) error {
	pipe := r.client.Pipeline()

	pipe.Del(ctx, r.key(runID))
	pipe.ZRem(ctx, r.indexKey(), runID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns recorded runs, pruning expired entries from the index first.
func (r *Recorder) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := r.client.ZRemRangeByScore(ctx, r.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired runs: %w", err)
	}

	runs, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Close closes the redis client.
func (r *Recorder) Close() error {
	return r.client.Close()
}
