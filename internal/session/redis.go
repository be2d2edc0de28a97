package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/avtoline/showroom-bot/pkg/logging"
)

// RedisStore persists sessions in Redis so the bot can restart, or run
// multiple replicas behind sticky participant routing, without losing
// conversations.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
	tracer trace.Tracer
	locks  *keyedMutex
}

// NewRedisStore creates a Redis-backed session store. Sessions expire after
// ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *logging.Logger) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		logger: logger,
		tracer: otel.Tracer("showroom.internal.session"),
		locks:  newKeyedMutex(),
	}
}

// Get loads the participant's session, creating a fresh one on first contact.
// A record that fails to decode is discarded and replaced; losing one
// conversation's state beats refusing every turn from that participant.
func (s *RedisStore) Get(ctx context.Context, participantID string) (*Context, error) {
	ctx, span := s.tracer.Start(ctx, "session.get")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(participantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return NewContext(), nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load %s: %w", participantID, err)
	}

	var sc Context
	if err := json.Unmarshal(data, &sc); err != nil {
		s.logger.Warn("discarding undecodable session", "participant", participantID, "error", err)
		return NewContext(), nil
	}
	if !sc.State.Valid() {
		sc.State = StateNone
	}
	return &sc, nil
}

// Save persists the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, participantID string, sc *Context) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()

	data, err := json.Marshal(sc)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal %s: %w", participantID, err)
	}
	if err := s.redis.Set(ctx, sessionKey(participantID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist %s: %w", participantID, err)
	}
	return nil
}

// Lock acquires the participant's turn lock. The lock is process-local; a
// multi-replica deployment must route each participant to one replica.
func (s *RedisStore) Lock(participantID string) func() {
	return s.locks.lock(participantID)
}

func sessionKey(participantID string) string {
	return fmt.Sprintf("session:%s", participantID)
}
