package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/redis/go-redis/v9"
)

const payloadField = "event"

var ErrNilClient = errors.New("redis client is nil")

// RedisStepStream keeps broadcast steps in Redis streams that expire after ttl.
type RedisStepStream struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStepStream wraps an existing Redis client. A non-positive ttlSeconds keeps streams forever.
func NewRedisStepStream(client *redis.Client, ttlSeconds int) (i.StepStream, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &RedisStepStream{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Append adds payload as a new stream entry and sets expiration if necessary.
func (s *RedisStepStream) Append(ctx context.Context, stream string, payload []byte) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{payloadField: payload},
	}).Err()
	if err != nil {
		return err
	}
	if s.ttl <= 0 {
		return nil
	}

	// Set expiration only if it's not already set
	ttl, err := s.client.TTL(ctx, stream).Result()
	if err == nil && ttl == -1 {
		_ = s.client.Expire(ctx, stream, s.ttl).Err()
	}
	return nil
}

// Range reads every entry of stream from the beginning.
func (s *RedisStepStream) Range(ctx context.Context, stream string) ([][]byte, error) {
	messages, err := s.client.XRange(ctx, stream, "-", "+").Result()
	if err != nil {
		return nil, err
	}

	payloads := make([][]byte, 0, len(messages))
	for _, message := range messages {
		value, ok := message.Values[payloadField].(string)
		if !ok {
			return nil, fmt.Errorf("stream %s entry %s has no %q field", stream, message.ID, payloadField)
		}
		payloads = append(payloads, []byte(value))
	}
	return payloads, nil
}
