package session

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/2beens/fitpro/internal/telemetry/tracing"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const redisKeyPrefix = "fitpro-secret||"

type RedisSecretStore struct {
	redisClient *redis.Client
}

// NewRedisClient connects to redis with tracing enabled. A failed ping is
// only logged, commands will report the error.
func NewRedisClient(ctx context.Context, host, port, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: password,
		DB:       0, // use default DB
	})
	rdb.AddHook(redisotel.NewTracingHook())

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	return rdb
}

func NewRedisSecretStore(redisClient *redis.Client) *RedisSecretStore {
	return &RedisSecretStore{
		redisClient: redisClient,
	}
}

func redisKey(key SecretKey) string {
	return redisKeyPrefix + key.String()
}

func (s *RedisSecretStore) Get(ctx context.Context, key SecretKey) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisSecretStore.get")
	span.SetAttributes(attribute.String("secret.key", key.String()))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	value, err := s.redisClient.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get secret %s: %w", key, err)
	}

	return value, nil
}

func (s *RedisSecretStore) Set(ctx context.Context, key SecretKey, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisSecretStore.set")
	span.SetAttributes(attribute.String("secret.key", key.String()))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.redisClient.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set secret %s: %w", key, err)
	}
	return nil
}

func (s *RedisSecretStore) Delete(ctx context.Context, key SecretKey) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisSecretStore.delete")
	span.SetAttributes(attribute.String("secret.key", key.String()))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.redisClient.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete secret %s: %w", key, err)
	}
	return nil
}
