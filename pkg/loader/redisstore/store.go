package redisstore

import (
	"context"
	"net"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
)

// Store owns a redis client.
type Store struct {
	Client *redis.Client
}

// New creates a store from the default client settings overridden by opts.
func New(opts ...Option) (*Store, error) {
	opt := &redis.Options{
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout: constants.RedisDialTimeout,
			}

			return dialer.DialContext(ctx, network, addr)
		},
		MaxRetries:   constants.RedisClientMaxRetries,
		DialTimeout:  constants.RedisDialTimeout,
		ReadTimeout:  constants.RedisClientReadTimeout,
		WriteTimeout: constants.RedisClientWriteTimeout,
		PoolSize:     constants.RedisClientPoolSize,
	}

	ApplyOptions(opt, opts...)

	if strings.TrimSpace(opt.Addr) == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis address")
	}

	return &Store{Client: redis.NewClient(opt)}, nil
}

// Options returns the settings the client was built with.
func (s *Store) Options() *redis.Options {
	return s.Client.Options()
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	err := s.Client.Ping(ctx).Err()
	if err != nil {
		return ewrap.Wrap(err, "redis ping")
	}

	return nil
}

// Close closes the client and its connections.
func (s *Store) Close() error {
	return s.Client.Close()
}
