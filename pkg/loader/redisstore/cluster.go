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

// ClusterOption configures the redis.ClusterOptions a ClusterStore is built from.
type ClusterOption func(*redis.ClusterOptions)

// ApplyClusterOptions applies the given options to opt, in order.
func ApplyClusterOptions(opt *redis.ClusterOptions, options ...ClusterOption) {
	for _, option := range options {
		option(opt)
	}
}

// WithClusterAddrs sets the seed nodes of the cluster.
func WithClusterAddrs(addrs ...string) ClusterOption {
	return func(opt *redis.ClusterOptions) {
		opt.Addrs = addrs
	}
}

// ClusterFromURL copies the settings of a cluster URL as understood by
// redis.ParseClusterURL: redis://[user:pass@]host:port?addr=host2:port&addr=...
func ClusterFromURL(rawURL string) (ClusterOption, error) {
	parsed, err := redis.ParseClusterURL(rawURL)
	if err != nil {
		return nil, err
	}

	return func(opt *redis.ClusterOptions) {
		opt.Addrs = parsed.Addrs
		opt.Username = parsed.Username
		opt.Password = parsed.Password
		opt.TLSConfig = parsed.TLSConfig
	}, nil
}

// ClusterStore owns a redis cluster client.
type ClusterStore struct {
	Client *redis.ClusterClient
}

// NewCluster creates a cluster store from the default client settings overridden by opts.
func NewCluster(opts ...ClusterOption) (*ClusterStore, error) {
	opt := &redis.ClusterOptions{
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: constants.RedisDialTimeout}

			return dialer.DialContext(ctx, network, addr)
		},
		MaxRetries:   constants.RedisClientMaxRetries,
		DialTimeout:  constants.RedisDialTimeout,
		ReadTimeout:  constants.RedisClientReadTimeout,
		WriteTimeout: constants.RedisClientWriteTimeout,
		PoolSize:     constants.RedisClientPoolSize,
	}

	ApplyClusterOptions(opt, opts...)

	if len(opt.Addrs) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis cluster addrs")
	}

	for _, addr := range opt.Addrs {
		if strings.TrimSpace(addr) == "" {
			return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis cluster address")
		}
	}

	return &ClusterStore{Client: redis.NewClusterClient(opt)}, nil
}

// Options returns the settings the client was built with.
func (s *ClusterStore) Options() *redis.ClusterOptions {
	return s.Client.Options()
}

// Close closes the client and its connections.
func (s *ClusterStore) Close() error {
	return s.Client.Close()
}
