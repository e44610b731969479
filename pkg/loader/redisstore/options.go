// Package redisstore builds the go-redis client used to read sequences stored
// as redis lists.
package redisstore

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures the redis.Options a Store is built from.
type Option func(*redis.Options)

// ApplyOptions applies the given options to opt, in order.
func ApplyOptions(opt *redis.Options, options ...Option) {
	for _, option := range options {
		option(opt)
	}
}

// WithAddr sets the host:port of the server.
func WithAddr(addr string) Option {
	return func(opt *redis.Options) {
		opt.Addr = addr
	}
}

// WithCredentials sets the ACL username and the password.
func WithCredentials(username, password string) Option {
	return func(opt *redis.Options) {
		opt.Username = username
		opt.Password = password
	}
}

// WithDB selects the logical database.
func WithDB(db int) Option {
	return func(opt *redis.Options) {
		opt.DB = db
	}
}

// WithMaxRetries sets the `MaxRetries` field of the `redis.Options` struct.
func WithMaxRetries(maxRetries int) Option {
	return func(opt *redis.Options) {
		opt.MaxRetries = maxRetries
	}
}

// WithTimeouts sets the dial, read and write timeouts. Zero values are left untouched.
func WithTimeouts(dial, read, write time.Duration) Option {
	return func(opt *redis.Options) {
		if dial > 0 {
			opt.DialTimeout = dial
		}

		if read > 0 {
			opt.ReadTimeout = read
		}

		if write > 0 {
			opt.WriteTimeout = write
		}
	}
}

// WithTLSConfig sets the `TLSConfig` field of the `redis.Options` struct.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(opt *redis.Options) {
		opt.TLSConfig = tlsConfig
	}
}

// FromURL copies the connection settings of a redis:// or rediss:// URL, as
// understood by redis.ParseURL.
func FromURL(rawURL string) (Option, error) {
	parsed, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	return func(opt *redis.Options) {
		opt.Addr = parsed.Addr
		opt.Username = parsed.Username
		opt.Password = parsed.Password
		opt.DB = parsed.DB
		opt.TLSConfig = parsed.TLSConfig
	}, nil
}
