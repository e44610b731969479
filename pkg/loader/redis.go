package loader

import (
	"context"
	"net/url"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/pkg/loader/redisstore"
)

// ListReader is the subset of the redis client the loader needs.
type ListReader interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisLoader reads a sequence stored as a redis list, one integer per element.
type RedisLoader struct {
	client ListReader
	key    string
	source string
	// closer is set when the loader owns the client.
	closer func() error
}

// NewRedisLoader returns a loader reading the list key through client.
func NewRedisLoader(client ListReader, key string) (*RedisLoader, error) {
	if client == nil {
		return nil, sentinel.ErrNilClient
	}

	if key == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis key")
	}

	return &RedisLoader{client: client, key: key, source: "redis:" + key}, nil
}

// NewRedisLoaderFromURL parses redis://[user:pass@]host:port/db?key=<list> and
// dials a dedicated client, closed once the list has been loaded.
// opts are applied after the URL settings.
func NewRedisLoaderFromURL(location string, opts ...redisstore.Option) (*RedisLoader, error) {
	u, key, err := splitListKey(location, "")
	if err != nil {
		return nil, err
	}

	fromURL, err := redisstore.FromURL(u.String())
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}

	store, err := redisstore.New(append([]redisstore.Option{fromURL}, opts...)...)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}

	return ownedLoader(store.Client, store.Close, u, key)
}

// NewRedisClusterLoaderFromURL parses
// redis+cluster://[user:pass@]host:port?addr=host2:port&key=<list>, every addr
// naming one more seed node, and dials a dedicated cluster client.
func NewRedisClusterLoaderFromURL(location string, opts ...redisstore.ClusterOption) (*RedisLoader, error) {
	u, key, err := splitListKey(location, "redis")
	if err != nil {
		return nil, err
	}

	fromURL, err := redisstore.ClusterFromURL(u.String())
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}

	store, err := redisstore.NewCluster(append([]redisstore.ClusterOption{fromURL}, opts...)...)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}

	return ownedLoader(store.Client, store.Close, u, key)
}

// splitListKey removes the list key from the query of location, since go-redis
// rejects query parameters it does not know. A non-empty scheme replaces the original one.
func splitListKey(location, scheme string) (*url.URL, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", &LoadError{Source: location, Err: err}
	}

	query := u.Query()
	key := query.Get(constants.RedisKeyParam)

	if key == "" {
		return nil, "", &LoadError{
			Source: location,
			Err:    ewrap.Wrapf(sentinel.ErrParamCannotBeEmpty, "query parameter %q", constants.RedisKeyParam),
		}
	}

	query.Del(constants.RedisKeyParam)
	u.RawQuery = query.Encode()

	if scheme != "" {
		u.Scheme = scheme
	}

	return u, key, nil
}

func ownedLoader(client ListReader, closer func() error, u *url.URL, key string) (*RedisLoader, error) {
	l, err := NewRedisLoader(client, key)
	if err != nil {
		_ = closer()

		return nil, err
	}

	l.source = u.Redacted() + "#" + key
	l.closer = closer

	return l, nil
}

// Load fetches the whole list with LRANGE 0 -1 and parses every element.
// A missing key yields an empty sequence.
func (l *RedisLoader) Load(ctx context.Context) ([]int64, error) {
	if l.closer != nil {
		defer func() { _ = l.closer() }()
	}

	values, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}

	seq := make([]int64, len(values))

	for i, value := range values {
		v, err := ParseLine(value)
		if err != nil {
			return nil, &LoadError{Source: l.source, Line: i + 1, Err: err}
		}

		seq[i] = v
	}

	return seq, nil
}

// Source returns the list location, without credentials.
func (l *RedisLoader) Source() string {
	return l.source
}
