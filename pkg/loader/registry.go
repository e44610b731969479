package loader

import (
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
)

// Factory builds a Loader for a location whose scheme it was registered under.
type Factory func(location string, u *url.URL) (Loader, error)

// Registry resolves locations to loaders by URL scheme.
// Locations without a scheme are file paths, as are colon-separated relative
// paths whose prefix is not a registered scheme; "-" is the registry's standard input.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	stdin     io.Reader
}

// NewRegistry returns a registry knowing file, redis, rediss and redis+cluster locations.
// stdin backs the "-" location.
func NewRegistry(stdin io.Reader) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		stdin:     stdin,
	}

	r.Register("file", func(_ string, u *url.URL) (Loader, error) {
		return NewFileLoader(u.Path), nil
	})

	redisFactory := func(location string, _ *url.URL) (Loader, error) {
		return NewRedisLoaderFromURL(location)
	}

	r.Register("redis", redisFactory)
	r.Register("rediss", redisFactory)
	r.Register("redis+cluster", func(location string, _ *url.URL) (Loader, error) {
		return NewRedisClusterLoaderFromURL(location)
	})

	return r
}

// Register registers a factory for scheme, replacing any previous one.
func (r *Registry) Register(scheme string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[strings.ToLower(scheme)] = factory
}

// Resolve returns the loader for location. An empty location resolves to the default input file.
func (r *Registry) Resolve(location string) (Loader, error) {
	switch location {
	case "":
		location = constants.DefaultLocation
	case constants.StdinLocation:
		if r.stdin == nil {
			return nil, ewrap.Wrap(sentinel.ErrLoaderNotFound, "stdin")
		}

		return NewReaderLoader("stdin", r.stdin), nil
	}

	u, err := url.Parse(location)
	// single letter schemes are windows drive letters
	if err != nil || len(u.Scheme) <= 1 {
		return NewFileLoader(location), nil
	}

	r.mu.RLock()
	factory, ok := r.factories[strings.ToLower(u.Scheme)]
	r.mu.RUnlock()

	if !ok {
		// "data:2024.txt" is a relative path, not an opaque URL
		if u.Opaque != "" {
			return NewFileLoader(location), nil
		}

		return nil, ewrap.Wrap(sentinel.ErrLoaderNotFound, u.Scheme)
	}

	return factory(location, u)
}
