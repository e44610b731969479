package seqstats

import (
	"bytes"
	_ "embed"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/pkg/report"
	"github.com/hyp3rd/seqstats/types"
)

const configSchemaURL = "https://github.com/hyp3rd/seqstats/config.schema.json"

//go:embed config.schema.json
var configSchema []byte

//nolint:gochecknoglobals
var compileConfigSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()

	err := compiler.AddResource(configSchemaURL, bytes.NewReader(configSchema))
	if err != nil {
		return nil, ewrap.Wrap(err, "add config schema")
	}

	schema, err := compiler.Compile(configSchemaURL)
	if err != nil {
		return nil, ewrap.Wrap(err, "compile config schema")
	}

	return schema, nil
})

// Config is a struct that wraps all the settings of the engine, the default input
// and the management server. It is read from a JSON file; missing fields keep
// their defaults.
type Config struct {
	Workers        int                  `json:"workers"`
	MinChunkSize   int                  `json:"min_chunk_size"`
	MedianPolicy   types.MedianPolicy   `json:"median_policy"`
	MedianStrategy types.MedianStrategy `json:"median_strategy"`
	StatsCollector string               `json:"stats_collector"`
	// Location is the input read when none is given on the command line.
	Location   string           `json:"location"`
	Format     string           `json:"format"`
	Management ManagementConfig `json:"management"`
}

// ManagementConfig configures the management HTTP server.
type ManagementConfig struct {
	Addr string `json:"addr"`
	// AuthToken, when set, must be presented as a bearer token on every request.
	AuthToken       string `json:"auth_token,omitempty"`
	ShutdownTimeout string `json:"shutdown_timeout"`
}

// NewConfig returns a new `Config` struct with default values:
//   - one worker per CPU, chunks of at least `constants.DefaultMinChunkSize` elements
//   - exact medians computed by sorting
//   - the `default` stats collector
//   - input `10m.txt`, text reports
//   - management server on `127.0.0.1:8089`
func NewConfig() *Config {
	return &Config{
		Workers:        constants.DefaultWorkers,
		MinChunkSize:   constants.DefaultMinChunkSize,
		MedianPolicy:   constants.DefaultMedianPolicy,
		MedianStrategy: constants.DefaultMedianStrategy,
		StatsCollector: constants.DefaultStatsCollector,
		Location:       constants.DefaultLocation,
		Format:         constants.DefaultFormat,
		Management: ManagementConfig{
			Addr:            constants.DefaultManagementAddr,
			ShutdownTimeout: constants.DefaultShutdownTimeout.String(),
		},
	}
}

// LoadConfig reads the JSON file at path over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrapf(err, "read config %s", path)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, ewrap.Wrap(err, path)
	}

	return cfg, nil
}

// ParseConfig validates data against the configuration schema and decodes it over the defaults.
func ParseConfig(data []byte) (*Config, error) {
	schema, err := compileConfigSchema()
	if err != nil {
		return nil, err
	}

	var doc any

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, ewrap.Wrap(sentinel.ErrInvalidConfig, err.Error())
	}

	err = schema.Validate(doc)
	if err != nil {
		return nil, ewrap.Wrap(sentinel.ErrInvalidConfig, err.Error())
	}

	cfg := NewConfig()

	err = json.Unmarshal(data, cfg)
	if err != nil {
		return nil, ewrap.Wrap(sentinel.ErrInvalidConfig, err.Error())
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the schema cannot express. It is also meant for
// configs changed after loading, such as by command-line flags.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidWorkers, "workers %d", c.Workers)
	}

	if c.MinChunkSize < 1 {
		return ewrap.Wrapf(sentinel.ErrInvalidChunkSize, "min chunk size %d", c.MinChunkSize)
	}

	if !c.MedianPolicy.Valid() {
		return ewrap.Wrap(sentinel.ErrInvalidMedianPolicy, c.MedianPolicy.String())
	}

	if !c.MedianStrategy.Valid() {
		return ewrap.Wrap(sentinel.ErrInvalidMedianStrategy, c.MedianStrategy.String())
	}

	if !slices.Contains(report.New(nil).Formats(), c.Format) {
		return ewrap.Wrap(sentinel.ErrFormatNotFound, c.Format)
	}

	_, err := c.ShutdownTimeout()

	return err
}

// ShutdownTimeout returns the parsed management shutdown timeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	if c.Management.ShutdownTimeout == "" {
		return constants.DefaultShutdownTimeout, nil
	}

	d, err := time.ParseDuration(c.Management.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 0, ewrap.Wrapf(sentinel.ErrInvalidConfig, "shutdown timeout %q", c.Management.ShutdownTimeout)
	}

	return d, nil
}

// Options maps the engine settings to engine options.
func (c *Config) Options() []Option {
	return []Option{
		WithWorkers(c.Workers),
		WithMinChunkSize(c.MinChunkSize),
		WithMedianPolicy(c.MedianPolicy),
		WithMedianStrategy(c.MedianStrategy),
		WithStatsCollector(c.StatsCollector),
	}
}
