package seqstats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/types"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Nil(t, cfg.Validate())
	assert.Equal(t, constants.DefaultLocation, cfg.Location)
	assert.Equal(t, types.MedianExact, cfg.MedianPolicy)
	assert.Equal(t, 5, len(cfg.Options()))

	timeout, err := cfg.ShutdownTimeout()
	assert.Nil(t, err)
	assert.Equal(t, constants.DefaultShutdownTimeout, timeout)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"workers": 4,
		"median_policy": "truncate",
		"median_strategy": "select",
		"format": "json",
		"management": {"addr": ":9000", "shutdown_timeout": "1.5s"}
	}`))
	assert.Nil(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, types.MedianTruncate, cfg.MedianPolicy)
	assert.Equal(t, types.StrategySelect, cfg.MedianStrategy)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, ":9000", cfg.Management.Addr)
	// untouched fields keep their defaults
	assert.Equal(t, constants.DefaultMinChunkSize, cfg.MinChunkSize)
	assert.Equal(t, constants.DefaultLocation, cfg.Location)

	timeout, err := cfg.ShutdownTimeout()
	assert.Nil(t, err)
	assert.Equal(t, 1500*time.Millisecond, timeout)

	engine := newEngine(t, cfg.Options()...)
	assert.Equal(t, 4, engine.Workers())
	assert.Equal(t, types.MedianTruncate, engine.MedianPolicy())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{workers: 1`},
		{name: "negative workers", data: `{"workers": -1}`},
		{name: "zero chunk", data: `{"min_chunk_size": 0}`},
		{name: "unknown policy", data: `{"median_policy": "round"}`},
		{name: "unknown field", data: `{"threads": 4}`},
		{name: "unknown format", data: `{"format": "xml"}`},
		{name: "bad timeout", data: `{"management": {"shutdown_timeout": "soon"}}`},
		{name: "zero timeout", data: `{"management": {"shutdown_timeout": "0s"}}`},
		{name: "wrong type", data: `{"workers": "four"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	cfg.Workers = -2
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidWorkers))

	cfg = NewConfig()
	cfg.MedianStrategy = "guess"
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidMedianStrategy))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqstats.json")

	err := os.WriteFile(path, []byte(`{"location": "numbers.txt", "min_chunk_size": 1024}`), 0o600)
	assert.Nil(t, err)

	cfg, err := LoadConfig(path)
	assert.Nil(t, err)
	assert.Equal(t, "numbers.txt", cfg.Location)
	assert.Equal(t, 1024, cfg.MinChunkSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
