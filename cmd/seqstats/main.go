// Command seqstats computes min, max, median, mean and the longest monotonic runs
// of a list of integers, or serves the same computation over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hyp3rd/seqstats"
	"github.com/hyp3rd/seqstats/pkg/loader"
	"github.com/hyp3rd/seqstats/pkg/middleware"
	"github.com/hyp3rd/seqstats/pkg/report"
	"github.com/hyp3rd/seqstats/types"
)

const instrumentationName = "github.com/hyp3rd/seqstats"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := newLogger(stderr)
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		args = []string{"run"}
	}

	var err error

	switch args[0] {
	case "run":
		err = runCompute(ctx, args[1:], stdin, stdout, logger)
	case "serve":
		err = runServe(ctx, args[1:], logger)
	case "validate-config":
		err = runValidateConfig(args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)

		return nil
	default:
		printUsage(stderr)

		err = ewrap.Newf("unsupported command %q", args[0])
	}

	// -h and -help on a subcommand
	if errors.Is(err, flag.ErrHelp) {
		printUsage(stdout)

		return nil
	}

	if err != nil {
		logger.Errorw("seqstats failed", "command", args[0], "error", err)
	}

	return err
}

func newLogger(w io.Writer) *zap.SugaredLogger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zap.InfoLevel,
	)

	return zap.New(core).Sugar()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  seqstats run [flags] [location]     compute the statistics of location (default 10m.txt, "-" for stdin)
  seqstats serve [flags]              serve GET /health /config /stats and POST /compute
  seqstats validate-config <path>     check a configuration file

locations: a file path, file:///path, redis://[user:pass@]host:port/db?key=<list>,
           redis+cluster://host:port?addr=host2:port&key=<list>

flags:
  -config path            JSON configuration file
  -workers n              worker goroutines (0 = one per CPU)
  -chunk n                smallest number of values per job
  -median-policy name     exact | truncate
  -median-strategy name   sort | select
  -format name            text | json | msgpack | cbor (run only)
  -verbose                log every computation
  -addr host:port         listen address (serve only)
  -auth-token token       bearer token required by the server (serve only)`)
}

// settings are the flags shared by run and serve.
type settings struct {
	configPath     string
	workers        int
	chunk          int
	medianPolicy   string
	medianStrategy string
	format         string
	verbose        bool
	addr           string
	authToken      string
}

func newFlagSet(name string, s *settings) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&s.configPath, "config", "", "JSON configuration file")
	fs.IntVar(&s.workers, "workers", 0, "worker goroutines")
	fs.IntVar(&s.chunk, "chunk", 0, "smallest number of values per job")
	fs.StringVar(&s.medianPolicy, "median-policy", "", "exact | truncate")
	fs.StringVar(&s.medianStrategy, "median-strategy", "", "sort | select")
	fs.BoolVar(&s.verbose, "verbose", false, "log every computation")

	if name == "run" {
		fs.StringVar(&s.format, "format", "", "text | json | msgpack | cbor")
	} else {
		fs.StringVar(&s.addr, "addr", "", "listen address")
		fs.StringVar(&s.authToken, "auth-token", "", "bearer token")
	}

	return fs
}

// loadSettings parses args, reads the configuration file if any, and lets the
// flags that were set explicitly override it.
func loadSettings(name string, args []string) (*seqstats.Config, []string, *settings, error) {
	s := &settings{}

	fs := newFlagSet(name, s)

	err := fs.Parse(args)
	if err != nil {
		return nil, nil, nil, ewrap.Wrap(err, name)
	}

	cfg := seqstats.NewConfig()
	if s.configPath != "" {
		cfg, err = seqstats.LoadConfig(s.configPath)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	var flagErr error

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = s.workers
		case "chunk":
			cfg.MinChunkSize = s.chunk
		case "median-policy":
			policy, ok := types.ParseMedianPolicy(s.medianPolicy)
			if !ok {
				flagErr = ewrap.Wrap(seqstats.ErrInvalidMedianPolicy, s.medianPolicy)
			}

			cfg.MedianPolicy = policy
		case "median-strategy":
			strategy, ok := types.ParseMedianStrategy(s.medianStrategy)
			if !ok {
				flagErr = ewrap.Wrap(seqstats.ErrInvalidMedianStrategy, s.medianStrategy)
			}

			cfg.MedianStrategy = strategy
		case "format":
			cfg.Format = s.format
		case "addr":
			cfg.Management.Addr = s.addr
		case "auth-token":
			cfg.Management.AuthToken = s.authToken
		}
	})

	if flagErr != nil {
		return nil, nil, nil, flagErr
	}

	err = cfg.Validate()
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, fs.Args(), s, nil
}

// newService builds the engine and decorates it with telemetry, and with logging when verbose.
func newService(cfg *seqstats.Config, verbose bool, logger *zap.SugaredLogger) (seqstats.Service, error) {
	engine, err := seqstats.New(cfg.Options()...)
	if err != nil {
		return nil, err
	}

	metered, err := middleware.NewOTelMetricsMiddleware(engine, otel.Meter(instrumentationName))
	if err != nil {
		_ = engine.Stop(context.Background())

		return nil, err
	}

	middlewares := []seqstats.Middleware{
		func(next seqstats.Service) seqstats.Service {
			return middleware.NewOTelTracingMiddleware(next, otel.Tracer(instrumentationName))
		},
	}

	if verbose {
		middlewares = append(middlewares, func(next seqstats.Service) seqstats.Service {
			return middleware.NewLoggingMiddleware(next, logger)
		})
	}

	return seqstats.ApplyMiddleware(metered, middlewares...), nil
}

func runCompute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, logger *zap.SugaredLogger) error {
	cfg, rest, s, err := loadSettings("run", args)
	if err != nil {
		return err
	}

	location := cfg.Location
	if len(rest) > 0 {
		location = rest[0]
	}

	l, err := loader.NewRegistry(stdin).Resolve(location)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, s.verbose, logger)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Stop(context.Background()) }()

	res, err := seqstats.ComputeFrom(ctx, svc, l)
	if err != nil {
		return err
	}

	return report.Write(stdout, res, cfg.Format)
}

func runServe(ctx context.Context, args []string, logger *zap.SugaredLogger) error {
	cfg, _, s, err := loadSettings("serve", args)
	if err != nil {
		return err
	}

	timeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return err
	}

	svc, err := newService(cfg, s.verbose, logger)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Stop(context.Background()) }()

	var opts []seqstats.ManagementHTTPOption
	if cfg.Management.AuthToken != "" {
		opts = append(opts, seqstats.WithMgmtAuth(seqstats.BearerTokenAuth(cfg.Management.AuthToken)))
	}

	srv := seqstats.NewManagementHTTPServer(cfg.Management.Addr, opts...)

	err = srv.Start(ctx, svc)
	if err != nil {
		return err
	}

	logger.Infow("serving", "addr", srv.Address(), "workers", svc.Workers(), "median_policy", svc.MedianPolicy())

	var serveErr error

	select {
	case <-ctx.Done():
	case serveErr = <-srv.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}

	logger.Infow("stopped", "addr", srv.Address())

	return serveErr
}

func runValidateConfig(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return ewrap.New("validate-config takes exactly one path")
	}

	_, err := seqstats.LoadConfig(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: ok\n", args[0])

	return nil
}
