package seqstats

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/libs/serializer"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/pkg/loader"
	"github.com/hyp3rd/seqstats/pkg/report"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer holds Fiber app and settings.
type ManagementHTTPServer struct {
	addr     string
	app      *fiber.App
	authFunc func(fiber.Ctx) error
	reporter *report.Reporter
	ln       net.Listener
	started  bool
	serveErr chan error
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

// WithMgmtReporter sets the reporter used for non-JSON compute responses.
func WithMgmtReporter(r *report.Reporter) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.reporter = r }
}

// BearerTokenAuth returns an auth function accepting requests carrying
// "Authorization: Bearer <token>".
func BearerTokenAuth(token string) func(fiber.Ctx) error {
	return func(fiberCtx fiber.Ctx) error {
		got, ok := strings.CutPrefix(fiberCtx.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		return nil
	}
}

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
	// maxComputeBodyBytes bounds POST /compute payloads.
	maxComputeBodyBytes = 256 << 20
)

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	app := fiber.New(fiber.Config{
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		BodyLimit:    maxComputeBodyBytes,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	srv := &ManagementHTTPServer{
		addr: addr,
		app:  app,
	}
	for _, opt := range opts {
		opt(srv)
	}

	if srv.reporter == nil {
		srv.reporter = report.New(nil)
	}

	return srv
}

// Start mounts the routes for svc and serves in the background (idempotent).
func (s *ManagementHTTPServer) Start(ctx context.Context, svc Service) error {
	if s.started {
		return nil
	}

	s.mountRoutes(svc)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln
	s.serveErr = make(chan error, 1)

	go func() {
		s.serveErr <- s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for ephemeral port). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Done returns a channel receiving the error the server stopped with. Nil if not started yet.
func (s *ManagementHTTPServer) Done() <-chan error {
	return s.serveErr
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		return err
	}
}

func (s *ManagementHTTPServer) mountRoutes(svc Service) {
	useAuth := s.wrapAuth
	s.registerBasic(useAuth, svc)
	s.registerCompute(useAuth, svc)
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

func (s *ManagementHTTPServer) registerBasic(useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))
	s.app.Get("/stats", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.JSON(svc.GetStats()) }))
	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error {
		cfg := fiber.Map{
			"workers":         svc.Workers(),
			"median_policy":   svc.MedianPolicy(),
			"median_strategy": svc.MedianStrategy(),
			"formats":         s.reporter.Formats(),
		}

		// middlewares hide the concrete engine
		if engine, ok := svc.(interface{ MinChunkSize() int }); ok {
			cfg["min_chunk_size"] = engine.MinChunkSize()
		}

		return fiberCtx.JSON(cfg)
	}))
}

// registerCompute mounts POST /compute. The body holds one integer per line; the
// result is JSON unless the format query parameter names another report format.
func (s *ManagementHTTPServer) registerCompute(useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Post("/compute", useAuth(func(fiberCtx fiber.Ctx) error {
		ctx := fiberCtx.Context()

		seq, err := loader.ReadSequence(ctx, "request", bytes.NewReader(fiberCtx.Body()))
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		res, err := svc.Compute(ctx, seq)

		switch {
		case errors.Is(err, sentinel.ErrEmptyInput):
			return fiberCtx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case err != nil:
			return fiberCtx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		format := fiberCtx.Query("format", serializer.JSON)
		if format == serializer.JSON {
			return fiberCtx.JSON(res)
		}

		var buf bytes.Buffer

		err = s.reporter.Write(&buf, res, format)
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		fiberCtx.Set(fiber.HeaderContentType, contentType(format))

		return fiberCtx.Send(buf.Bytes())
	}))
}

func contentType(format string) string {
	switch format {
	case serializer.Msgpack:
		return "application/msgpack"
	case serializer.CBOR:
		return "application/cbor"
	default:
		return fiber.MIMETextPlainCharsetUTF8
	}
}
