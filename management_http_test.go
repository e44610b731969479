package seqstats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/internal/libs/serializer"
	"github.com/hyp3rd/seqstats/types"
)

func newTestServer(t *testing.T, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	t.Helper()

	srv := NewManagementHTTPServer("127.0.0.1:0", opts...)
	srv.mountRoutes(newEngine(t, WithWorkers(2)))

	return srv
}

func do(t *testing.T, srv *ManagementHTTPServer, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := srv.app.Test(req)
	assert.Nil(t, err)

	body, err := io.ReadAll(resp.Body)
	assert.Nil(t, err)

	_ = resp.Body.Close()

	return resp, body
}

func TestManagementHTTP_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestManagementHTTP_Config(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/config", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cfg map[string]any
	assert.Nil(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, 2.0, cfg["workers"])
	assert.Equal(t, "exact", cfg["median_policy"])
	assert.Equal(t, "sort", cfg["median_strategy"])
}

func TestManagementHTTP_Compute(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader("1\n2\n3\n4\n")))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res types.Result
	assert.Nil(t, json.Unmarshal(body, &res))
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, 2.5, res.Median)
	assert.Equal(t, []int64{1, 2, 3, 4}, res.LongestIncreasing.Values)

	resp, body = do(t, srv, httptest.NewRequest(http.MethodPost, "/compute?format=text", strings.NewReader("1\n2\n3\n4\n")))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "Min: 1\nMax: 4\nMedian: 2.5\n"))

	resp, body = do(t, srv, httptest.NewRequest(http.MethodPost, "/compute?format=msgpack", strings.NewReader("7\n")))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/msgpack", resp.Header.Get(fiber.HeaderContentType))

	s, err := serializer.New(serializer.Msgpack)
	assert.Nil(t, err)

	res = types.Result{}
	assert.Nil(t, s.Unmarshal(body, &res))
	assert.Equal(t, int64(7), res.Max)
}

func TestManagementHTTP_ComputeErrors(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader("1\nnope\n")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader("")))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/compute?format=yaml", strings.NewReader("1\n")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestManagementHTTP_Stats(t *testing.T) {
	srv := newTestServer(t)

	_, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader("3\n1\n")))

	resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), types.StatComputeDuration.String()))
}

func TestManagementHTTP_Auth(t *testing.T) {
	srv := newTestServer(t, WithMgmtAuth(BearerTokenAuth("s3cret")))

	resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer wrong")

	resp, _ = do(t, srv, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer s3cret")

	resp, _ = do(t, srv, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestManagementHTTP_StartShutdown(t *testing.T) {
	srv := NewManagementHTTPServer("127.0.0.1:0")
	assert.Equal(t, "", srv.Address())
	assert.Nil(t, srv.Shutdown(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Nil(t, srv.Start(ctx, newEngine(t)))
	assert.Nil(t, srv.Start(ctx, newEngine(t)))
	assert.True(t, srv.Address() != "")

	assert.Nil(t, srv.Shutdown(ctx))
}
