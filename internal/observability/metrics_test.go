package observability

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserveRequest(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()

	metrics.ObserveRequest("trigger_event", 201, 120*time.Millisecond)
	metrics.ObserveRequest("TRIGGER_EVENT", 201, 80*time.Millisecond)
	metrics.ObserveRequest("get_subscriber", 404, 10*time.Millisecond)
	metrics.ObserveRequest("cancel_event", 0, time.Second)

	if got := testutil.ToFloat64(metrics.novuRequestsTotal.WithLabelValues("trigger_event", "201")); got != 2 {
		t.Fatalf("novu_requests_total{trigger_event,201} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.novuRequestsTotal.WithLabelValues("get_subscriber", "404")); got != 1 {
		t.Fatalf("novu_requests_total{get_subscriber,404} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.novuTransportErrorsTotal.WithLabelValues("cancel_event")); got != 1 {
		t.Fatalf("novu_transport_errors_total = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(metrics.novuRequestDuration); got != 3 {
		t.Fatalf("novu_request_duration_seconds series = %d, want 3", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var metrics *Metrics
	metrics.ObserveRequest("trigger_event", 200, time.Millisecond)

	if metrics.Handler() == nil {
		t.Fatal("Handler() should fall back to the default handler")
	}
}

func TestMetricsHTTPMiddlewareRecordsRequest(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	app := fiber.New()
	app.Use(metrics.HTTPMiddleware())
	app.Get("/livez", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/livez", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if got := testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "/livez", "200")); got != 1 {
		t.Fatalf("http_requests_total = %v, want 1", got)
	}
}

func TestMetricsHTTPMiddlewareRecordsErrorStatus(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	app := fiber.New()
	app.Use(metrics.HTTPMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream down")
	})

	for _, path := range []string{"/boom", "/bad"} {
		if _, err := app.Test(httptest.NewRequest("GET", path, nil)); err != nil {
			t.Fatalf("app.Test(%s) error = %v", path, err)
		}
	}

	if got := testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "/boom", "500")); got != 1 {
		t.Fatalf("http_requests_total{/boom} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "/bad", "502")); got != 1 {
		t.Fatalf("http_requests_total{/bad} = %v, want 1", got)
	}
}
