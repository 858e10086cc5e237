package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CuentaPorRuta(t *testing.T) {
	m := metrics.New("test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/pallets/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/pallets/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/pallets/:id", "204")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestRecorders(t *testing.T) {
	m := metrics.New("test")
	m.ScanSubmitted(true)
	m.ScanSubmitted(false)
	m.ScanSubmitted(false)
	m.WarehouseScanSaved(false)
	m.WarehouseScanSaved(true)
	m.SubscribersChanged(3)
	m.MessageDropped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScansTotal.WithLabelValues("found")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScansTotal.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WarehouseScansTotal.WithLabelValues("duplicate")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RealtimeSubscribers))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RealtimeDropped))
}
