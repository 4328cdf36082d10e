package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	Init()
	Init() // idempotent

	app := fiber.New()
	app.Use(Middleware())
	app.Get("/videos/:video_name", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("disk on fire") })

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/videos/:video_name", "200"))
	for _, name := range []string{"a.mp4", "b.mp4"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/videos/"+name, nil))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/videos/:video_name", "200"))
	if after-before != 2 {
		t.Errorf("counter delta = %v, want 2", after-before)
	}

	beforeErr := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/boom", "500"))
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/boom", "500")) - beforeErr; got != 1 {
		t.Errorf("error counter delta = %v, want 1", got)
	}
}
