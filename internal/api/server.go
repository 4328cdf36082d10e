package api

import (
	"emogo-service/internal/handlers"
	"emogo-service/internal/metrics"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewServer copies request values out of fasthttp buffers (Immutable) since
// records are kept after the handler returns, and decodes escaped paths so
// /videos/my%20clip.mp4 finds "my clip.mp4".
func NewServer(opts Options, h *handlers.Handler, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             opts.BodyLimit,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
		Immutable:             true,
		UnescapePath:          true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(AccessLog(log))
	app.Use(metrics.Middleware())

	app.Get("/", h.Root)
	app.Get("/items/:item_id", h.ReadItem)

	app.Post("/vlogs", h.CreateVlog)
	app.Post("/sentiments", h.CreateSentiment)
	app.Post("/gps", h.CreateGPS)
	app.Get("/videos/:video_name", h.GetVideo)

	app.Get("/data", h.ListData)
	app.Get("/data/vlogs", h.ExportVlogs)
	app.Get("/data/sentiments", h.ExportSentiments)
	app.Get("/data/gps", h.ExportGPS)

	app.Get("/populate-fake-data", h.PopulateFakeData)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	return app
}
