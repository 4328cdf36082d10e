package handlers

import (
	"bytes"
	"emogo-service/internal/models"
	service "emogo-service/internal/services"
	"emogo-service/internal/storage"
	utils "emogo-service/internal/utils"
	"emogo-service/internal/views"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	appName string
	svc     *service.RecordService
	views   *views.Renderer
}

func NewHandler(appName string, svc *service.RecordService, r *views.Renderer) *Handler {
	return &Handler{appName: appName, svc: svc, views: r}
}

// GET /
func (h *Handler) Root(c *fiber.Ctx) error {
	return utils.JSONMessage(c, h.appName+" is running!")
}

// GET /items/:item_id?q=
func (h *Handler) ReadItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("item_id")
	if err != nil {
		return utils.JSONValidation(c, &utils.PayloadError{Details: []utils.ValidationError{{
			Field:   "item_id",
			Tag:     "int",
			Value:   c.Params("item_id"),
			Message: "item_id must be an integer",
		}}})
	}
	var q *string
	if c.Request().URI().QueryArgs().Has("q") {
		v := c.Query("q")
		q = &v
	}
	return c.JSON(fiber.Map{"item_id": id, "q": q})
}

// POST /vlogs/?user_id= (multipart/form-data 'video')
func (h *Handler) CreateVlog(c *fiber.Ctx) error {
	if !c.Request().URI().QueryArgs().Has("user_id") {
		return utils.JSONValidation(c, utils.RequiredError("user_id"))
	}
	userID := c.Query("user_id")

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return utils.JSONValidation(c, utils.RequiredError("video"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := h.svc.UploadVlog(c.UserContext(), userID, fileHeader.Filename, f); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"filename": fileHeader.Filename, "user_id": userID})
}

// POST /sentiments/
func (h *Handler) CreateSentiment(c *fiber.Ctx) error {
	rec, err := utils.ParseSentiment(c.Body())
	if err != nil {
		return utils.JSONValidation(c, err)
	}
	saved, err := h.svc.CreateSentiment(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

// POST /gps/
func (h *Handler) CreateGPS(c *fiber.Ctx) error {
	rec, err := utils.ParseGPS(c.Body())
	if err != nil {
		return utils.JSONValidation(c, err)
	}
	saved, err := h.svc.CreateGPS(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

// GET /videos/:video_name
// A missing video answers 200 with an error body.
func (h *Handler) GetVideo(c *fiber.Ctx) error {
	name := c.Params("video_name")
	ok, err := h.svc.VideoExists(c.UserContext(), name)
	if err != nil {
		return err
	}
	if !ok {
		return utils.JSONError(c, fiber.StatusOK, "Video not found")
	}
	obj, err := h.svc.OpenVideo(c.UserContext(), name)
	if errors.Is(err, storage.ErrNotFound) {
		// removed between the check and the open
		return utils.JSONError(c, fiber.StatusOK, "Video not found")
	}
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, obj.ContentType)
	return c.SendStream(obj.Body, int(obj.Size))
}

// GET /data
func (h *Handler) ListData(c *fiber.Ctx) error {
	snap, err := h.svc.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.views.RenderData(&buf, views.DataPage{Title: h.appName, Snapshot: snap}); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// GET /data/vlogs
func (h *Handler) ExportVlogs(c *fiber.Ctx) error {
	recs, err := h.svc.Vlogs(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Attachment(c, models.VlogsCollection+".json", recs)
}

// GET /data/sentiments
func (h *Handler) ExportSentiments(c *fiber.Ctx) error {
	recs, err := h.svc.Sentiments(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Attachment(c, models.SentimentsCollection+".json", recs)
}

// GET /data/gps
func (h *Handler) ExportGPS(c *fiber.Ctx) error {
	recs, err := h.svc.GPSPoints(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Attachment(c, models.GPSCollection+".json", recs)
}

// GET /populate-fake-data
func (h *Handler) PopulateFakeData(c *fiber.Ctx) error {
	if err := h.svc.PopulateFakeData(c.UserContext()); err != nil {
		return err
	}
	return utils.JSONMessage(c, "Fake data has been populated.")
}
