// Package server exposes the chart over HTTP.
package server

import (
	"bytes"
	"errors"
	"time"

	"github.com/benoitkugler/salesplot/chart"
	"github.com/benoitkugler/salesplot/internal/logging"
	"github.com/benoitkugler/salesplot/sales"
	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgpdf"
	"github.com/benoitkugler/salesplot/svgraster"
	"github.com/gofiber/fiber/v2"
)

// Handler renders a fresh chart for every request.
type Handler struct {
	Source sales.Source
	Config chart.Config
}

// New returns the application serving the chart routes.
func New(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(requestLogger)

	app.Get("/healthz", h.Health)
	app.Get("/chart.svg", h.SVG)
	app.Get("/chart.png", h.PNG)
	app.Get("/chart.pdf", h.PDF)
	app.Get("/layout.json", h.Layout)
	return app
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logging.Logger().Info("request",
		"method", c.Method(), "path", c.Path(),
		"status", c.Response().StatusCode(), "latency", time.Since(start))
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	logging.Logger().Error("request failed", "path", c.Path(), "error", err)
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// dataError maps invalid records to a client error.
func dataError(err error) error {
	if errors.Is(err, sales.ErrNoRecords) || errors.Is(err, sales.ErrInvalidValue) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}

func (h *Handler) surface(c *fiber.Ctx) (*svgdoc.Surface, error) {
	s, err := chart.Render(c.UserContext(), h.source(), h.Config)
	return s, dataError(err)
}

// Health reports that the server is up.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SVG serves the chart as an SVG document.
func (h *Handler) SVG(c *fiber.Ctx) error {
	s, err := h.surface(c)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(s.Bytes())
}

// PNG serves the rasterized chart.
func (h *Handler) PNG(c *fiber.Ctx) error {
	s, err := h.surface(c)
	if err != nil {
		return err
	}
	img, err := svgraster.Rasterize(s)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := svgraster.EncodePNG(&buf, img); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// PDF serves the chart as a one page document.
func (h *Handler) PDF(c *fiber.Ctx) error {
	s, err := h.surface(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := svgpdf.Render(s, &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(buf.Bytes())
}

// Layout serves the computed geometry as JSON.
func (h *Handler) Layout(c *fiber.Ctx) error {
	records, err := h.source().Records(c.UserContext())
	if err != nil {
		return err
	}
	l, err := chart.ComputeLayout(records, h.Config)
	if err != nil {
		return dataError(err)
	}
	return c.JSON(l)
}

func (h *Handler) source() sales.Source {
	if h.Source == nil {
		return sales.Demo()
	}
	return h.Source
}
