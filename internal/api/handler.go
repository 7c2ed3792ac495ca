// Package api exposes the report converter over HTTP: a multipart upload
// endpoint that parses a batch of campaign report exports, a health check,
// and static serving for the SPA frontend.
package api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/insightdelivered/campaign-report-converter/internal/aggregator"
	"github.com/insightdelivered/campaign-report-converter/internal/config"
	"github.com/insightdelivered/campaign-report-converter/internal/models"
)

// ParseResponse is the JSON response from the /parse endpoint. Campaigns is
// the cross-file deduplicated record list; Errors carries per-file failures.
// A file failing never fails the batch.
type ParseResponse struct {
	BatchID   string               `json:"batch_id"`
	Campaigns []models.Campaign    `json:"campaigns"`
	Errors    []aggregator.Failure `json:"errors"`
	Count     int                  `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// Register sets up the API routes and SPA static serving.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.handleHealth)
	app.Post("/parse", h.handleParse)

	if h.cfg.StaticDir != "" {
		app.Static("/", h.cfg.StaticDir)
		// SPA fallback: unknown non-API paths get index.html.
		app.Use(func(c *fiber.Ctx) error {
			index := filepath.Join(h.cfg.StaticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return c.SendFile(index)
		})
	}
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "healthy",
		"max_files":     h.cfg.MaxFiles,
		"max_file_size": h.cfg.MaxFileSize,
	})
}

func (h *Handler) handleParse(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Expected multipart form upload")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No files uploaded. Use form field 'files'.")
	}
	if len(files) > h.cfg.MaxFiles {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Too many files: %d uploaded, maximum is %d", len(files), h.cfg.MaxFiles))
	}

	var inputs []aggregator.Input
	var failures []aggregator.Failure

	for i, fh := range files {
		// Batch-level policy lives here, outside the parsing core: the core
		// never sees rejected files.
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
			failures = append(failures, aggregator.Failure{
				Filename: fh.Filename,
				Error:    "Only CSV files supported",
			})
			continue
		}
		if fh.Size > int64(h.cfg.MaxFileSize) {
			failures = append(failures, aggregator.Failure{
				Filename: fh.Filename,
				Error:    fmt.Sprintf("File exceeds maximum size of %d bytes", h.cfg.MaxFileSize),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			failures = append(failures, aggregator.Failure{
				Filename: fh.Filename,
				Error:    "Could not read uploaded file",
			})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			failures = append(failures, aggregator.Failure{
				Filename: fh.Filename,
				Error:    "Could not read uploaded file",
			})
			continue
		}

		inputs = append(inputs, aggregator.Input{
			Name:  fh.Filename,
			Index: i,
			Text:  string(data),
		})
	}

	campaigns, parseFailures := aggregator.ProcessBatch(inputs)
	failures = append(failures, parseFailures...)

	// nil slices marshal to JSON null; the frontend wants arrays.
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	if failures == nil {
		failures = []aggregator.Failure{}
	}

	return c.JSON(ParseResponse{
		BatchID:   uuid.NewString(),
		Campaigns: campaigns,
		Errors:    failures,
		Count:     len(campaigns),
	})
}
