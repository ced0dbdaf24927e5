package server

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"setmore-schedules/config"
	"setmore-schedules/services"
	"setmore-schedules/storage"
	"setmore-schedules/utils"
)

type Handler struct {
	profiles  config.Profiles
	logger    *utils.Logger
	workers   int
	maxUpload int64
}

func NewHandler(profiles config.Profiles, logger *utils.Logger, workers int, maxUpload int64) *Handler {
	return &Handler{
		profiles:  profiles,
		logger:    logger,
		workers:   workers,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, EventsResponse{Events: h.profiles.Names()})
}

// Upload processes one booking export and returns all of its reports.
// A fresh processor is built per request; nothing is kept between uploads.
func (h *Handler) Upload(c *gin.Context) {
	event := c.Param("event")
	if _, ok := h.profiles[event]; !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no processor found for event: " + event})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot open uploaded file"})
		return
	}
	defer f.Close()

	raw, err := storage.Read(f, filepath.Ext(fileHeader.Filename))
	if err != nil {
		h.logger.Warn("[server] Rejected upload %q: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "error processing file: " + err.Error()})
		return
	}

	proc, err := services.ProcessorFor(event, h.profiles, raw, h.logger)
	if err != nil {
		var mie *services.MalformedInputError
		if errors.As(err, &mie) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "error processing file: " + err.Error()})
			return
		}
		h.logger.Error("[server] Processing %q failed: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	reports, err := proc.Reports(c.Request.Context(), h.workers)
	if err != nil {
		h.logger.Error("[server] Reports for batch %s failed: %v", proc.BatchID(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := UploadResponse{
		BatchID:    proc.BatchID().String(),
		Event:      proc.Event(),
		Bookings:   proc.Data(),
		Bars:       reports.Bars,
		BBQ:        reports.BBQ,
		ShirtSizes: reports.ShirtSizes,
	}
	if first, last, ok := proc.DateRange(); ok {
		resp.DateRange = &DateRange{First: first, Last: last}
	}
	c.JSON(http.StatusOK, resp)
}
