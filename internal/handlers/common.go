package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memelaunch/internal/engine"
	"memelaunch/internal/service"
)

// Svc is the shared engine instance, set once at startup before any route is
// served. Handlers are thin: parse, call, render.
var Svc *service.Service

// Init wires the handlers to a service instance.
func Init(s *service.Service) {
	Svc = s
}

// renderError maps engine error kinds to HTTP statuses and keeps the
// machine-readable code in the payload.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch engine.KindOf(err) {
	case engine.KindValidation:
		status = http.StatusBadRequest
	case engine.KindState:
		status = http.StatusConflict
	case engine.KindNotFound:
		status = http.StatusNotFound
	case engine.KindInsufficientFunds:
		status = http.StatusPaymentRequired
	case engine.KindAuthorization:
		status = http.StatusForbidden
	}

	var engineErr *engine.Error
	if errors.As(err, &engineErr) {
		c.JSON(status, gin.H{"error": engineErr.Message, "code": engineErr.Code})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// memeIndexParam parses the :index path parameter.
func memeIndexParam(c *gin.Context) (uint64, bool) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meme index"})
		return 0, false
	}
	return index, true
}

// pageParams parses page/page_size query parameters with defaults.
func pageParams(c *gin.Context) (int, int) {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	pageSize := 10
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	return page, pageSize
}
