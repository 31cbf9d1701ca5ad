package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/tuition-api/internal/service"
	"github.com/campusworks/tuition-api/pkg/response"
)

// ExceptionLogHandler exposes the failure-log query endpoint.
type ExceptionLogHandler struct {
	logs *service.ExceptionLogService
}

// NewExceptionLogHandler constructs ExceptionLogHandler.
func NewExceptionLogHandler(logs *service.ExceptionLogService) *ExceptionLogHandler {
	return &ExceptionLogHandler{logs: logs}
}

// Query godoc
// @Summary Query logged failures by status code and optional day
// @Tags ExceptionLogs
// @Produce json
// @Param type query string false "Status code substring, e.g. NOT_FOUND or 404"
// @Param date query string false "Calendar day in YYYY-MM-DD form"
// @Success 200 {object} response.Envelope
// @Router /exceptionLogs [get]
func (h *ExceptionLogHandler) Query(c *gin.Context) {
	filter := strings.TrimSpace(c.Query("type"))
	date := strings.TrimSpace(c.Query("date"))

	entries, err := h.logs.Query(c.Request.Context(), filter, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}
