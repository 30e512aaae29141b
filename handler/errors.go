package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energy-billing/invoice-reader/dto"
)

// sendError sends a {"detail": message} response and logs the cause.
func (h *InvoiceHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.log.Warn("request failed", "path", c.Request.URL.Path, "status", statusCode, "message", message, "error", err)
	} else {
		h.log.Warn("request failed", "path", c.Request.URL.Path, "status", statusCode, "message", message)
	}
	c.JSON(statusCode, dto.ErrorResponse{Detail: message})
}

func statusForKind(kind dto.ErrorKind) int {
	switch kind {
	case dto.KindNotFound:
		return http.StatusNotFound
	case dto.KindExtraction:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
