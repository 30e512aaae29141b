package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Energy Invoice Reader"

// NewRouter registers the health check and the invoice routes under /api-python,
// the prefix the frontend already calls.
func NewRouter(h *InvoiceHandler, maxMultipartMemory int64) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Logger(h.log), gin.Recovery())
	router.MaxMultipartMemory = maxMultipartMemory

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	api := router.Group("/api-python")
	{
		api.POST("/upload-pdf", h.UploadPDF)
		api.POST("/process-pdf", h.ProcessPDF)
		api.POST("/export-xlsx", h.ExportXLSX)
	}

	return router
}
