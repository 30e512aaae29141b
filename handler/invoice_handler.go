package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/energy-billing/invoice-reader/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceExtractor turns a stored PDF into a tagged extraction result.
type InvoiceExtractor interface {
	ExtractInvoiceData(path, password string) dto.ExtractionResult
}

// InvoiceExporter renders a record as a workbook.
type InvoiceExporter interface {
	ExportXLSX(record *dto.InvoiceRecord) ([]byte, error)
}

// UploadSaver persists an uploaded file and returns where it was stored.
type UploadSaver interface {
	Save(filename string, r io.Reader) (string, error)
}

type InvoiceHandler struct {
	invoices InvoiceExtractor
	exporter InvoiceExporter
	uploads  UploadSaver
	log      *slog.Logger
}

func NewInvoiceHandler(invoices InvoiceExtractor, exporter InvoiceExporter, uploads UploadSaver, log *slog.Logger) *InvoiceHandler {
	if log == nil {
		log = slog.Default()
	}
	return &InvoiceHandler{
		invoices: invoices,
		exporter: exporter,
		uploads:  uploads,
		log:      log,
	}
}

// UploadPDF handles POST /upload-pdf. The multipart field is "pdf".
func (h *InvoiceHandler) UploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "pdf file missing", err)
		return
	}

	mediaType, _, _ := mime.ParseMediaType(fileHeader.Header.Get("Content-Type"))
	if mediaType != "application/pdf" {
		h.sendError(c, http.StatusBadRequest, dto.ErrNotPDF.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to open upload", err)
		return
	}
	defer file.Close()

	path, err := h.uploads.Save(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, dto.ErrFileTooLarge) {
			h.sendError(c, http.StatusRequestEntityTooLarge, err.Error(), err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "failed to store upload", err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{FilePath: path})
}

// ProcessPDF handles POST /process-pdf.
func (h *InvoiceHandler) ProcessPDF(c *gin.Context) {
	result, ok := h.extract(c)
	if !ok {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "failed to encode invoice", err)
		return
	}

	c.JSON(http.StatusOK, dto.ProcessResponse{Status: "success", Data: string(data)})
}

// ExportXLSX handles POST /export-xlsx.
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	result, ok := h.extract(c)
	if !ok {
		return
	}

	body, err := h.exporter.ExportXLSX(result.Invoice)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "failed to export invoice", err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(result.Invoice.SourcePath), filepath.Ext(result.Invoice.SourcePath)) + ".xlsx"
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, xlsxContentType, body)
}

// extract binds the request body and runs the extraction. It writes the error
// response itself and reports false when there is nothing more to do.
func (h *InvoiceHandler) extract(c *gin.Context) (dto.ExtractionResult, bool) {
	var req dto.ProcessPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid request body", err)
		return dto.ExtractionResult{}, false
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), nil)
		return dto.ExtractionResult{}, false
	}

	result := h.invoices.ExtractInvoiceData(req.FilePath, req.Password)
	if !result.OK() {
		h.sendError(c, statusForKind(result.Kind), result.Err, nil)
		return result, false
	}
	return result, true
}
