package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/energy-billing/invoice-reader/dto"
	"github.com/energy-billing/invoice-reader/utils"
)

const (
	MsgFileNotFound = "File not found"
	msgReadFailed   = "Error reading PDF: %v"
)

type InvoiceService struct {
	pdfProcessor PDFProcessor
	parser       *utils.InvoiceParser
	password     string
	log          *slog.Logger
}

// NewInvoiceService wires the extractor and parser. password is the default
// used for encrypted invoices when a request does not carry one.
func NewInvoiceService(pdfProcessor PDFProcessor, parser *utils.InvoiceParser, password string, log *slog.Logger) *InvoiceService {
	if log == nil {
		log = slog.Default()
	}
	return &InvoiceService{
		pdfProcessor: pdfProcessor,
		parser:       parser,
		password:     password,
		log:          log,
	}
}

// Extract reads the PDF at path and parses it into a record.
func (s *InvoiceService) Extract(path, password string) (*dto.InvoiceRecord, error) {
	if password == "" {
		password = s.password
	}
	text, err := s.pdfProcessor.ExtractText(path, password)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(path, text), nil
}

// ExtractInvoiceData never fails: every error, including a panic in the
// parser, becomes an error result.
func (s *InvoiceService) ExtractInvoiceData(path, password string) (result dto.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("invoice extraction panicked", "path", path, "panic", r)
			result = dto.ExtractionResult{Err: fmt.Sprintf(msgReadFailed, r), Kind: dto.KindExtraction}
		}
	}()

	record, err := s.Extract(path, password)
	if err != nil {
		return s.errorResult(path, err)
	}

	s.log.Info("invoice extracted", "path", path, "items", len(record.LineItems), "total", record.TotalValue)
	return dto.ExtractionResult{Invoice: record}
}

func (s *InvoiceService) errorResult(path string, err error) dto.ExtractionResult {
	if errors.Is(err, dto.ErrFileNotFound) {
		s.log.Warn("invoice file not found", "path", path)
		return dto.ExtractionResult{Err: MsgFileNotFound, Kind: dto.KindNotFound}
	}

	cause := err
	var extractErr *dto.ExtractionError
	if errors.As(err, &extractErr) {
		cause = extractErr.Cause
	}
	s.log.Error("invoice extraction failed", "path", path, "error", err)
	return dto.ExtractionResult{Err: fmt.Sprintf(msgReadFailed, cause), Kind: dto.KindExtraction}
}
