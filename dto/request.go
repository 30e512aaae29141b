package dto

import (
	"errors"
	"strings"
)

// ProcessPDFRequest names a previously uploaded PDF.
type ProcessPDFRequest struct {
	FilePath string `json:"file_path" binding:"required"`
	Password string `json:"password,omitempty"`
}

// Validate performs basic validation on the request
func (r *ProcessPDFRequest) Validate() error {
	if strings.TrimSpace(r.FilePath) == "" {
		return errors.New("file_path is required")
	}
	return nil
}
