package dto

// ErrorResponse mirrors the {"detail": ...} body the frontend already handles.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	FilePath string `json:"filePath"`
}

// ProcessResponse wraps an extraction. Data holds the record encoded as a JSON string.
type ProcessResponse struct {
	Status string `json:"status"`
	Data   string `json:"data"`
}
