package documents

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	DocID string `json:"doc_id"`
}
