package models

// Photo is a persisted, annotated image. The ID is the store-assigned key,
// merged into the record after the first successful save; the image itself
// is embedded as a base64 data URL.
type Photo struct {
	ID         string `json:"id,omitempty"`
	FileName   string `json:"fileName"`
	ImageURL   string `json:"imageUrl"`
	Note       string `json:"note"`
	UploadedAt string `json:"uploadedAt"`
}

// PendingFile is a user-selected image awaiting an explicit save decision.
// It never reaches the store: the ID is client-generated, and Preview is
// filled in asynchronously once the file bytes have been encoded.
type PendingFile struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Note     string `json:"note"`
	Preview  string `json:"preview,omitempty"`
}

// Ready reports whether preview encoding has finished, which is the
// precondition for committing the file.
func (p PendingFile) Ready() bool {
	return p.Preview != ""
}
