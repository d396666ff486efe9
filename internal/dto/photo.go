package dto

// UpdateNoteRequest replaces the note on a pending file or a stored photo.
// An empty note is allowed.
type UpdateNoteRequest struct {
	Note string `json:"note"`
}
