package dto

type CreateDocumentRequest struct {
	Type string `json:"type" validate:"required,oneof=receipt delivery_note purchase_order"`
}

// UpdateFieldsRequest edits top-level content fields of a draft.
// Nil fields are left untouched.
type UpdateFieldsRequest struct {
	CompanyName *string `json:"companyName"`
	Date        *string `json:"date"`
}

// EditItemRequest replaces one field of one line item. Values arrive as the
// raw user input: numeric fields are parsed server-side and coerce to zero
// when unparsable.
type EditItemRequest struct {
	Field string `json:"field" validate:"required,oneof=description quantity price"`
	Value string `json:"value"`
}
