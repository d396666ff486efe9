package models

import "time"

type DocumentType string

const (
	DocumentTypeReceipt       DocumentType = "receipt"
	DocumentTypeDeliveryNote  DocumentType = "delivery_note"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
)

func IsAllowedDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeReceipt, DocumentTypeDeliveryNote, DocumentTypePurchaseOrder:
		return true
	default:
		return false
	}
}

// Title returns the fixed printed heading for the document type.
func (t DocumentType) Title() string {
	switch t {
	case DocumentTypeReceipt:
		return "ใบเสร็จรับเงิน"
	case DocumentTypeDeliveryNote:
		return "ใบส่งของ"
	case DocumentTypePurchaseOrder:
		return "ใบสั่งซื้อ"
	default:
		return ""
	}
}

type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusCompleted DocumentStatus = "completed"
)

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Subtotal is the row amount, always derived and never stored.
func (i LineItem) Subtotal() float64 {
	return i.Quantity * i.Price
}

type DocumentContent struct {
	Title       string     `json:"title"`
	CompanyName string     `json:"companyName"`
	Date        string     `json:"date"`
	Items       []LineItem `json:"items"`
	Total       float64    `json:"total"`
}

// RecomputeTotal restores the invariant total == sum of row subtotals.
// Every item mutation must call it before the mutation is considered done.
func (c *DocumentContent) RecomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	c.Total = total
}

// Document is a billable paper with a one-way draft -> completed lifecycle.
// CompletedAt is null exactly while the document is a draft.
type Document struct {
	ID          string          `json:"id,omitempty"`
	DocType     DocumentType    `json:"docType"`
	Status      DocumentStatus  `json:"status"`
	Content     DocumentContent `json:"content"`
	CreatedAt   string          `json:"createdAt"`
	CompletedAt *string         `json:"completedAt"`
}

// Clone returns a copy whose Items slice is detached from the receiver's
// backing array, so the copy stays stable while the original keeps changing.
func (d Document) Clone() Document {
	d.Content.Items = append([]LineItem(nil), d.Content.Items...)
	return d
}

// NewDocumentContent instantiates the starter template for a type:
// a default customer name, today's date and two sample rows.
func NewDocumentContent(t DocumentType, now time.Time) DocumentContent {
	content := DocumentContent{
		Title:       t.Title(),
		CompanyName: "บริษัทลูกค้า",
		Date:        now.Format("2006-01-02"),
		Items: []LineItem{
			{Description: "ถ่ายเอกสาร A4", Quantity: 100, Price: 1.00},
			{Description: "เข้าเล่มสันกาว", Quantity: 1, Price: 50.00},
		},
	}
	content.RecomputeTotal()
	return content
}
