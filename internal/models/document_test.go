package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentContent_TemplatePerType(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		docType DocumentType
		title   string
	}{
		{DocumentTypeReceipt, "ใบเสร็จรับเงิน"},
		{DocumentTypeDeliveryNote, "ใบส่งของ"},
		{DocumentTypePurchaseOrder, "ใบสั่งซื้อ"},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			content := NewDocumentContent(tt.docType, now)

			assert.Equal(t, tt.title, content.Title)
			assert.Equal(t, "บริษัทลูกค้า", content.CompanyName)
			assert.Equal(t, "2025-03-14", content.Date)
			require.Len(t, content.Items, 2)
			assert.Equal(t, LineItem{Description: "ถ่ายเอกสาร A4", Quantity: 100, Price: 1.00}, content.Items[0])
			assert.Equal(t, LineItem{Description: "เข้าเล่มสันกาว", Quantity: 1, Price: 50.00}, content.Items[1])
			assert.Equal(t, 150.00, content.Total)
		})
	}
}

func TestIsAllowedDocumentType(t *testing.T) {
	assert.True(t, IsAllowedDocumentType(DocumentTypeReceipt))
	assert.True(t, IsAllowedDocumentType(DocumentTypeDeliveryNote))
	assert.True(t, IsAllowedDocumentType(DocumentTypePurchaseOrder))
	assert.False(t, IsAllowedDocumentType(DocumentType("invoice")))
	assert.False(t, IsAllowedDocumentType(DocumentType("")))
}

func TestLineItemSubtotal(t *testing.T) {
	assert.Equal(t, 7.5, LineItem{Quantity: 3, Price: 2.5}.Subtotal())
	assert.Equal(t, 0.0, LineItem{Quantity: 0, Price: 99}.Subtotal())
}

func TestRecomputeTotal(t *testing.T) {
	content := DocumentContent{Items: []LineItem{
		{Quantity: 2, Price: 10},
		{Quantity: 1, Price: 0.5},
	}}
	content.RecomputeTotal()
	assert.Equal(t, 20.5, content.Total)

	content.Items = nil
	content.RecomputeTotal()
	assert.Equal(t, 0.0, content.Total)
}

func TestDocumentJSON_CompletedAtNullWhileDraft(t *testing.T) {
	doc := Document{
		ID:        "d1",
		DocType:   DocumentTypeReceipt,
		Status:    DocumentStatusDraft,
		CreatedAt: "2025-03-14T10:30:00Z",
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"completedAt":null`)
}
