package handlers

import (
	"errors"
	"strconv"

	"piscopy/internal/dto"
	"piscopy/internal/models"
	"piscopy/internal/service"
	"piscopy/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService *service.DocumentService
	shop       *config.ShopConfig
	logger     *zap.Logger
}

func NewDocumentHandler(docService *service.DocumentService, shop *config.ShopConfig, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		shop:       shop,
		logger:     logger,
	}
}

// Create godoc
// @Summary Create a new draft document from a type template
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.CreateDocumentRequest true "Document type: receipt, delivery_note or purchase_order"
// @Security Bearer
// @Success 201 {object} models.Document
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document type",
		})
	}

	doc, err := h.docService.Create(c.Context(), models.DocumentType(req.Type))
	if err != nil {
		if errors.Is(err, service.ErrUnknownDocType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid document type",
			})
		}
		h.logger.Error("Failed to create document", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to create document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// List godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Param status query string false "Filter by status: draft or completed"
// @Security Bearer
// @Success 200 {array} models.Document
// @Router /api/v1/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	status := models.DocumentStatus(c.Query("status"))
	return c.JSON(h.docService.List(status))
}

// Get godoc
// @Summary Get one document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	doc, err := h.docService.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}
	return c.JSON(doc)
}

// UpdateFields godoc
// @Summary Edit top-level content fields of a draft
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.UpdateFieldsRequest true "Fields to replace"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/documents/{id}/fields [patch]
func (h *DocumentHandler) UpdateFields(c *fiber.Ctx) error {
	var req dto.UpdateFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := h.docService.UpdateFields(c.Params("id"), req.CompanyName, req.Date)
	if err != nil {
		return h.documentError(c, err)
	}
	return c.JSON(doc)
}

// AddItem godoc
// @Summary Append an empty line item to a draft
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/documents/{id}/items [post]
func (h *DocumentHandler) AddItem(c *fiber.Ctx) error {
	doc, err := h.docService.AddItem(c.Params("id"))
	if err != nil {
		return h.documentError(c, err)
	}
	return c.JSON(doc)
}

// EditItem godoc
// @Summary Replace one field of one line item
// @Description Numeric fields are parsed from the raw value and coerce to zero when unparsable
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param index path int true "Item index"
// @Param request body dto.EditItemRequest true "Field and raw value"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/documents/{id}/items/{index} [patch]
func (h *DocumentHandler) EditItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item index",
		})
	}

	var req dto.EditItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item field",
		})
	}

	doc, err := h.docService.EditItem(c.Params("id"), index, req.Field, req.Value)
	if err != nil {
		return h.documentError(c, err)
	}
	return c.JSON(doc)
}

// RemoveItem godoc
// @Summary Delete one line item by index
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Param index path int true "Item index"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/documents/{id}/items/{index} [delete]
func (h *DocumentHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item index",
		})
	}

	doc, err := h.docService.RemoveItem(c.Params("id"), index)
	if err != nil {
		return h.documentError(c, err)
	}
	return c.JSON(doc)
}

// Save godoc
// @Summary Persist the current state of a draft
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/documents/{id}/save [post]
func (h *DocumentHandler) Save(c *fiber.Ctx) error {
	doc, err := h.docService.Save(c.Context(), c.Params("id"))
	if err != nil {
		return h.documentError(c, err)
	}
	return c.JSON(doc)
}

// Complete godoc
// @Summary Complete a draft document
// @Description One-way transition; the completed document can then be printed
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/documents/{id}/complete [post]
func (h *DocumentHandler) Complete(c *fiber.Ctx) error {
	doc, err := h.docService.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return h.documentError(c, err)
	}
	return c.JSON(doc)
}

// Discard godoc
// @Summary Delete a draft document
// @Tags documents
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/documents/{id} [delete]
func (h *DocumentHandler) Discard(c *fiber.Ctx) error {
	if err := h.docService.Discard(c.Context(), c.Params("id")); err != nil {
		return h.documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Print godoc
// @Summary Render a document as printable HTML
// @Tags documents
// @Produce html
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{id}/print [get]
func (h *DocumentHandler) Print(c *fiber.Ctx) error {
	doc, err := h.docService.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	html, err := renderPrintable(h.shop, doc)
	if err != nil {
		h.logger.Error("Failed to render document", zap.String("id", doc.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render document",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *DocumentHandler) documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	case errors.Is(err, service.ErrDocumentCompleted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Document is completed and can no longer change",
		})
	case errors.Is(err, service.ErrItemIndex):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Item index out of range",
		})
	case errors.Is(err, service.ErrItemField):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item field",
		})
	default:
		h.logger.Error("Document operation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Document store is unavailable",
		})
	}
}
