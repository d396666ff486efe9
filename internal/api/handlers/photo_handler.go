package handlers

import (
	"errors"
	"io"
	"strconv"

	"piscopy/internal/dto"
	"piscopy/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	logger       *zap.Logger
}

func NewPhotoHandler(photoService *service.PhotoService, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		logger:       logger,
	}
}

// Upload godoc
// @Summary Upload one or more image files
// @Description Registers the files as pending entries awaiting a save decision
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Image files"
// @Security Bearer
// @Success 201 {array} models.PendingFile
// @Failure 400 {object} map[string]string
// @Router /api/v1/photos/upload [post]
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Multipart form is required",
		})
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one file is required",
		})
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open file " + header.Filename,
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read file " + header.Filename,
			})
		}
		files = append(files, service.UploadedFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	entries := h.photoService.Accept(files)
	return c.Status(fiber.StatusCreated).JSON(entries)
}

// ListPending godoc
// @Summary List pending files
// @Tags photos
// @Produce json
// @Security Bearer
// @Success 200 {array} models.PendingFile
// @Router /api/v1/photos/pending [get]
func (h *PhotoHandler) ListPending(c *fiber.Ctx) error {
	return c.JSON(h.photoService.Pending())
}

// UpdatePendingNote godoc
// @Summary Edit the note on a pending file
// @Tags photos
// @Accept json
// @Produce json
// @Param id path string true "Pending file ID"
// @Param request body dto.UpdateNoteRequest true "Note"
// @Security Bearer
// @Success 200 {object} models.PendingFile
// @Failure 404 {object} map[string]string
// @Router /api/v1/photos/pending/{id}/note [patch]
func (h *PhotoHandler) UpdatePendingNote(c *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.photoService.UpdatePendingNote(c.Params("id"), req.Note)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Pending file not found",
		})
	}

	return c.JSON(entry)
}

// DiscardPending godoc
// @Summary Discard a pending file without saving it
// @Tags photos
// @Param id path string true "Pending file ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/photos/pending/{id} [delete]
func (h *PhotoHandler) DiscardPending(c *fiber.Ctx) error {
	if err := h.photoService.DiscardPending(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Pending file not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CommitPending godoc
// @Summary Save a pending file as a photo record
// @Tags photos
// @Produce json
// @Param id path string true "Pending file ID"
// @Security Bearer
// @Success 201 {object} models.Photo
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/photos/pending/{id}/commit [post]
func (h *PhotoHandler) CommitPending(c *fiber.Ctx) error {
	photo, err := h.photoService.CommitPending(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPendingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Pending file not found",
			})
		case errors.Is(err, service.ErrPreviewNotReady):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Preview is still being generated, retry shortly",
			})
		case errors.Is(err, service.ErrCommitInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "This file is already being saved",
			})
		default:
			h.logger.Error("Failed to commit pending file", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to save photo",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// ListPhotos godoc
// @Summary List stored photos
// @Tags photos
// @Produce json
// @Security Bearer
// @Success 200 {array} models.Photo
// @Router /api/v1/photos [get]
func (h *PhotoHandler) ListPhotos(c *fiber.Ctx) error {
	return c.JSON(h.photoService.Photos())
}

// GetPhoto godoc
// @Summary Get one photo with its note
// @Tags photos
// @Produce json
// @Param id path string true "Photo ID"
// @Security Bearer
// @Success 200 {object} models.Photo
// @Failure 404 {object} map[string]string
// @Router /api/v1/photos/{id} [get]
func (h *PhotoHandler) GetPhoto(c *fiber.Ctx) error {
	photo, err := h.photoService.Photo(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Photo not found",
		})
	}
	return c.JSON(photo)
}

// SaveNote godoc
// @Summary Replace a photo's note
// @Tags photos
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Param request body dto.UpdateNoteRequest true "Note"
// @Security Bearer
// @Success 200 {object} models.Photo
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/photos/{id}/note [put]
func (h *PhotoHandler) SaveNote(c *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	photo, err := h.photoService.SaveNote(c.Context(), c.Params("id"), req.Note)
	if err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Photo not found",
			})
		}
		h.logger.Error("Failed to save note", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to save note",
		})
	}

	return c.JSON(photo)
}

// DeletePhoto godoc
// @Summary Delete a photo permanently
// @Tags photos
// @Param id path string true "Photo ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/photos/{id} [delete]
func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	if err := h.photoService.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Photo not found",
			})
		}
		h.logger.Error("Failed to delete photo", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to delete photo",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Download godoc
// @Summary Download a photo's image under its original file name
// @Tags photos
// @Produce octet-stream
// @Param id path string true "Photo ID"
// @Security Bearer
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /api/v1/photos/{id}/download [get]
func (h *PhotoHandler) Download(c *fiber.Ctx) error {
	export, err := h.photoService.Export(c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Photo not found",
			})
		}
		h.logger.Error("Failed to export photo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Photo image data is malformed",
		})
	}

	c.Set(fiber.HeaderContentType, export.MediaType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(export.FileName))
	return c.Send(export.Data)
}
