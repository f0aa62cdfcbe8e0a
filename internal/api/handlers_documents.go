package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/services"
)

const documentFormField = "image"

func (handler *Handler) ExtractDocumentText(c *fiber.Ctx) error {
	header, err := c.FormFile(documentFormField)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "image is required")
	}
	if header.Size > services.MaxDocumentBytes {
		return apiError(c, fiber.StatusRequestEntityTooLarge, "image is too large")
	}

	file, err := header.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "failed to read image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxDocumentBytes+1))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "failed to read image")
	}

	if len(data) == 0 {
		return handler.serviceError(c, "extract text", services.ErrEmptyDocument)
	}

	contentType := documentContentType(header.Header.Get(fiber.HeaderContentType), data)
	if _, err := services.NormalizeDocumentType(contentType); err != nil {
		return handler.serviceError(c, "extract text", err)
	}
	if !handler.admitFallback(c) {
		return tooManyFallbacks(c)
	}

	ctx, cancel := handler.assistantContext(c)
	defer cancel()

	text, err := handler.documentService.ExtractText(ctx, contentType, data)
	if err != nil {
		return handler.serviceError(c, "extract text", err)
	}
	return c.JSON(fiber.Map{"text": text})
}

// documentContentType trusts the declared part type unless the browser sent
// a generic one.
func documentContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared == "" || strings.HasPrefix(strings.ToLower(declared), fiber.MIMEOctetStream) {
		return http.DetectContentType(data)
	}
	return declared
}
