package services

import (
	"context"
	"errors"
	"mime"
	"strings"
)

var (
	ErrEmptyDocument           = errors.New("document is empty")
	ErrDocumentTooLarge        = errors.New("document too large")
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
)

const MaxDocumentBytes = 10 << 20

var supportedDocumentTypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"image/webp":      {},
	"image/gif":       {},
	"image/bmp":       {},
	"image/tiff":      {},
	"application/pdf": {},
}

// DocumentService extracts text from scanned documents.
type DocumentService struct {
	assistant Assistant
}

func NewDocumentService(assistant Assistant) *DocumentService {
	return &DocumentService{assistant: assistant}
}

func (service *DocumentService) ExtractText(ctx context.Context, contentType string, data []byte) (string, error) {
	mimeType, err := NormalizeDocumentType(contentType)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	if len(data) > MaxDocumentBytes {
		return "", ErrDocumentTooLarge
	}

	return askAssistant(ctx, service.assistant, func(assistant Assistant) (string, error) {
		return assistant.ExtractText(ctx, mimeType, data)
	})
}

// NormalizeDocumentType strips parameters from a Content-Type header and
// checks it against the supported document types.
func NormalizeDocumentType(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	if err != nil {
		return "", ErrUnsupportedDocumentType
	}
	mediaType = strings.ToLower(mediaType)
	if mediaType == "image/jpg" {
		mediaType = "image/jpeg"
	}
	if _, ok := supportedDocumentTypes[mediaType]; !ok {
		return "", ErrUnsupportedDocumentType
	}
	return mediaType, nil
}
