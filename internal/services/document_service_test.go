package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextValidatesUpload(t *testing.T) {
	assistant := &stubAssistant{answer: "text"}
	service := NewDocumentService(assistant)

	_, err := service.ExtractText(context.Background(), "text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)

	_, err = service.ExtractText(context.Background(), "image/png", nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = service.ExtractText(context.Background(), "image/png", make([]byte, MaxDocumentBytes+1))
	assert.ErrorIs(t, err, ErrDocumentTooLarge)

	assert.Empty(t, assistant.extractCalls)
}

func TestExtractTextPassesNormalizedType(t *testing.T) {
	assistant := &stubAssistant{answer: "  Discharge summary\nJohn Doe  "}
	service := NewDocumentService(assistant)

	text, err := service.ExtractText(context.Background(), "IMAGE/JPG; charset=binary", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "Discharge summary\nJohn Doe", text)
	assert.Equal(t, []string{"image/jpeg"}, assistant.extractCalls)
}

func TestExtractTextWithoutAssistant(t *testing.T) {
	service := NewDocumentService(nil)

	_, err := service.ExtractText(context.Background(), "application/pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrAssistantNotConfigured)
}

func TestNormalizeDocumentType(t *testing.T) {
	cases := map[string]string{
		"image/png":            "image/png",
		" Image/WEBP ":         "image/webp",
		"application/pdf; q=1": "application/pdf",
		"image/tiff":           "image/tiff",
	}
	for input, want := range cases {
		got, err := NormalizeDocumentType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "image", "video/mp4", "application/zip"} {
		_, err := NormalizeDocumentType(input)
		assert.ErrorIs(t, err, ErrUnsupportedDocumentType, input)
	}
}
