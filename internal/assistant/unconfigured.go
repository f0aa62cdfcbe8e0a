package assistant

import (
	"context"

	"github.com/terraincognita07/medboard/internal/services"
)

var _ services.Assistant = Unconfigured{}

// Unconfigured stands in for the assistant when no API key is available.
type Unconfigured struct{}

func (Unconfigured) Diagnose(context.Context, string) (string, error) {
	return "", services.ErrAssistantNotConfigured
}

func (Unconfigured) AnswerPatientQuestion(context.Context, string) (string, error) {
	return "", services.ErrAssistantNotConfigured
}

func (Unconfigured) ExtractText(context.Context, string, []byte) (string, error) {
	return "", services.ErrAssistantNotConfigured
}
