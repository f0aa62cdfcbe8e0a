package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/services"
	"go.uber.org/zap"
)

const assistantNotConfiguredMessage = "No assistant API key configured. Set GEMINI_API_KEY to enable the remote fallback."

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service failures onto HTTP statuses. Unexpected errors
// are logged and reported as 500 without their detail.
func (handler *Handler) serviceError(c *fiber.Ctx, operation string, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		return apiError(c, fiber.StatusBadRequest, "query is required")
	case errors.Is(err, services.ErrPatientNameRequired),
		errors.Is(err, services.ErrPatientDiagnosisRequired),
		errors.Is(err, services.ErrInvalidAdmissionDate),
		errors.Is(err, services.ErrPatientFieldTooLong):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPatientNotFound):
		return apiError(c, fiber.StatusNotFound, "patient not found")
	case errors.Is(err, services.ErrEmptyDocument):
		return apiError(c, fiber.StatusBadRequest, "image is empty")
	case errors.Is(err, services.ErrDocumentTooLarge):
		return apiError(c, fiber.StatusRequestEntityTooLarge, "image is too large")
	case errors.Is(err, services.ErrUnsupportedDocumentType):
		return apiError(c, fiber.StatusUnsupportedMediaType, "unsupported image type")
	case errors.Is(err, services.ErrAssistantNotConfigured):
		return apiError(c, fiber.StatusServiceUnavailable, assistantNotConfiguredMessage)
	case errors.Is(err, services.ErrAssistantEmptyAnswer):
		handler.logger.Warn("assistant returned no answer", zap.String("operation", operation))
		return apiError(c, fiber.StatusBadGateway, "remote assistant returned no answer")
	case errors.Is(err, services.ErrAssistantUnavailable):
		handler.logger.Warn("assistant request failed", zap.String("operation", operation), zap.Error(err))
		return apiError(c, fiber.StatusBadGateway, "remote assistant request failed")
	case errors.Is(err, context.DeadlineExceeded):
		handler.logger.Warn("assistant request timed out", zap.String("operation", operation))
		return apiError(c, fiber.StatusGatewayTimeout, "remote assistant timed out")
	default:
		handler.logger.Error("request failed", zap.String("operation", operation), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to "+operation)
	}
}

// admitFallback counts one remote escalation for the client and reports
// whether it stays within the window budget.
func (handler *Handler) admitFallback(c *fiber.Ctx) bool {
	if handler.fallbackLimit < 0 {
		return true
	}
	key := requestLimiterKey(c)
	now := handler.now()
	if handler.fallbackLimiter.tooManyRecent(key, now, handler.fallbackLimit, handler.fallbackWindow) {
		handler.logger.Info("remote fallback limited", zap.String("client", key))
		return false
	}
	handler.fallbackLimiter.addAttempt(key, now, handler.fallbackWindow)
	remaining := handler.fallbackLimiter.remaining(key, now, handler.fallbackLimit, handler.fallbackWindow)
	c.Set("X-Fallback-Remaining", strconv.Itoa(remaining))
	return true
}

func (handler *Handler) assistantContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), handler.assistantTimeout)
}

func tooManyFallbacks(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusTooManyRequests, "too many remote requests, try again later")
}
