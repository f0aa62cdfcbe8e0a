package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/db"
	"github.com/terraincognita07/medboard/internal/services"
	"github.com/terraincognita07/medboard/internal/symptoms"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, assistant services.Assistant, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}

	handler := &Handler{
		resolver:         options.Resolver,
		assistant:        assistant,
		fallbackLimiter:  newAttemptLimiter(),
		fallbackLimit:    options.FallbackLimit,
		fallbackWindow:   options.FallbackWindow,
		assistantTimeout: options.AssistantTimeout,
		logger:           options.Logger,
		now:              time.Now,
	}
	if handler.resolver == nil {
		handler.resolver = symptoms.Default()
	}
	if handler.fallbackLimit == 0 {
		handler.fallbackLimit = defaultFallbackLimit
	}
	if handler.fallbackWindow <= 0 {
		handler.fallbackWindow = defaultFallbackWindow
	}
	if handler.assistantTimeout <= 0 {
		handler.assistantTimeout = defaultAssistantTimeout
	}
	if handler.logger == nil {
		handler.logger = zap.NewNop()
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.patientService = services.NewPatientService(repositories.Patients)
	handler.diagnosisService = services.NewDiagnosisService(handler.resolver, handler.assistant)
	handler.queryService = services.NewPatientQueryService(handler.patientService, handler.assistant)
	handler.documentService = services.NewDocumentService(handler.assistant)
	handler.exportService = services.NewExportService(handler.patientService)
	return handler
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
