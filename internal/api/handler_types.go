package api

import (
	"time"

	"github.com/terraincognita07/medboard/internal/models"
	"github.com/terraincognita07/medboard/internal/services"
	"github.com/terraincognita07/medboard/internal/symptoms"
	"go.uber.org/zap"
)

const (
	defaultFallbackLimit    = 30
	defaultFallbackWindow   = 10 * time.Minute
	defaultAssistantTimeout = 45 * time.Second
)

type Handler struct {
	resolver         *symptoms.Resolver
	assistant        services.Assistant
	patientService   *services.PatientService
	diagnosisService *services.DiagnosisService
	queryService     *services.PatientQueryService
	documentService  *services.DocumentService
	exportService    *services.ExportService
	fallbackLimiter  *attemptLimiter
	fallbackLimit    int
	fallbackWindow   time.Duration
	assistantTimeout time.Duration
	logger           *zap.Logger
	now              func() time.Time
}

// Options tunes the remote fallback. Zero values fall back to defaults; a
// negative FallbackLimit disables the limiter.
type Options struct {
	Resolver         *symptoms.Resolver
	FallbackLimit    int
	FallbackWindow   time.Duration
	AssistantTimeout time.Duration
	Logger           *zap.Logger
}

type queryPayload struct {
	Query string `json:"query" form:"query"`
}

type addPatientResponse struct {
	Success   bool           `json:"success"`
	PatientID uint           `json:"patient_id"`
	Patient   models.Patient `json:"patient"`
}
