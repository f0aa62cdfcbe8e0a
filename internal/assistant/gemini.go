// Package assistant implements the remote fallback on top of Google Gemini.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/medboard/internal/services"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	maxOutputTokens = 500
)

var _ services.Assistant = (*Gemini)(nil)

// generator is the subset of *genai.Models the assistant calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey            string
	Model             string
	RequestsPerSecond float64
	Burst             int
}

// Gemini answers diagnosis and patient questions and transcribes documents.
// All calls share one token bucket.
type Gemini struct {
	models      generator
	model       string
	limiter     *rate.Limiter
	retryDelays []time.Duration
	logger      *zap.Logger
}

// New returns a Gemini assistant, or Unconfigured when no API key is set.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (services.Assistant, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Unconfigured{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, cfg, logger), nil
}

func newGemini(models generator, cfg Config, logger *zap.Logger) *Gemini {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{
		models:      models,
		model:       model,
		limiter:     newLimiter(cfg.RequestsPerSecond, cfg.Burst),
		retryDelays: DefaultRetryDelays(),
		logger:      logger.Named("assistant"),
	}
}

func newLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (g *Gemini) Diagnose(ctx context.Context, symptoms string) (string, error) {
	return g.generate(ctx, "diagnose", []*genai.Content{
		genai.NewContentFromText(BuildDiagnosisPrompt(symptoms), genai.RoleUser),
	})
}

func (g *Gemini) AnswerPatientQuestion(ctx context.Context, question string) (string, error) {
	return g.generate(ctx, "patient_query", []*genai.Content{
		genai.NewContentFromText(BuildPatientQuestionPrompt(question), genai.RoleUser),
	})
}

func (g *Gemini) ExtractText(ctx context.Context, mimeType string, data []byte) (string, error) {
	return g.generate(ctx, "extract_text", []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(extractTextPrompt),
		}, genai.RoleUser),
	})
}

func (g *Gemini) generate(ctx context.Context, operation string, contents []*genai.Content) (string, error) {
	attempts := len(g.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("%w: %v", services.ErrAssistantUnavailable, err)
		}

		result, err := g.models.GenerateContent(ctx, g.model, contents, BuildConfig())
		if err == nil {
			if result == nil {
				return "", services.ErrAssistantEmptyAnswer
			}
			return strings.TrimSpace(result.Text()), nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		lastErr = err
		if permanentError(err) {
			break
		}

		if attempt >= attempts-1 {
			break
		}

		g.logger.Warn("assistant request failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+2),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.retryDelays[attempt]):
		}
	}

	return "", fmt.Errorf("%w: %v", services.ErrAssistantUnavailable, lastErr)
}

// permanentError reports client errors other than 429 that a retry cannot fix,
// such as a rejected API key or an unknown model.
func permanentError(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return false
		}
		apiErr = *apiErrPtr
	}
	return apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429
}

// DefaultRetryDelays returns the backoff between attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

func BuildConfig() *genai.GenerateContentConfig {
	temperature := float32(0.2)
	return &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxOutputTokens,
	}
}

const extractTextPrompt = "Transcribe all text in this scanned document exactly as written. Preserve line breaks. Return only the transcribed text."

func BuildDiagnosisPrompt(symptoms string) string {
	return fmt.Sprintf(
		"You are an experienced doctor. The patient symptoms are: %s.\n"+
			"Provide a concise list of possible diagnoses and recommended next steps (what tests to consider).",
		symptoms,
	)
}

func BuildPatientQuestionPrompt(question string) string {
	return fmt.Sprintf(
		"You are a helpful medical-records assistant. The user asks: %s\n"+
			"Provide a concise helpful answer using patient records context if relevant.",
		question,
	)
}
