package services

import (
	"context"
	"errors"
	"strings"

	"github.com/terraincognita07/medboard/internal/symptoms"
)

var (
	ErrEmptyQuery = errors.New("query is required")

	ErrAssistantNotConfigured = errors.New("remote assistant is not configured")
	ErrAssistantUnavailable   = errors.New("remote assistant unavailable")
	ErrAssistantEmptyAnswer   = errors.New("remote assistant returned no answer")
)

const (
	AnswerSourceLocal  = "local"
	AnswerSourceRemote = "remote"
)

// Assistant is the remote fallback consulted when no local answer exists.
type Assistant interface {
	Diagnose(ctx context.Context, symptoms string) (string, error)
	AnswerPatientQuestion(ctx context.Context, question string) (string, error)
	ExtractText(ctx context.Context, mimeType string, data []byte) (string, error)
}

type SymptomResolver interface {
	Resolve(query string) symptoms.Outcome
}

type Answer struct {
	Source     string   `json:"source"`
	Text       string   `json:"answer"`
	Conditions []string `json:"conditions,omitempty"`
}

type DiagnosisService struct {
	resolver  SymptomResolver
	assistant Assistant
}

func NewDiagnosisService(resolver SymptomResolver, assistant Assistant) *DiagnosisService {
	return &DiagnosisService{resolver: resolver, assistant: assistant}
}

// Diagnose answers from the symptom knowledge base when any symptom is
// recognized and asks the assistant otherwise. Blank queries never reach the
// assistant.
func (service *DiagnosisService) Diagnose(ctx context.Context, query string) (Answer, error) {
	outcome := service.resolver.Resolve(query)
	switch outcome.Kind {
	case symptoms.OutcomeEmptyQuery:
		return Answer{}, ErrEmptyQuery
	case symptoms.OutcomeAnswer:
		return Answer{Source: AnswerSourceLocal, Text: outcome.Text, Conditions: outcome.Conditions}, nil
	}

	text, err := askAssistant(ctx, service.assistant, func(assistant Assistant) (string, error) {
		return assistant.Diagnose(ctx, strings.TrimSpace(query))
	})
	if err != nil {
		return Answer{}, err
	}
	return Answer{Source: AnswerSourceRemote, Text: text}, nil
}

// NeedsRemote reports whether Diagnose would consult the assistant.
func (service *DiagnosisService) NeedsRemote(query string) bool {
	return service.resolver.Resolve(query).Kind == symptoms.OutcomeNoLocalMatch
}

type LocalPatientAnswerer interface {
	AnswerLocally(question string) (string, bool, error)
}

type PatientQueryService struct {
	records   LocalPatientAnswerer
	assistant Assistant
}

func NewPatientQueryService(records LocalPatientAnswerer, assistant Assistant) *PatientQueryService {
	return &PatientQueryService{records: records, assistant: assistant}
}

func (service *PatientQueryService) Answer(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuery
	}

	text, found, err := service.records.AnswerLocally(question)
	if err != nil {
		return Answer{}, err
	}
	if found {
		return Answer{Source: AnswerSourceLocal, Text: text}, nil
	}

	text, err = askAssistant(ctx, service.assistant, func(assistant Assistant) (string, error) {
		return assistant.AnswerPatientQuestion(ctx, question)
	})
	if err != nil {
		return Answer{}, err
	}
	return Answer{Source: AnswerSourceRemote, Text: text}, nil
}

// NeedsRemote reports whether Answer would consult the assistant. Lookup
// failures count as remote so callers stay conservative.
func (service *PatientQueryService) NeedsRemote(question string) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}
	_, found, err := service.records.AnswerLocally(question)
	return err != nil || !found
}

func askAssistant(ctx context.Context, assistant Assistant, call func(Assistant) (string, error)) (string, error) {
	if assistant == nil {
		return "", ErrAssistantNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := call(assistant)
	if err != nil {
		return "", classifyAssistantError(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrAssistantEmptyAnswer
	}
	return text, nil
}

func classifyAssistantError(err error) error {
	switch {
	case errors.Is(err, ErrAssistantNotConfigured),
		errors.Is(err, ErrAssistantUnavailable),
		errors.Is(err, ErrAssistantEmptyAnswer),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return errors.Join(ErrAssistantUnavailable, err)
	}
}
