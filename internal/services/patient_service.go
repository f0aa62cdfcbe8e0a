package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/medboard/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPatientNameRequired      = errors.New("patient name is required")
	ErrPatientDiagnosisRequired = errors.New("patient diagnosis is required")
	ErrInvalidAdmissionDate     = errors.New("invalid date of admission")
	ErrPatientFieldTooLong      = errors.New("patient field too long")
	ErrPatientNotFound          = errors.New("patient not found")
	ErrCreatePatientFailed      = errors.New("create patient failed")
	ErrListPatientsFailed       = errors.New("list patients failed")
)

const maxPatientFieldLength = 500

type PatientRepository interface {
	ListAll() ([]models.Patient, error)
	FindByID(patientID uint) (models.Patient, error)
	Create(patient *models.Patient) error
	CreateBatch(patients []models.Patient) error
	Count() (int64, error)
}

type PatientInput struct {
	Name              string `json:"name" form:"name"`
	Diagnosis         string `json:"diagnosis" form:"diagnosis"`
	DateOfAdmission   string `json:"date_of_admission" form:"date_of_admission"`
	PreviousAilments  string `json:"previous_ailments" form:"previous_ailments"`
	PreviousDiagnosis string `json:"previous_diagnosis" form:"previous_diagnosis"`
	OtherConditions   string `json:"other_conditions" form:"other_conditions"`
}

type PatientService struct {
	patients PatientRepository
}

func NewPatientService(patients PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

// ListPatients returns every patient ordered by id. A non-blank filter keeps
// only patients with at least one column containing it, ignoring case.
func (service *PatientService) ListPatients(filter string) ([]models.Patient, error) {
	patients, err := service.patients.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPatientsFailed, err)
	}

	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return patients, nil
	}

	matched := make([]models.Patient, 0, len(patients))
	for _, patient := range patients {
		if PatientMatchesFilter(patient, needle) {
			matched = append(matched, patient)
		}
	}
	return matched, nil
}

// PatientMatchesFilter expects needle to be lowercased already.
func PatientMatchesFilter(patient models.Patient, needle string) bool {
	for _, cell := range patientCells(patient) {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}

func patientCells(patient models.Patient) []string {
	return []string{
		strconv.FormatUint(uint64(patient.ID), 10),
		patient.Name,
		patient.Diagnosis,
		patient.DateOfAdmission,
		patient.PreviousAilments,
		patient.PreviousDiagnosis,
		patient.OtherConditions,
	}
}

func (service *PatientService) FindPatient(patientID uint) (models.Patient, error) {
	patient, err := service.patients.FindByID(patientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Patient{}, ErrPatientNotFound
	}
	if err != nil {
		return models.Patient{}, err
	}
	return patient, nil
}

func (service *PatientService) AddPatient(input PatientInput) (models.Patient, error) {
	patient, err := NormalizePatientInput(input)
	if err != nil {
		return models.Patient{}, err
	}
	if err := service.patients.Create(&patient); err != nil {
		return models.Patient{}, fmt.Errorf("%w: %v", ErrCreatePatientFailed, err)
	}
	return patient, nil
}

// ImportPatients validates and stores records as one batch. Records keep
// their IDs; zero IDs are assigned by the store after every explicit ID in
// the batch, so a later explicit ID cannot collide with an assigned one.
func (service *PatientService) ImportPatients(records []models.Patient) (int, error) {
	explicit := make([]models.Patient, 0, len(records))
	assigned := make([]models.Patient, 0, len(records))
	for index, record := range records {
		patient, err := NormalizePatientInput(PatientInput{
			Name:              record.Name,
			Diagnosis:         record.Diagnosis,
			DateOfAdmission:   record.DateOfAdmission,
			PreviousAilments:  record.PreviousAilments,
			PreviousDiagnosis: record.PreviousDiagnosis,
			OtherConditions:   record.OtherConditions,
		})
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", index, err)
		}
		patient.ID = record.ID
		if patient.ID == 0 {
			assigned = append(assigned, patient)
			continue
		}
		explicit = append(explicit, patient)
	}

	patients := append(explicit, assigned...)
	if err := service.patients.CreateBatch(patients); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreatePatientFailed, err)
	}
	return len(patients), nil
}

func (service *PatientService) CountPatients() (int64, error) {
	return service.patients.Count()
}

// AnswerLocally looks for the first patient whose name or diagnosis appears
// in question and formats their record.
func (service *PatientService) AnswerLocally(question string) (string, bool, error) {
	keyword := strings.ToLower(strings.TrimSpace(question))
	if keyword == "" {
		return "", false, nil
	}

	patients, err := service.patients.ListAll()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrListPatientsFailed, err)
	}

	for _, patient := range patients {
		if containsNonEmpty(keyword, patient.Name) || containsNonEmpty(keyword, patient.Diagnosis) {
			return FormatPatientRecord(patient), true, nil
		}
	}
	return "", false, nil
}

func containsNonEmpty(haystack string, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value != "" && strings.Contains(haystack, value)
}

func FormatPatientRecord(patient models.Patient) string {
	return fmt.Sprintf(
		"Patient: %s\nDiagnosis: %s\nDate of Admission: %s\nPrevious Ailments: %s\nPrevious Diagnosis: %s\nOther Conditions: %s",
		patient.Name,
		patient.Diagnosis,
		patient.DateOfAdmission,
		patient.PreviousAilments,
		patient.PreviousDiagnosis,
		patient.OtherConditions,
	)
}

func NormalizePatientInput(input PatientInput) (models.Patient, error) {
	patient := models.Patient{
		Name:              strings.TrimSpace(input.Name),
		Diagnosis:         strings.TrimSpace(input.Diagnosis),
		DateOfAdmission:   strings.TrimSpace(input.DateOfAdmission),
		PreviousAilments:  strings.TrimSpace(input.PreviousAilments),
		PreviousDiagnosis: strings.TrimSpace(input.PreviousDiagnosis),
		OtherConditions:   strings.TrimSpace(input.OtherConditions),
	}

	if patient.Name == "" {
		return models.Patient{}, ErrPatientNameRequired
	}
	if patient.Diagnosis == "" {
		return models.Patient{}, ErrPatientDiagnosisRequired
	}
	if patient.DateOfAdmission != "" {
		if _, err := time.Parse(models.AdmissionDateLayout, patient.DateOfAdmission); err != nil {
			return models.Patient{}, ErrInvalidAdmissionDate
		}
	}
	for _, value := range patientCells(patient)[1:] {
		if utf8.RuneCountInString(value) > maxPatientFieldLength {
			return models.Patient{}, ErrPatientFieldTooLong
		}
	}
	return patient, nil
}
