package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/medboard/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Patient ID",
	"Name",
	"Diagnosis",
	"Date of Admission",
	"Previous Ailments",
	"Previous Diagnosis",
	"Other Conditions",
}

type PatientLister interface {
	ListPatients(filter string) ([]models.Patient, error)
}

type ExportService struct {
	patients PatientLister
}

func NewExportService(patients PatientLister) *ExportService {
	return &ExportService{patients: patients}
}

// WriteCSV writes the patients matching filter, in table order, with a
// header row.
func (service *ExportService) WriteCSV(output io.Writer, filter string) (int, error) {
	patients, err := service.patients.ListPatients(filter)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, patient := range patients {
		if err := writer.Write(ExportCSVRow(patient)); err != nil {
			return 0, fmt.Errorf("write csv row %d: %w", patient.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(patients), nil
}

// ExportCSVRow lists the columns in ExportCSVHeaders order.
func ExportCSVRow(patient models.Patient) []string {
	return patientCells(patient)
}

func BuildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("medboard-patients-%s.%s", now.Format(exportDateLayout), extension)
}
