package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/medboard/internal/db"
	"github.com/terraincognita07/medboard/internal/models"
	"github.com/terraincognita07/medboard/internal/services"
	"go.uber.org/zap"
)

// RunImportCommand loads a JSON array of patient records into the database
// at dbPath. The whole file is rejected when any record is invalid.
func RunImportCommand(dbPath string, filePath string, out io.Writer, logger *zap.Logger) error {
	if strings.TrimSpace(filePath) == "" {
		return errors.New("patients file is required")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open patients file: %w", err)
	}
	defer file.Close()

	records, err := decodePatients(file)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	patientService := services.NewPatientService(db.NewRepositories(database).Patients)
	imported, err := patientService.ImportPatients(records)
	if err != nil {
		return fmt.Errorf("import patients: %w", err)
	}
	total, err := patientService.CountPatients()
	if err != nil {
		return fmt.Errorf("count patients: %w", err)
	}

	fmt.Fprintf(out, "✅ Imported %d patients (%d total)\n", imported, total)
	return nil
}

func decodePatients(reader io.Reader) ([]models.Patient, error) {
	var records []models.Patient
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode patients file: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("patients file has no records")
	}
	return records, nil
}
