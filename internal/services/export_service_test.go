package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"
)

func TestExportServiceWriteCSV(t *testing.T) {
	t.Parallel()

	service := NewExportService(NewPatientService(&stubPatientRepo{patients: samplePatients()}))

	var output bytes.Buffer
	count, err := service.WriteCSV(&output, "")
	if err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 exported patients, got %d", count)
	}

	rows, err := csv.NewReader(&output).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Patient ID" || len(rows[0]) != len(ExportCSVHeaders) {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "1" {
		t.Fatalf("expected first row to be patient 1, got %v", rows[1])
	}
}

func TestExportServiceWriteCSVHonorsFilter(t *testing.T) {
	t.Parallel()

	service := NewExportService(NewPatientService(&stubPatientRepo{patients: samplePatients()}))

	var output bytes.Buffer
	count, err := service.WriteCSV(&output, "zzz-no-match")
	if err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no exported patients, got %d", count)
	}
	rows, err := csv.NewReader(&output).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestExportServiceWriteCSVListError(t *testing.T) {
	t.Parallel()

	service := NewExportService(NewPatientService(&stubPatientRepo{listErr: errors.New("disk gone")}))

	_, err := service.WriteCSV(&bytes.Buffer{}, "")
	if !errors.Is(err, ErrListPatientsFailed) {
		t.Fatalf("expected ErrListPatientsFailed, got %v", err)
	}
}

func TestBuildExportFilename(t *testing.T) {
	t.Parallel()

	got := BuildExportFilename(time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC), "csv")
	if got != "medboard-patients-2025-03-04.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
