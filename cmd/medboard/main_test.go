package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/api"
	"github.com/terraincognita07/medboard/internal/assistant"
	"github.com/terraincognita07/medboard/internal/db"
	"github.com/terraincognita07/medboard/internal/symptoms"
)

func newTestServerApp(t *testing.T, staticDir string) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "medboard-main-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := api.NewHandler(database, assistant.Unconfigured{}, api.Options{})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return newApp(handler, staticDir)
}

func TestNewAppServesStaticFilesAndAPI(t *testing.T) {
	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>medboard</h1>"), 0o600); err != nil {
		t.Fatalf("write index: %v", err)
	}
	app := newTestServerApp(t, staticDir)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/static/index.html", nil), -1)
	if err != nil {
		t.Fatalf("GET /static/index.html failed: %v", err)
	}
	body, _ := io.ReadAll(response.Body)
	response.Body.Close()
	if response.StatusCode != http.StatusOK || !strings.Contains(string(body), "medboard") {
		t.Fatalf("expected static index, got %d: %s", response.StatusCode, string(body))
	}

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", response.StatusCode)
	}
}

func TestNewAppUnknownPathIsJSONNotFound(t *testing.T) {
	app := newTestServerApp(t, "")

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	if err != nil {
		t.Fatalf("GET /nope failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
	payload := map[string]string{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload["error"] != "not found" {
		t.Fatalf("unexpected error payload: %v", payload)
	}
}

func TestFallbackLimitZeroDisables(t *testing.T) {
	if got := fallbackLimit(0); got != -1 {
		t.Fatalf("fallbackLimit(0) = %d, want -1", got)
	}
	if got := fallbackLimit(30); got != 30 {
		t.Fatalf("fallbackLimit(30) = %d, want 30", got)
	}
}

func TestDiagnoseCommandAnswersLocally(t *testing.T) {
	t.Setenv("MEDBOARD_SERVER_URL", "http://127.0.0.1:1")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "diagnose", "fever", "and", "cough"})

	if err := root.Execute(); err != nil {
		t.Fatalf("diagnose command failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), symptoms.AnswerPrefix) {
		t.Fatalf("expected local answer, got %q", out.String())
	}
}

func TestImportCommandLoadsPatients(t *testing.T) {
	dir := t.TempDir()
	patientsFile := filepath.Join(dir, "patients.json")
	if err := os.WriteFile(patientsFile, []byte(`[{"patient_id": 1, "name": "Alice", "diagnosis": "Flu"}]`), 0o600); err != nil {
		t.Fatalf("write patients file: %v", err)
	}

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "import", "--db", filepath.Join(dir, "medboard.db"), patientsFile})

	if err := root.Execute(); err != nil {
		t.Fatalf("import command failed: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 1 patients") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
