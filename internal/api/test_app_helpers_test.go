package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/db"
	"github.com/terraincognita07/medboard/internal/services"
	"gorm.io/gorm"
)

type stubAssistant struct {
	mu       sync.Mutex
	answer   string
	err      error
	calls    int
	mimeType string
}

func (stub *stubAssistant) record(mimeType string) (string, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.calls++
	stub.mimeType = mimeType
	return stub.answer, stub.err
}

func (stub *stubAssistant) Diagnose(context.Context, string) (string, error) {
	return stub.record("")
}

func (stub *stubAssistant) AnswerPatientQuestion(context.Context, string) (string, error) {
	return stub.record("")
}

func (stub *stubAssistant) ExtractText(_ context.Context, mimeType string, _ []byte) (string, error) {
	return stub.record(mimeType)
}

func (stub *stubAssistant) callCount() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.calls
}

func newTestApp(t *testing.T, assistant services.Assistant, options Options) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "medboard-api-test.db")
	database, err := db.OpenSQLite(databasePath, nil)
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

	handler, err := NewHandler(database, assistant, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return sendRequest(t, app, request)
}

func doUpload(t *testing.T, app *fiber.App, field string, contentType string, data []byte) (int, map[string]any) {
	t.Helper()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="scan"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write multipart part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/ocr", &buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return sendRequest(t, app, request)
}

func sendRequest(t *testing.T, app *fiber.App, request *http.Request) (int, map[string]any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", string(raw), err)
		}
	}
	return response.StatusCode, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string) []map[string]any {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("GET %s expected status 200, got %d", path, response.StatusCode)
	}

	list := []map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return list
}
