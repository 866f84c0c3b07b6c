package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/terraincognita07/pregcare/internal/db"
	"github.com/terraincognita07/pregcare/internal/metrics"
)

var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()
	return newTestAppWithOptions(t, HandlerOptions{})
}

func newTestAppWithOptions(t *testing.T, options HandlerOptions) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "pregcare-api-test.db")
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

	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = func() time.Time { return testNow }
	}
	if options.Metrics == nil {
		options.Metrics = metrics.New()
	}

	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, database
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, payload any) (int, []byte) {
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
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response.StatusCode, raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		t.Fatalf("decode json %q: %v", string(raw), err)
	}
	return value
}

func quickLog(t *testing.T, app *fiber.App, payload map[string]any) cycleView {
	t.Helper()

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/cycles/quick-log", payload)
	if status != fiber.StatusCreated {
		t.Fatalf("quick-log expected 201, got %d: %s", status, string(raw))
	}
	return decodeJSON[cycleView](t, raw)
}
