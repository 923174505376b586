package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalendar/internal/db"
	"github.com/terraincognita07/ovumcalendar/internal/i18n"
	"go.uber.org/zap"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithConfig(t, HandlerConfig{SecretKey: testSecretKey})
}

func newTestAppWithConfig(t *testing.T, config HandlerConfig) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ovumcalendar-test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := db.NewSQLiteStore(database)
	t.Cleanup(func() {
		_ = store.Close()
	})

	i18nManager, err := i18n.NewBundledManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(store, i18nManager, zap.NewNop(), config)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app, handler
}

// testClient replays the device cookie between requests.
type testClient struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
	headers map[string]string
}

func newTestClient(t *testing.T, app *fiber.App) *testClient {
	return &testClient{t: t, app: app, cookies: map[string]*http.Cookie{}, headers: map[string]string{}}
}

func (client *testClient) do(method string, path string, body string) *http.Response {
	client.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	for name, value := range client.headers {
		request.Header.Set(name, value)
	}
	for _, cookie := range client.cookies {
		request.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	response, err := client.app.Test(request, -1)
	if err != nil {
		client.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	for _, cookie := range response.Cookies() {
		client.cookies[cookie.Name] = cookie
	}
	return response
}

// doJSON performs the request, checks the status and decodes the body into target.
func (client *testClient) doJSON(method string, path string, body string, wantStatus int, target any) {
	client.t.Helper()

	response := client.do(method, path, body)
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		client.t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		client.t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, wantStatus, response.StatusCode, payload)
	}
	if target == nil {
		return
	}
	if err := json.Unmarshal(payload, target); err != nil {
		client.t.Fatalf("decode %s %s response: %v (%s)", method, path, err, payload)
	}
}

func (client *testClient) savePeriodSettings(lastPeriodDate string, cycleLength int, periodLength int) periodStateResponse {
	client.t.Helper()
	body, err := json.Marshal(map[string]any{
		"last_period_date": lastPeriodDate,
		"cycle_length":     cycleLength,
		"period_length":    periodLength,
	})
	if err != nil {
		client.t.Fatalf("encode settings: %v", err)
	}
	response := periodStateResponse{}
	client.doJSON(http.MethodPut, "/api/period/settings", string(body), http.StatusOK, &response)
	return response
}

type apiErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (client *testClient) expectError(method string, path string, body string, wantStatus int, wantCode string) apiErrorPayload {
	client.t.Helper()
	payload := apiErrorPayload{}
	client.doJSON(method, path, body, wantStatus, &payload)
	if payload.Code != wantCode {
		client.t.Fatalf("%s %s: expected error code %q, got %q (%q)", method, path, wantCode, payload.Code, payload.Error)
	}
	return payload
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
