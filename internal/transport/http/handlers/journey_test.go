package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"staffsync/internal/app/server"
	"staffsync/internal/platform/config"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func testConfig(t *testing.T, dbURL string) config.Config {
	t.Helper()
	return config.Config{
		Addr:               ":0",
		DatabaseURL:        dbURL,
		Environment:        "test",
		AccessTokenSecret:  "access-test-secret",
		RefreshTokenSecret: "refresh-test-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    24 * time.Hour,
		CORSOrigin:         "*",
		PublicDir:          t.TempDir(),
		TempDir:            t.TempDir(),
		PublicBaseURL:      "/public",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
		RunMigrations:      true,
		MigrationsDir:      "../../../../migrations",
	}
}

func TestEmployeeLifecycleJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(t, dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	nonce := time.Now().UnixNano()
	email := fmt.Sprintf("journey-%d@example.com", nonce)
	phone := fmt.Sprintf("9%09d", nonce%1_000_000_000)
	empID := fmt.Sprintf("EMP-%d", nonce)

	registerBody := map[string]any{
		"firstname":   "Journey",
		"lastname":    "Tester",
		"email":       email,
		"phone":       phone,
		"password":    "Secret123!",
		"empID":       empID,
		"joiningDate": "2026-01-05",
		"department":  "Engineering",
		"designation": "Engineer",
	}

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/register", registerBody, http.StatusCreated)
	employeeID := stringField(t, resp.Data, "id")
	if employeeID == "" {
		t.Fatal("expected registered user id")
	}

	// Re-registering the same email must be rejected.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/register", registerBody, http.StatusConflict)

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/login", map[string]any{
		"email":    email,
		"password": "Secret123!",
	}, http.StatusOK)
	var loginPayload struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(resp.Data, &loginPayload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if loginPayload.AccessToken == "" || loginPayload.RefreshToken == "" {
		t.Fatal("expected both tokens in login response")
	}

	// The cookie jar carries the access token from here on.
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/users/current-user", nil, http.StatusOK)
	if got := stringField(t, resp.Data, "email"); got != email {
		t.Fatalf("expected current user email %s, got %s", email, got)
	}

	doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/users/update-details", map[string]any{
		"employeeId": employeeID,
		"department": "Platform",
		"city":       "Pune",
	}, http.StatusOK)

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/users/current-user", nil, http.StatusOK)
	if got := stringField(t, resp.Data, "department"); got != "Platform" {
		t.Fatalf("expected department Platform after update, got %s", got)
	}

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/apply-leave", map[string]any{
		"employeeId": employeeID,
		"leaveType":  "Casual",
		"reason":     "Rest",
		"fromDate":   "2026-02-10",
		"toDate":     "2026-02-12",
		"date":       "2026-02-01",
	}, http.StatusCreated)
	leaveID := stringField(t, resp.Data, "id")
	if leaveID == "" {
		t.Fatal("expected leave id")
	}

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/leave-action", map[string]any{
		"id":      leaveID,
		"action":  "Approve",
		"comment": "enjoy",
	}, http.StatusOK)

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/users/leavedata", nil, http.StatusOK)
	leaves := arrayPayload(t, resp.Data)
	approved := false
	for _, lv := range leaves {
		if lv["id"] == leaveID && lv["status"] == "Approved" && lv["comment"] == "enjoy" {
			approved = true
		}
	}
	if !approved {
		t.Fatal("expected leave to be approved with comment")
	}

	day := fmt.Sprintf("2026-03-%02d", nonce%28+1)
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/add-attendance", map[string]any{
		"date":    day,
		"present": []string{employeeID},
	}, http.StatusCreated)

	// Moving the user to the absent set must drop them from the present set.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/update-attendance", map[string]any{
		"date":   day,
		"id":     employeeID,
		"action": "Absent",
	}, http.StatusOK)
	var record struct {
		Present []string `json:"present"`
		Absent  []string `json:"absent"`
	}
	if err := json.Unmarshal(resp.Data, &record); err != nil {
		t.Fatalf("failed to decode attendance record: %v", err)
	}
	if len(record.Present) != 0 || len(record.Absent) != 1 {
		t.Fatalf("expected user moved to absent, got present=%v absent=%v", record.Present, record.Absent)
	}

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/update-attendance", map[string]any{
		"date":   day,
		"id":     employeeID,
		"action": "late",
	}, http.StatusBadRequest)

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/add-todo", map[string]any{
		"employeeId": employeeID,
		"todo":       "Finish onboarding",
	}, http.StatusOK)
	todoID := findTodoID(t, resp.Data, employeeID, "Finish onboarding")
	if todoID == "" {
		t.Fatal("expected todo id in collection response")
	}

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/update-todo", map[string]any{
		"employeeId": employeeID,
		"todoId":     todoID,
		"todo":       "Finish onboarding docs",
	}, http.StatusOK)

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/delete-todo", map[string]any{
		"employeeId": employeeID,
		"todoId":     "no-such-todo",
	}, http.StatusNotFound)

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/delete-todo", map[string]any{
		"employeeId": employeeID,
		"todoId":     todoID,
	}, http.StatusOK)

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/update-salary", map[string]any{
		"employeeId": employeeID,
		"basic":      50000,
		"epf":        5,
		"pt":         5,
		"it":         5,
	}, http.StatusOK)

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/users/calculate-salary/"+employeeID, nil, http.StatusOK)
	var salary struct {
		TotalDeductions float64 `json:"totalDeductions"`
		TotalEarnings   float64 `json:"totalEarnings"`
		NetSalary       float64 `json:"netSalary"`
	}
	if err := json.Unmarshal(resp.Data, &salary); err != nil {
		t.Fatalf("failed to decode salary response: %v", err)
	}
	if salary.TotalDeductions != 7500 || salary.TotalEarnings != 50000 || salary.NetSalary != 42500 {
		t.Fatalf("unexpected salary totals: %+v", salary)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/users/salary-slip/"+employeeID, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	slipResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("salary slip request failed: %v", err)
	}
	defer slipResp.Body.Close()
	if slipResp.StatusCode != http.StatusOK {
		t.Fatalf("expected salary slip 200, got %d", slipResp.StatusCode)
	}
	if ct := slipResp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", ct)
	}

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/logout-user", nil, http.StatusOK)
}

func TestRefreshTokenRotationAndRevocation(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(t, dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := &http.Client{}

	nonce := time.Now().UnixNano()
	email := fmt.Sprintf("refresh-%d@example.com", nonce)
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/register", map[string]any{
		"firstname":   "Refresh",
		"lastname":    "Tester",
		"email":       email,
		"phone":       fmt.Sprintf("8%09d", nonce%1_000_000_000),
		"password":    "Secret123!",
		"empID":       fmt.Sprintf("REF-%d", nonce),
		"joiningDate": "2026-01-05",
		"department":  "Engineering",
		"designation": "Engineer",
	}, http.StatusCreated)

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/login", map[string]any{
		"email":    email,
		"password": "Secret123!",
	}, http.StatusOK)
	var loginPayload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(resp.Data, &loginPayload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	first := loginPayload.RefreshToken

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/refresh-token", map[string]any{
		"refreshToken": first,
	}, http.StatusOK)
	var refreshed struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(resp.Data, &refreshed); err != nil {
		t.Fatalf("failed to decode refresh response: %v", err)
	}
	if refreshed.RefreshToken == "" {
		t.Fatal("expected a rotated refresh token")
	}

	// The superseded token must no longer mint a session.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/users/refresh-token", map[string]any{
		"refreshToken": first,
	}, http.StatusUnauthorized)
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, wantStatus int) envelope {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, url, wantStatus, resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if wantSuccess := wantStatus < 400; env.Success != wantSuccess {
		t.Fatalf("expected success=%v in envelope, got %v", wantSuccess, env.Success)
	}
	return env
}

func stringField(t *testing.T, data json.RawMessage, field string) string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode data payload: %v", err)
	}
	value, _ := payload[field].(string)
	return value
}

func arrayPayload(t *testing.T, data json.RawMessage) []map[string]any {
	t.Helper()
	var payload []map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode data array: %v", err)
	}
	return payload
}

// findTodoID digs the created todo out of the full-collection response.
func findTodoID(t *testing.T, data json.RawMessage, employeeID, text string) string {
	t.Helper()
	for _, u := range arrayPayload(t, data) {
		if u["id"] != employeeID {
			continue
		}
		todos, _ := u["todos"].([]any)
		for _, raw := range todos {
			todo, _ := raw.(map[string]any)
			if todo["todo"] == text {
				id, _ := todo["id"].(string)
				return id
			}
		}
	}
	return ""
}
