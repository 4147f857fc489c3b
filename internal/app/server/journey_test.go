package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"juniorjoy/internal/app/server"
	"juniorjoy/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func startApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func TestLeaveRequestJourney(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	token := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	nano := time.Now().UnixNano()
	employeeID := createEmployee(t, client, ts.URL, token, map[string]any{
		"firstName":  "June",
		"lastName":   "Hire",
		"email":      fmt.Sprintf("june-%d@example.com", nano),
		"gender":     "male",
		"hireDate":   fmt.Sprintf("%d-06-15", time.Now().Year()),
		"position":   "Engineer",
		"baseSalary": 3000,
	})

	// Mid-June hire leaves seven months of the year, so 30 annual days
	// pro-rate down to 18.
	balance := leaveBalance(t, client, ts.URL, token, employeeID, "annual")
	if balance["entitlement"] != float64(18) {
		t.Fatalf("expected pro-rated entitlement 18, got %v", balance["entitlement"])
	}

	year := time.Now().Year() + 1
	requestID := createJSON(t, client, ts.URL+"/api/v1/leave-requests", token, map[string]any{
		"employeeId":    employeeID,
		"leaveTypeCode": "annual",
		"startDate":     fmt.Sprintf("%d-02-10", year),
		"endDate":       fmt.Sprintf("%d-02-12", year),
		"reason":        "Rest",
	})

	// Inclusive range: 3 days pending, entitlement untouched.
	balance = leaveBalance(t, client, ts.URL, token, employeeID, "annual")
	if balance["pending"] != float64(3) || balance["remaining"] != float64(18) {
		t.Fatalf("expected pending 3 remaining 18, got %v", balance)
	}

	status := decideRequest(t, client, ts.URL, token, requestID, "approved", http.StatusOK)
	if status != "approved" {
		t.Fatalf("expected approved, got %s", status)
	}

	// A decided request may not be decided again.
	decideRequest(t, client, ts.URL, token, requestID, "rejected", http.StatusConflict)

	balance = leaveBalance(t, client, ts.URL, token, employeeID, "annual")
	if balance["used"] != float64(3) || balance["pending"] != float64(0) || balance["remaining"] != float64(15) {
		t.Fatalf("expected used 3 remaining 15, got %v", balance)
	}

	// Gender restriction: maternity entitlement collapses to zero for a
	// male employee.
	balance = leaveBalance(t, client, ts.URL, token, employeeID, "maternity")
	if balance["entitlement"] != float64(0) {
		t.Fatalf("expected zero maternity entitlement, got %v", balance["entitlement"])
	}
}

func TestEmployeeCannotReadOthers(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	nano := time.Now().UnixNano()
	selfID := createEmployee(t, client, ts.URL, adminToken, map[string]any{
		"firstName": "Self",
		"lastName":  "Account",
		"email":     fmt.Sprintf("self-%d@example.com", nano),
	})
	otherID := createEmployee(t, client, ts.URL, adminToken, map[string]any{
		"firstName": "Other",
		"lastName":  "Account",
		"email":     fmt.Sprintf("other-%d@example.com", nano),
	})

	email := fmt.Sprintf("selfuser-%d@example.com", nano)
	createJSON(t, client, ts.URL+"/api/v1/users", adminToken, map[string]any{
		"email":      email,
		"password":   "Password123!",
		"role":       "employee",
		"employeeId": selfID,
	})

	token := login(t, client, ts.URL, email, "Password123!")

	doRequest(t, client, http.MethodGet, ts.URL+"/api/v1/employees/"+selfID, token, nil, http.StatusOK)
	doRequest(t, client, http.MethodGet, ts.URL+"/api/v1/employees/"+otherID, token, nil, http.StatusForbidden)
	doRequest(t, client, http.MethodGet, ts.URL+"/api/v1/employees/"+otherID+"/leave-balance", token, nil, http.StatusForbidden)
	doRequest(t, client, http.MethodGet, ts.URL+"/api/v1/reports/headcount", token, nil, http.StatusForbidden)
}

func TestPayrollBreakdownJourney(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	token := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	employeeID := createEmployee(t, client, ts.URL, token, map[string]any{
		"firstName":  "Paid",
		"lastName":   "Person",
		"email":      fmt.Sprintf("paid-%d@example.com", time.Now().UnixNano()),
		"baseSalary": 3000,
	})

	body := doRequest(t, client, http.MethodGet, ts.URL+"/api/v1/employees/"+employeeID+"/payroll", token, nil, http.StatusOK)
	var payload struct {
		Breakdown struct {
			Gross string `json:"gross"`
			Net   string `json:"net"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(body.Data, &payload); err != nil {
		t.Fatalf("decode breakdown: %v", err)
	}
	// Seeded components: +10% housing, +150 transport, -7.5% tax, -5%
	// pension on a 3000 base.
	if payload.Breakdown.Gross != "3450" || payload.Breakdown.Net != "3075" {
		t.Fatalf("unexpected breakdown: %+v", payload.Breakdown)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	body := doRequest(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body.Data, &payload); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected token")
	}
	return payload.Token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token string, payload map[string]any) string {
	t.Helper()
	return createJSON(t, client, baseURL+"/api/v1/employees", token, payload)
}

// createJSON posts the payload and returns the created id.
func createJSON(t *testing.T, client *http.Client, url, token string, payload map[string]any) string {
	t.Helper()
	body := doRequest(t, client, http.MethodPost, url, token, payload, http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body.Data, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id in response: %s", body.Data)
	}
	return created.ID
}

func leaveBalance(t *testing.T, client *http.Client, baseURL, token, employeeID, leaveType string) map[string]any {
	t.Helper()
	body := doRequest(t, client, http.MethodGet, baseURL+"/api/v1/employees/"+employeeID+"/leave-balance?type="+leaveType, token, nil, http.StatusOK)

	var balance map[string]any
	if err := json.Unmarshal(body.Data, &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	return balance
}

func decideRequest(t *testing.T, client *http.Client, baseURL, token, requestID, status string, wantCode int) string {
	t.Helper()
	body := doRequest(t, client, http.MethodPatch, baseURL+"/api/v1/leave-requests/"+requestID, token, map[string]any{
		"status": status,
	}, wantCode)
	if wantCode != http.StatusOK {
		return ""
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body.Data, &payload); err != nil {
		t.Fatalf("decode decide response: %v", err)
	}
	return payload.Status
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, payload map[string]any, wantCode int) envelope {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantCode {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, url, wantCode, resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}
