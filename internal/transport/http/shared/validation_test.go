package shared

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	v.Required("lastName", "", "last name is required")
	v.Required("firstName", "", "first name is required")
	v.Required("email", "someone@example.com", "email is required")

	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Field != "firstName" || issues[1].Field != "lastName" {
		t.Fatalf("expected issues sorted by field, got %+v", issues)
	}
}

func TestValidatorEnumIgnoresEmpty(t *testing.T) {
	v := NewValidator()
	v.Enum("gender", "", []string{"male", "female"}, "invalid gender")
	v.Enum("gender", "Female", []string{"male", "female"}, "invalid gender")
	if v.HasIssues() {
		t.Fatalf("expected no issues, got %+v", v.Issues())
	}

	v.Enum("gender", "other", []string{"male", "female"}, "invalid gender")
	if !v.HasIssues() {
		t.Fatal("expected enum violation")
	}
}

func TestValidatorDateAndOrder(t *testing.T) {
	v := NewValidator()
	start, ok := v.Date("startDate", "2026-06-01")
	if !ok || !start.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parse result: %v ok=%v", start, ok)
	}

	end, ok := v.Date("endDate", "2026-05-30")
	if !ok {
		t.Fatal("expected end date to parse")
	}
	v.DateOrder("startDate", start, "endDate", end)
	if !v.HasIssues() {
		t.Fatal("expected reversed range to be flagged")
	}

	if _, ok := v.Date("hireDate", "not-a-date"); ok {
		t.Fatal("expected invalid date to fail")
	}
}

func TestValidatorRejectWritesEnvelope(t *testing.T) {
	v := NewValidator()

	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("clean validator must not reject")
	}

	v.Add("reason", "must not be blank")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Error.Code != "validation_error" || body.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if len(body.Error.Details.Fields) != 1 || body.Error.Details.Fields[0].Field != "reason" {
		t.Fatalf("unexpected details: %+v", body.Error.Details.Fields)
	}
}
