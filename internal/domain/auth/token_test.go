package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", EmployeeID: "e1", Role: RoleHR}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if parsed.UserID != claims.UserID || parsed.EmployeeID != claims.EmployeeID || parsed.Role != claims.Role {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1", Role: RoleEmployee}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", Role: RoleEmployee}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestUserContextAccess(t *testing.T) {
	admin := UserContext{UserID: "u1", Role: RoleAdmin}
	if !admin.CanAdminister() || !admin.CanAccessEmployee("anyone") {
		t.Fatal("admin should access everything")
	}

	hr := UserContext{UserID: "u2", Role: RoleHR}
	if !hr.CanAdminister() {
		t.Fatal("hr should administer")
	}

	employee := UserContext{UserID: "u3", EmployeeID: "e3", Role: RoleEmployee}
	if employee.CanAdminister() {
		t.Fatal("employee should not administer")
	}
	if !employee.CanAccessEmployee("e3") {
		t.Fatal("employee should access own record")
	}
	if employee.CanAccessEmployee("e4") {
		t.Fatal("employee should not access other records")
	}

	unlinked := UserContext{UserID: "u4", Role: RoleEmployee}
	if unlinked.CanAccessEmployee("") {
		t.Fatal("unlinked account should not match empty employee id")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleHR, RoleEmployee} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Fatal("unexpected role accepted")
	}
}
