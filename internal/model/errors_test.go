package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON_ProblemContentType(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewNotFoundError("place").WriteJSON(rec)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected application/problem+json, got %s", ct)
	}

	var p ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if p.Code != ErrCodeNotFound {
		t.Errorf("expected code %d, got %d", ErrCodeNotFound, p.Code)
	}
}

func TestSovereigntyError_Shape(t *testing.T) {
	t.Parallel()

	p := NewSovereigntyError()
	if p.Status != http.StatusForbidden {
		t.Errorf("expected 403, got %d", p.Status)
	}
	if p.Code != ErrCodeSovereigntyBlock {
		t.Errorf("expected code %d, got %d", ErrCodeSovereigntyBlock, p.Code)
	}
}

func TestInsufficientRoleError_CarriesRoles(t *testing.T) {
	t.Parallel()

	p := NewInsufficientRoleError(RoleEditor, RoleElder)
	if p.RequiredRole != "editor" || p.CurrentRole != "elder" {
		t.Errorf("expected editor/elder, got %s/%s", p.RequiredRole, p.CurrentRole)
	}
	if p.Status != http.StatusForbidden {
		t.Errorf("expected 403, got %d", p.Status)
	}
}

func TestInsufficientPermissionsError_CarriesRequiredSet(t *testing.T) {
	t.Parallel()

	p := NewInsufficientPermissionsError([]string{"stories:write", "stories:delete"}, RoleViewer)
	if len(p.Required) != 2 {
		t.Errorf("expected 2 required permissions, got %v", p.Required)
	}
}

func TestValidationError_DetailSummarizesFields(t *testing.T) {
	t.Parallel()

	p := NewValidationError([]FieldError{
		{Field: "name", Message: "required"},
		{Field: "latitude", Message: "out of range"},
	})
	if p.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", p.Status)
	}
	if len(p.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(p.Errors))
	}
}

func TestInvalidCoordinatesError_DefaultDetail(t *testing.T) {
	t.Parallel()

	p := NewInvalidCoordinatesError("")
	if p.Detail == "" {
		t.Error("expected a default detail message")
	}
	if p.Code != ErrCodeInvalidCoordinates {
		t.Errorf("expected code %d, got %d", ErrCodeInvalidCoordinates, p.Code)
	}
}

func TestProblemDetails_ErrorString(t *testing.T) {
	t.Parallel()

	p := NewBadRequestError("bad input")
	if p.Error() == "" {
		t.Error("expected non-empty error string")
	}
}

// ============================================================================
// Role Tests
// ============================================================================

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	for _, r := range []Role{RoleViewer, RoleElder, RoleEditor, RoleAdmin, RoleSuperAdmin} {
		if !r.IsValid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("overlord").IsValid() {
		t.Error("unknown role should be invalid")
	}
}

func TestRole_IsCommunityRole(t *testing.T) {
	t.Parallel()

	for _, r := range []Role{RoleViewer, RoleElder, RoleEditor, RoleAdmin} {
		if !r.IsCommunityRole() {
			t.Errorf("expected %s to be a community role", r)
		}
	}
	if RoleSuperAdmin.IsCommunityRole() {
		t.Error("super_admin must never be a community role")
	}
}
