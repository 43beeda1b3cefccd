package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/repository"
)

func TestToDomainError_PassesThroughWrappedDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("update post: %w", NewForbidden("you can modify only your own post"))

	de := ToDomainError(wrapped)
	if de.HTTPStatus != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", de.HTTPStatus)
	}
	if de.Code != CodeForbidden {
		t.Errorf("expected code %s, got %s", CodeForbidden, de.Code)
	}
}

func TestToDomainError_UnknownErrorBecomesInternal(t *testing.T) {
	de := ToDomainError(errors.New("connection reset"))
	if de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", de.HTTPStatus)
	}
	if de.Details["details"] != "connection reset" {
		t.Errorf("expected underlying detail to be kept, got %v", de.Details)
	}
}

func TestToDomainError_FiberError(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
	if de.Code != CodeNotFound || de.HTTPStatus != http.StatusNotFound {
		t.Errorf("unexpected mapping: %+v", de)
	}
}

func TestTaxonomyStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest, CodeValidationFailed},
		{"missing credential", NewMissingCredential(), http.StatusUnauthorized, CodeMissingCredential},
		{"invalid credential", NewInvalidCredential(), http.StatusForbidden, CodeInvalidCredential},
		{"forbidden", NewForbidden("no"), http.StatusForbidden, CodeForbidden},
		{"not found", NewNotFound("post", nil), http.StatusNotFound, CodeNotFound},
		{"unique", NewUniqueViolation("email", "Email already exists!"), http.StatusBadRequest, CodeUniqueViolation},
		{"internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			if de.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, de.HTTPStatus)
			}
			if de.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, de.Code)
			}
		})
	}
}

func TestNewUniqueViolation_CarriesField(t *testing.T) {
	de := ToDomainError(NewUniqueViolation("username", "Username already exists!"))
	if de.Details["field"] != "username" {
		t.Errorf("expected field detail, got %v", de.Details)
	}
	if de.Message != "Username already exists!" {
		t.Errorf("unexpected message %q", de.Message)
	}
}

func TestToDomainError_RepositoryErrors(t *testing.T) {
	de := ToDomainError(fmt.Errorf("get post: %w", repository.ErrNotFound))
	if de.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404 for ErrNotFound, got %d", de.HTTPStatus)
	}

	de = ToDomainError(&repository.UniqueViolation{Constraint: repository.ConstraintStoresName})
	if de.HTTPStatus != http.StatusBadRequest || de.Code != CodeUniqueViolation {
		t.Errorf("unexpected unique mapping: %+v", de)
	}
	if de.Details["field"] != repository.ConstraintStoresName {
		t.Errorf("expected constraint in details, got %v", de.Details)
	}
}

func TestToDomainError_ForeignKeyViolationIsValidation(t *testing.T) {
	de := ToDomainError(fmt.Errorf("create post: %w", &repository.ForeignKeyViolation{Constraint: repository.ConstraintPostsCommunity}))
	if de.HTTPStatus != http.StatusBadRequest || de.Code != CodeValidationFailed {
		t.Fatalf("expected 400 validation error, got %+v", de)
	}
	if de.Details["constraint"] != repository.ConstraintPostsCommunity {
		t.Errorf("expected constraint in details, got %v", de.Details)
	}
}
