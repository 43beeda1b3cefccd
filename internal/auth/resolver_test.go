package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func issueFor(t *testing.T, tm *TokenManager, userID string) string {
	t.Helper()
	token, _, err := tm.Issue(userID, domain.RoleStandard)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func TestResolver_Resolve(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	resolver := NewResolver(tm)
	headerToken := issueFor(t, tm, "header-user")
	cookieToken := issueFor(t, tm, "cookie-user")

	tests := []struct {
		name          string
		authorization string
		cookie        string
		wantUser      string
		wantErr       error
	}{
		{name: "bearer header", authorization: "Bearer " + headerToken, wantUser: "header-user"},
		{name: "lowercase scheme", authorization: "bearer " + headerToken, wantUser: "header-user"},
		{name: "cookie only", cookie: cookieToken, wantUser: "cookie-user"},
		{name: "header wins over cookie", authorization: "Bearer " + headerToken, cookie: cookieToken, wantUser: "header-user"},
		{name: "non bearer header falls back to cookie", authorization: "Basic abc", cookie: cookieToken, wantUser: "cookie-user"},
		{name: "empty bearer falls back to cookie", authorization: "Bearer ", cookie: cookieToken, wantUser: "cookie-user"},
		{name: "nothing", wantErr: ErrMissingCredential},
		{name: "non bearer header without cookie", authorization: "Basic abc", wantErr: ErrMissingCredential},
		{name: "tampered header", authorization: "Bearer " + headerToken + "x", wantErr: ErrInvalidCredential},
		{name: "tampered header does not fall back", authorization: "Bearer garbage", cookie: cookieToken, wantErr: ErrInvalidCredential},
		{name: "tampered cookie", cookie: "garbage", wantErr: ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester, err := resolver.Resolve(tt.authorization, tt.cookie)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if requester.UserID != tt.wantUser {
				t.Errorf("expected %q, got %q", tt.wantUser, requester.UserID)
			}
		})
	}
}
