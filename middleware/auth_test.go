package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhwiwwx/tracker-api/utils"
)

func TestCheckAuth_PassesClaimsThrough(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT("u1", "dev@example.com", "Dev One")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	var gotUserID string
	handler := CheckAuth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUserID != "u1" {
		t.Errorf("user id = %q, want u1", gotUserID)
	}
}

func TestCheckAuth_RejectsMissingOrBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	handler := CheckAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a valid token")
	})

	testCases := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "Bearer not-a-token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tc.token != "" {
				r.Header.Set("Authorization", tc.token)
			}
			w := httptest.NewRecorder()
			handler(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}
