package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "contactgate/pkg/domain-errors"
	"contactgate/pkg/platform/middleware/auth"
	"contactgate/pkg/requestcontext"
)

type staticValidator struct {
	actorID string
	err     error
}

func (v staticValidator) ValidateToken(string) (string, error) {
	return v.actorID, v.err
}

func TestRequireAuth(t *testing.T) {
	var gotActor string
	handler := auth.RequireAuth(staticValidator{actorID: "agent-42"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotActor = requestcontext.ActorID(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "agent-42", gotActor)
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		validator auth.Validator
	}{
		{"no header", "", staticValidator{}},
		{"not bearer", "Basic dXNlcg==", staticValidator{}},
		{"invalid token", "Bearer bad", staticValidator{err: dErrors.New(dErrors.CodeUnauthorized, "invalid token")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := auth.RequireAuth(tt.validator)(
				http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}
