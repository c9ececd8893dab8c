package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{name: "match", secret: "cron-secret", header: "Bearer cron-secret", want: http.StatusOK},
		{name: "mismatch", secret: "cron-secret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "missing", secret: "cron-secret", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", secret: "cron-secret", header: "Basic cron-secret", want: http.StatusUnauthorized},
		{name: "disabled", secret: "", header: "", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := RequireBearer(tt.secret)(okHandler())
			req := httptest.NewRequest(http.MethodPost, "/cron/daily-digest", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireAdminSecret(t *testing.T) {
	t.Parallel()

	handler := RequireAdminSecret("admin-secret")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/pin-instructions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin/pin-instructions", nil)
	req.Header.Set(AdminSecretHeader, "admin-secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
