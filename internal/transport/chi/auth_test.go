package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(keys []string, method, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	BearerAuthMiddleware(keys)(okHandler()).ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		method string
		path   string
		header string
		want   int
	}{
		{"no keys pass through", nil, http.MethodPost, "/v1/analyses", "", http.StatusOK},
		{"blank keys pass through", []string{"", ""}, http.MethodPost, "/v1/analyses", "", http.StatusOK},
		{"missing header", []string{"secret"}, http.MethodPost, "/v1/analyses", "", http.StatusUnauthorized},
		{"wrong scheme", []string{"secret"}, http.MethodPost, "/v1/analyses", "Basic secret", http.StatusUnauthorized},
		{"wrong key", []string{"secret"}, http.MethodPost, "/v1/analyses", "Bearer nope", http.StatusUnauthorized},
		{"valid key", []string{"a", "secret"}, http.MethodPost, "/v1/analyses", "Bearer secret", http.StatusOK},
		{"health exempt", []string{"secret"}, http.MethodGet, "/health", "", http.StatusOK},
		{"metrics exempt", []string{"secret"}, http.MethodGet, "/metrics", "", http.StatusOK},
		{"preflight exempt", []string{"secret"}, http.MethodOptions, "/analyze-resume", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serveAuth(tt.keys, tt.method, tt.path, tt.header)
			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != CodeUnauthorized || errResp.Error == "" {
				t.Errorf("unexpected error body: %+v", errResp)
			}
		})
	}
}
