package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthenticatedUserExposesClaims(t *testing.T) {
	app := newTestApplication()
	u := &user{ID: 42, Username: "alice"}
	token, err := issueToken(u, app.config.jwt)
	require.NoError(t, err)

	var seen *tokenClaims
	handler := app.requireAuthenticatedUser(func(w http.ResponseWriter, r *http.Request) {
		seen = claimsFromRequest(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Name)
	id, err := seen.userID()
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Contains(t, w.Header().Values("Vary"), "Authorization")
}

func TestRequireAuthenticatedUserRejects(t *testing.T) {
	app := newTestApplication()
	handler := app.requireAuthenticatedUser(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("guarded handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"bare scheme", "Bearer"},
		{"not a token", "Bearer garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestEnableCORS(t *testing.T) {
	app := newTestApplication()
	app.config.cors.trustedOrigins = []string{"https://todo.example.com"}
	handler := app.enableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	r.Header.Set("Origin", "https://todo.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, "https://todo.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/items", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnableCORSPreflight(t *testing.T) {
	app := newTestApplication()
	handler := app.enableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	r := httptest.NewRequest(http.MethodOptions, "/items", nil)
	r.Header.Set("Origin", "https://todo.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
