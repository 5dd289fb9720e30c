package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soaringjerry/Sondage/internal/kv"
	"github.com/soaringjerry/Sondage/internal/middleware"
	"github.com/soaringjerry/Sondage/internal/services"
)

type testServer struct {
	app     *App
	store   *kv.MemoryStore
	handler http.Handler
}

func newTestServer(t *testing.T, seed []services.Section) *testServer {
	t.Helper()
	store := kv.NewMemoryStore()
	app, err := NewApp(context.Background(), Deps{
		Store:  store,
		Seed:   seed,
		Tokens: middleware.NewTokens([]byte("test-secret"), time.Hour),
	})
	require.NoError(t, err)
	mux := http.NewServeMux()
	app.Register(mux)
	return &testServer{app: app, store: store, handler: app.Handler(mux)}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, path, name, phone string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, path, "", map[string]string{"name": name, "phone": phone})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func twoSectionSeed() []services.Section {
	return []services.Section{
		{ID: 1, Title: "Profil", Questions: []services.Question{
			{ID: 1, Text: "Profession", Options: []string{"Médecin", "Pharmacien"}, HasOther: true},
		}},
		{ID: 2, Title: "Priorités", Questions: []services.Question{
			{ID: 1, Text: "Priorité", Options: []string{"Retraite", "Santé"}, AllowMultiple: true, HasOther: true},
		}},
	}
}
