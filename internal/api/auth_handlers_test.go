package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soaringjerry/Sondage/internal/kv"
	"github.com/soaringjerry/Sondage/internal/services"
)

func TestLoginValidation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"name": "", "phone": "0612345678"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Veuillez remplir tous les champs", errorMessage(t, rec))

	rec = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"name": "Jeanne", "phone": "12345"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Numéro de téléphone invalide", errorMessage(t, rec))

	assert.Nil(t, s.app.gate.Current())
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.login(t, "/api/login", "Jeanne", "06 12 34 56 78")

	rec := s.do(t, http.MethodGet, "/api/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[services.Identity](t, rec)
	assert.Equal(t, "Jeanne", me.Name)
	assert.False(t, me.IsAdmin)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", "", nil).Code)
}

func TestAdminLoginRefused(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"name": "Mallory", "phone": "0600000001"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Identifiants administrateur incorrects", errorMessage(t, rec))

	_, err := s.store.Get(context.Background(), kv.KeyIdentity)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestAdminLoginCaseInsensitiveName(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.login(t, "/api/admin/login", "ADMIN UN", "0600000001")
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/sections", tok, nil).Code)
	assert.Len(t, s.app.audit.Entries(), 1)
}

func TestNewLoginRevokesPreviousToken(t *testing.T) {
	s := newTestServer(t, nil)
	first := s.login(t, "/api/login", "Jeanne", "0612345678")
	second := s.login(t, "/api/login", "Paul", "0712345678")

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", first, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/me", second, nil).Code)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.login(t, "/api/login", "Jeanne", "0612345678")
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/logout", tok, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", tok, nil).Code)
	assert.Nil(t, s.app.gate.Current())
}

func TestRespondentCannotReachAdminRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.login(t, "/api/login", "Jeanne", "0612345678")
	rec := s.do(t, http.MethodGet, "/api/admin/users", tok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Accès réservé aux administrateurs", errorMessage(t, rec))
}

func TestInvalidJSONBody(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/login", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
