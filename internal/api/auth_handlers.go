package api

import (
	"net/http"

	"github.com/soaringjerry/Sondage/internal/middleware"
	"github.com/soaringjerry/Sondage/internal/services"
	"github.com/soaringjerry/Sondage/internal/utils"
)

type loginRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type loginResponse struct {
	Token    string            `json:"token"`
	Identity services.Identity `json:"identity"`
}

// POST /api/login
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := services.ValidateCredentials(req.Name, req.Phone); err != nil {
		a.writeError(w, r, err)
		return
	}
	id, err := a.gate.Login(r.Context(), req.Name, req.Phone)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.issue(w, r, id)
}

// POST /api/admin/login
func (a *App) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := services.ValidateCredentials(req.Name, req.Phone); err != nil {
		a.writeError(w, r, err)
		return
	}
	id, err := a.gate.AdminLogin(r.Context(), req.Name, req.Phone)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if id == nil {
		a.writeError(w, r, services.NewUnauthorizedError(utils.T("login.admin_refused")))
		return
	}
	a.record(r.Context(), id.Name, "admin.login", id.ID)
	a.issue(w, r, id)
}

func (a *App) issue(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	a.sessions.reset()
	tok, err := a.tokens.Sign(id.ID, id.Name, id.IsAdmin)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: tok, Identity: *id})
}

// POST /api/logout
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	c, _ := middleware.ClaimsFromContext(r.Context())
	if err := a.gate.Logout(r.Context()); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.sessions.drop(c.UID)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/me
func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	cur := a.gate.Current()
	if cur == nil {
		a.writeError(w, r, services.NewUnauthorizedError(utils.T("auth.required")))
		return
	}
	writeJSON(w, http.StatusOK, cur)
}
