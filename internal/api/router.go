package api

import (
	"net/http"

	"github.com/soaringjerry/Sondage/internal/middleware"
)

// Register mounts the API on mux. Handler must wrap mux so that bearer tokens
// are parsed before the auth gates run.
func (a *App) Register(mux *http.ServeMux) {
	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(a.active, h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(a.active, h) }

	mux.HandleFunc("POST /api/login", a.handleLogin)
	mux.HandleFunc("POST /api/admin/login", a.handleAdminLogin)
	mux.Handle("POST /api/logout", auth(a.handleLogout))
	mux.Handle("GET /api/me", auth(a.handleMe))

	mux.Handle("GET /api/survey", auth(a.handleSurvey))
	mux.Handle("POST /api/survey/answers", auth(a.handleAnswer))
	mux.Handle("POST /api/survey/next", auth(a.handleNext))
	mux.Handle("POST /api/survey/previous", auth(a.handlePrevious))
	mux.Handle("POST /api/survey/submit", auth(a.handleSubmit))

	mux.Handle("GET /api/admin/sections", admin(a.handleListSections))
	mux.Handle("POST /api/admin/sections", admin(a.handleAddSection))
	mux.Handle("PUT /api/admin/sections/{id}", admin(a.handleUpdateSection))
	mux.Handle("DELETE /api/admin/sections/{id}", admin(a.handleDeleteSection))
	mux.Handle("POST /api/admin/sections/{id}/questions", admin(a.handleAddQuestion))
	mux.Handle("PUT /api/admin/sections/{id}/questions/{qid}", admin(a.handleUpdateQuestion))
	mux.Handle("DELETE /api/admin/sections/{id}/questions/{qid}", admin(a.handleDeleteQuestion))
	mux.Handle("GET /api/admin/users", admin(a.handleUsers))
	mux.Handle("DELETE /api/admin/users/{userId}", admin(a.handleDeleteUser))
	mux.Handle("GET /api/admin/responses", admin(a.handleResponses))
	mux.Handle("GET /api/admin/export", admin(a.handleExport))
	mux.Handle("GET /api/admin/stats", admin(a.handleStats))
	mux.Handle("GET /api/admin/audit", admin(a.handleAudit))
}

// Handler wraps h with bearer token parsing.
func (a *App) Handler(h http.Handler) http.Handler {
	return a.tokens.WithAuth(h)
}
