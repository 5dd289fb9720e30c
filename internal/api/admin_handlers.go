package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/soaringjerry/Sondage/internal/middleware"
	"github.com/soaringjerry/Sondage/internal/services"
)

type responseView struct {
	UserID      string                `json:"userId"`
	UserName    string                `json:"userName"`
	UserPhone   string                `json:"userPhone"`
	SubmittedAt time.Time             `json:"submittedAt"`
	Answers     []services.AnswerView `json:"answers"`
}

func actor(r *http.Request) string {
	if c, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return c.Name
	}
	return ""
}

func (a *App) writeSections(w http.ResponseWriter, r *http.Request, sections []services.Section, err error, action, target string) {
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.record(r.Context(), actor(r), action, target)
	writeJSON(w, http.StatusOK, sections)
}

// GET /api/admin/sections
func (a *App) handleListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.survey.Sections())
}

// POST /api/admin/sections
func (a *App) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var in services.SectionInput
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	sections, err := a.survey.AddSection(r.Context(), in)
	target := ""
	if err == nil && len(sections) > 0 {
		target = strconv.Itoa(sections[len(sections)-1].ID)
	}
	a.writeSections(w, r, sections, err, "section.add", target)
}

// PUT /api/admin/sections/{id}
func (a *App) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var sec services.Section
	if err := decodeJSON(w, r, &sec); err != nil {
		a.writeError(w, r, err)
		return
	}
	sec.ID = id
	sections, err := a.survey.UpdateSection(r.Context(), sec)
	a.writeSections(w, r, sections, err, "section.update", strconv.Itoa(id))
}

// DELETE /api/admin/sections/{id}
func (a *App) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	sections, err := a.survey.DeleteSection(r.Context(), id)
	a.writeSections(w, r, sections, err, "section.delete", strconv.Itoa(id))
}

// POST /api/admin/sections/{id}/questions
func (a *App) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var in services.QuestionInput
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	sections, err := a.survey.AddQuestion(r.Context(), id, in)
	a.writeSections(w, r, sections, err, "question.add", strconv.Itoa(id))
}

// PUT /api/admin/sections/{id}/questions/{qid}
func (a *App) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	qid, err := pathInt(r, "qid")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var q services.Question
	if err := decodeJSON(w, r, &q); err != nil {
		a.writeError(w, r, err)
		return
	}
	q.ID = qid
	sections, err := a.survey.UpdateQuestion(r.Context(), id, q)
	a.writeSections(w, r, sections, err, "question.update", strconv.Itoa(id)+"/"+strconv.Itoa(qid))
}

// DELETE /api/admin/sections/{id}/questions/{qid}
func (a *App) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	qid, err := pathInt(r, "qid")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	sections, err := a.survey.DeleteQuestion(r.Context(), id, qid)
	a.writeSections(w, r, sections, err, "question.delete", strconv.Itoa(id)+"/"+strconv.Itoa(qid))
}

// GET /api/admin/users
func (a *App) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.UniqueUsers(a.responses.Responses()))
}

// DELETE /api/admin/users/{userId}
func (a *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("userId")
	if _, err := a.responses.Delete(r.Context(), uid); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.record(r.Context(), actor(r), "response.delete", uid)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/admin/responses
func (a *App) handleResponses(w http.ResponseWriter, r *http.Request) {
	sections := a.survey.Sections()
	sorted := services.SortedBySubmission(a.responses.Responses())
	out := make([]responseView, 0, len(sorted))
	for _, resp := range sorted {
		out = append(out, responseView{
			UserID:      resp.UserID,
			UserName:    resp.UserName,
			UserPhone:   resp.UserPhone,
			SubmittedAt: resp.SubmittedAt,
			Answers:     services.DescribeResponse(sections, resp),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/admin/export
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	name, data, err := a.Export()
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv;charset=utf-8;")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GET /api/admin/audit
func (a *App) handleAudit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.audit.Entries())
}

// GET /api/admin/stats
func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.Summarize(a.survey.Sections(), a.responses.Responses(), a.loc))
}
