package api

import (
	"net/http"

	"github.com/soaringjerry/Sondage/internal/middleware"
	"github.com/soaringjerry/Sondage/internal/services"
	"github.com/soaringjerry/Sondage/internal/utils"
)

type surveyView struct {
	Section   *services.Section `json:"section"`
	Progress  services.Progress `json:"progress"`
	Answers   []services.Answer `json:"answers"`
	Submitted bool              `json:"submitted"`
}

type answerRequest struct {
	SectionID  int      `json:"sectionId"`
	QuestionID int      `json:"questionId"`
	Option     string   `json:"option,omitempty"`
	OtherValue *string  `json:"otherValue,omitempty"`
	Value      []string `json:"value,omitempty"`
}

func (a *App) session(r *http.Request) *services.SurveySession {
	c, _ := middleware.ClaimsFromContext(r.Context())
	return a.sessions.get(c.UID)
}

func (a *App) view(s *services.SurveySession) surveyView {
	sections := a.survey.Sections()
	p := s.Progress(len(sections))
	v := surveyView{Progress: p, Answers: []services.Answer{}, Submitted: s.Submitted()}
	if len(sections) > 0 {
		sec := sections[p.Index]
		v.Section = &sec
		v.Answers = s.AnswersFor(sec.ID)
	}
	return v
}

// GET /api/survey
func (a *App) handleSurvey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.view(a.session(r)))
}

// POST /api/survey/answers
//
// A value list is stored as given; otherwise option applies a click and
// otherValue sets the free text.
func (a *App) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	q, ok := a.question(req.SectionID, req.QuestionID)
	if !ok {
		a.writeError(w, r, services.NewNotFoundError(utils.T("question.unknown")))
		return
	}
	s := a.session(r)
	var err error
	switch {
	case req.Value != nil:
		other := ""
		if req.OtherValue != nil {
			other = *req.OtherValue
		}
		err = s.RecordAnswer(q, req.SectionID, req.Value, other)
	case req.Option != "":
		err = s.SelectOption(q, req.SectionID, req.Option)
	case req.OtherValue != nil:
		err = s.SetOtherValue(q, req.SectionID, *req.OtherValue)
	default:
		err = services.NewInvalidError(utils.T("survey.unknown_option"))
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.AnswersFor(req.SectionID))
}

func (a *App) question(sectionID, questionID int) (services.Question, bool) {
	sec, ok := a.survey.Section(sectionID)
	if !ok {
		return services.Question{}, false
	}
	for _, q := range sec.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return services.Question{}, false
}

// POST /api/survey/next
func (a *App) handleNext(w http.ResponseWriter, r *http.Request) {
	s := a.session(r)
	if err := s.GoNext(len(a.survey.Sections())); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.view(s))
}

// POST /api/survey/previous
func (a *App) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s := a.session(r)
	if err := s.GoPrevious(); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.view(s))
}

// POST /api/survey/submit
func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	cur := a.gate.Current()
	if cur == nil {
		a.writeError(w, r, services.NewUnauthorizedError(utils.T("auth.required")))
		return
	}
	s := a.session(r)
	if err := s.Submit(r.Context(), a.responses, *cur); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.record(r.Context(), cur.Name, "response.submit", cur.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"submitted": true})
}
