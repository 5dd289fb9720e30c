package services

import (
	"context"
	"slices"
	"sync"

	"github.com/soaringjerry/Sondage/internal/utils"
)

// ResponseSubmitter receives the finished answer set.
type ResponseSubmitter interface {
	Submit(ctx context.Context, in ResponseInput) ([]UserResponse, error)
}

// SurveySession is one respondent's pass through the survey: the section being
// shown and the answers given so far. It is never persisted; once submitted it
// only accepts reads.
type SurveySession struct {
	mu           sync.Mutex
	sectionIndex int
	answers      []Answer
	submitted    bool
}

func NewSurveySession() *SurveySession {
	return &SurveySession{answers: []Answer{}}
}

// Progress describes the position within the survey for display.
type Progress struct {
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	IsFirst bool    `json:"isFirst"`
	IsLast  bool    `json:"isLast"`
	Percent float64 `json:"percent"`
}

func (s *SurveySession) SectionIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sectionIndex
}

func (s *SurveySession) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func (s *SurveySession) Answers() []Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAnswers(s.answers)
}

// AnswersFor returns the answers recorded for one section.
func (s *SurveySession) AnswersFor(sectionID int) []Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Answer{}
	for _, a := range s.answers {
		if a.SectionID == sectionID {
			out = append(out, a.clone())
		}
	}
	return out
}

// Clamp pulls the index back into range after sections were removed.
func (s *SurveySession) Clamp(sectionCount int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clampLocked(sectionCount)
	return s.sectionIndex
}

func (s *SurveySession) clampLocked(sectionCount int) {
	if s.sectionIndex > sectionCount-1 {
		s.sectionIndex = sectionCount - 1
	}
	if s.sectionIndex < 0 {
		s.sectionIndex = 0
	}
}

func (s *SurveySession) GoNext(sectionCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return errSubmitted()
	}
	s.sectionIndex++
	s.clampLocked(sectionCount)
	return nil
}

func (s *SurveySession) GoPrevious() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return errSubmitted()
	}
	if s.sectionIndex > 0 {
		s.sectionIndex--
	}
	return nil
}

func (s *SurveySession) Progress(sectionCount int) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clampLocked(sectionCount)
	p := Progress{
		Index:   s.sectionIndex,
		Total:   sectionCount,
		IsFirst: s.sectionIndex == 0,
		IsLast:  s.sectionIndex == sectionCount-1,
	}
	if sectionCount > 0 {
		p.Percent = float64(s.sectionIndex+1) / float64(sectionCount) * 100
	}
	return p
}

// RecordAnswer replaces the answer to q within sectionID with values. Every
// value must be one of q's options, or "other" when q allows it, and a
// single-select question takes at most one value.
func (s *SurveySession) RecordAnswer(q Question, sectionID int, values []string, otherValue string) error {
	if !q.AllowMultiple && len(values) > 1 {
		return NewInvalidError(utils.T("survey.single_choice"))
	}
	for _, v := range values {
		if !acceptsOption(q, v) {
			return NewInvalidError(utils.T("survey.unknown_option"))
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return errSubmitted()
	}
	s.upsertLocked(Answer{
		QuestionID: q.ID,
		SectionID:  sectionID,
		Value:      append([]string{}, values...),
		OtherValue: otherValue,
	})
	return nil
}

// SelectOption applies a click on option: single-select questions replace the
// selection, multi-select questions toggle the option.
func (s *SurveySession) SelectOption(q Question, sectionID int, option string) error {
	if !acceptsOption(q, option) {
		return NewInvalidError(utils.T("survey.unknown_option"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return errSubmitted()
	}
	cur, _ := s.findLocked(q.ID, sectionID)
	var selected []string
	if q.AllowMultiple {
		if slices.Contains(cur.Value, option) {
			selected = without(cur.Value, option)
		} else {
			selected = append(append([]string{}, cur.Value...), option)
		}
	} else {
		selected = []string{option}
	}
	s.upsertLocked(Answer{QuestionID: q.ID, SectionID: sectionID, Value: selected, OtherValue: cur.OtherValue})
	return nil
}

// SetOtherValue stores the free text and selects "other" if it is not selected yet.
func (s *SurveySession) SetOtherValue(q Question, sectionID int, text string) error {
	if !q.HasOther {
		return NewInvalidError(utils.T("survey.unknown_option"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return errSubmitted()
	}
	cur, _ := s.findLocked(q.ID, sectionID)
	selected := append([]string{}, cur.Value...)
	if !slices.Contains(selected, OtherOption) {
		if q.AllowMultiple {
			selected = append(selected, OtherOption)
		} else {
			selected = []string{OtherOption}
		}
	}
	s.upsertLocked(Answer{QuestionID: q.ID, SectionID: sectionID, Value: selected, OtherValue: text})
	return nil
}

// Submit hands every recorded answer to r on behalf of who. The session is
// terminal afterwards.
func (s *SurveySession) Submit(ctx context.Context, r ResponseSubmitter, who Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return errSubmitted()
	}
	if _, err := r.Submit(ctx, ResponseInput{
		UserID:    who.ID,
		UserName:  who.Name,
		UserPhone: who.Phone,
		Answers:   cloneAnswers(s.answers),
	}); err != nil {
		return err
	}
	s.submitted = true
	return nil
}

func (s *SurveySession) findLocked(questionID, sectionID int) (Answer, int) {
	for i, a := range s.answers {
		if a.QuestionID == questionID && a.SectionID == sectionID {
			return a.clone(), i
		}
	}
	return Answer{QuestionID: questionID, SectionID: sectionID, Value: []string{}}, -1
}

func (s *SurveySession) upsertLocked(a Answer) {
	if _, i := s.findLocked(a.QuestionID, a.SectionID); i >= 0 {
		s.answers[i] = a
		return
	}
	s.answers = append(s.answers, a)
}

func errSubmitted() error { return NewConflictError(utils.T("survey.submitted")) }

func acceptsOption(q Question, option string) bool {
	if option == OtherOption {
		return q.HasOther
	}
	return slices.Contains(q.Options, option)
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
