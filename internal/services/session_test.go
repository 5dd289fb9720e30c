package services

import (
	"context"
	"errors"
	"testing"
)

type recordingSubmitter struct {
	got []ResponseInput
	err error
}

func (r *recordingSubmitter) Submit(_ context.Context, in ResponseInput) ([]UserResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.got = append(r.got, in)
	return nil, nil
}

var (
	singleQ = Question{ID: 1, Text: "Profession", Options: []string{"Médecin", "Pharmacien"}, HasOther: true}
	multiQ  = Question{ID: 2, Text: "Priorités", Options: []string{"Retraite", "Santé"}, AllowMultiple: true, HasOther: true}
	yesNoQ  = Question{ID: 1, Text: "Satisfait", Options: []string{"Oui", "Non"}}
)

func TestNavigationStaysInRange(t *testing.T) {
	s := NewSurveySession()
	if err := s.GoPrevious(); err != nil || s.SectionIndex() != 0 {
		t.Fatalf("GoPrevious at start = %d, %v", s.SectionIndex(), err)
	}
	for i := 0; i < 5; i++ {
		if err := s.GoNext(3); err != nil {
			t.Fatalf("GoNext: %v", err)
		}
	}
	if s.SectionIndex() != 2 {
		t.Fatalf("index = %d, want 2", s.SectionIndex())
	}
	p := s.Progress(3)
	if !p.IsLast || p.IsFirst || p.Percent != 100 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if got := s.Clamp(1); got != 0 {
		t.Fatalf("Clamp(1) = %d", got)
	}
}

func TestProgressWithoutSections(t *testing.T) {
	p := NewSurveySession().Progress(0)
	if p.Index != 0 || p.Total != 0 || p.Percent != 0 {
		t.Fatalf("unexpected empty progress %+v", p)
	}
}

func TestSelectOptionSingleReplaces(t *testing.T) {
	s := NewSurveySession()
	s.SelectOption(singleQ, 1, "Médecin")
	if err := s.SelectOption(singleQ, 1, "Pharmacien"); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	got := s.AnswersFor(1)
	if len(got) != 1 || len(got[0].Value) != 1 || got[0].Value[0] != "Pharmacien" {
		t.Fatalf("unexpected answers %+v", got)
	}
}

func TestSelectOptionMultiToggles(t *testing.T) {
	s := NewSurveySession()
	s.SelectOption(multiQ, 3, "Retraite")
	s.SelectOption(multiQ, 3, "Santé")
	s.SelectOption(multiQ, 3, "Retraite")
	got := s.AnswersFor(3)
	if len(got) != 1 || len(got[0].Value) != 1 || got[0].Value[0] != "Santé" {
		t.Fatalf("unexpected answers %+v", got)
	}
}

func TestSelectOptionRejectsUnknown(t *testing.T) {
	s := NewSurveySession()
	if err := s.SelectOption(singleQ, 1, "Plombier"); !IsCode(err, ErrorInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	q := singleQ
	q.HasOther = false
	if err := s.SelectOption(q, 1, OtherOption); !IsCode(err, ErrorInvalid) {
		t.Fatalf("other must be refused without HasOther, got %v", err)
	}
}

func TestSetOtherValueSelectsOther(t *testing.T) {
	s := NewSurveySession()
	s.SelectOption(multiQ, 3, "Santé")
	if err := s.SetOtherValue(multiQ, 3, "Mutuelle"); err != nil {
		t.Fatalf("SetOtherValue: %v", err)
	}
	a := s.AnswersFor(3)[0]
	if len(a.Value) != 2 || a.Value[1] != OtherOption || a.OtherValue != "Mutuelle" {
		t.Fatalf("unexpected answer %+v", a)
	}
	if got := AnswerDisplay(&a); got != "Santé, Autre: Mutuelle" {
		t.Fatalf("display = %q", got)
	}

	s.SelectOption(singleQ, 1, "Médecin")
	s.SetOtherValue(singleQ, 1, "Dentiste")
	b := s.AnswersFor(1)[0]
	if len(b.Value) != 1 || b.Value[0] != OtherOption {
		t.Fatalf("single select should switch to other: %+v", b)
	}
}

func TestRecordAnswerUpserts(t *testing.T) {
	s := NewSurveySession()
	s.RecordAnswer(yesNoQ, 1, []string{"Oui"}, "")
	s.RecordAnswer(yesNoQ, 2, []string{"Oui"}, "")
	s.RecordAnswer(yesNoQ, 1, []string{"Non"}, "")
	got := s.Answers()
	if len(got) != 2 || got[0].Value[0] != "Non" {
		t.Fatalf("unexpected answers %+v", got)
	}
}

func TestRecordAnswerRejectsValuesOutsideOptions(t *testing.T) {
	s := NewSurveySession()
	if err := s.RecordAnswer(yesNoQ, 1, []string{"Peut-être"}, ""); !IsCode(err, ErrorInvalid) {
		t.Fatalf("unknown value = %v", err)
	}
	if err := s.RecordAnswer(yesNoQ, 1, []string{OtherOption}, "Bof"); !IsCode(err, ErrorInvalid) {
		t.Fatalf("other without HasOther = %v", err)
	}
	if err := s.RecordAnswer(yesNoQ, 1, []string{"Oui", "Non"}, ""); !IsCode(err, ErrorInvalid) {
		t.Fatalf("two values on single select = %v", err)
	}
	if got := s.Answers(); len(got) != 0 {
		t.Fatalf("rejected values were stored: %+v", got)
	}
	if err := s.RecordAnswer(multiQ, 1, []string{"Retraite", OtherOption}, "Logement"); err != nil {
		t.Fatalf("valid multi answer: %v", err)
	}
	if err := s.RecordAnswer(singleQ, 1, nil, ""); err != nil {
		t.Fatalf("empty answer should clear: %v", err)
	}
}

func TestSubmitMakesSessionTerminal(t *testing.T) {
	s := NewSurveySession()
	s.RecordAnswer(yesNoQ, 1, []string{"Oui"}, "")
	sub := &recordingSubmitter{}
	who := Identity{ID: "u1", Name: "Jeanne", Phone: "0612345678"}
	if err := s.Submit(context.Background(), sub, who); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(sub.got) != 1 || sub.got[0].UserID != "u1" || len(sub.got[0].Answers) != 1 {
		t.Fatalf("unexpected submission %+v", sub.got)
	}
	if !s.Submitted() {
		t.Fatalf("session should be submitted")
	}
	if err := s.RecordAnswer(yesNoQ, 1, nil, ""); !IsCode(err, ErrorConflict) {
		t.Fatalf("RecordAnswer after submit = %v", err)
	}
	if err := s.GoNext(3); !IsCode(err, ErrorConflict) {
		t.Fatalf("GoNext after submit = %v", err)
	}
	if err := s.Submit(context.Background(), sub, who); !IsCode(err, ErrorConflict) {
		t.Fatalf("second Submit = %v", err)
	}
}

func TestSubmitFailureKeepsSessionOpen(t *testing.T) {
	s := NewSurveySession()
	sub := &recordingSubmitter{err: errDiskFull}
	if err := s.Submit(context.Background(), sub, Identity{ID: "u1"}); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected disk full, got %v", err)
	}
	if s.Submitted() {
		t.Fatalf("failed submit must leave the session open")
	}
}
