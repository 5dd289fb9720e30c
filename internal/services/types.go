package services

import "time"

// OtherOption is the sentinel selected value for the free-text "other" entry.
const OtherOption = "other"

// Identity is the logged-in respondent or administrator.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// Question is a single prompt with a fixed option list.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	AllowMultiple bool     `json:"allowMultiple"`
	HasOther      bool     `json:"hasOther"`
}

// QuestionInput is a question before an id is assigned.
type QuestionInput struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	AllowMultiple bool     `json:"allowMultiple"`
	HasOther      bool     `json:"hasOther"`
}

// Section is one page of the survey.
type Section struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// SectionInput is a section before an id is assigned.
type SectionInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Answer holds the selection for one question of one section.
type Answer struct {
	QuestionID int      `json:"questionId"`
	SectionID  int      `json:"sectionId"`
	Value      []string `json:"value"`
	OtherValue string   `json:"otherValue,omitempty"`
}

// UserResponse is one respondent's submitted answer set.
type UserResponse struct {
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	UserPhone   string    `json:"userPhone"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ResponseInput is a UserResponse before it is stamped.
type ResponseInput struct {
	UserID    string
	UserName  string
	UserPhone string
	Answers   []Answer
}

type AuditEntry struct {
	Time   time.Time `json:"time"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Target string    `json:"target"`
	Note   string    `json:"note,omitempty"`
}

func (q Question) clone() Question {
	q.Options = append([]string{}, q.Options...)
	return q
}

func (s Section) clone() Section {
	qs := make([]Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		qs = append(qs, q.clone())
	}
	s.Questions = qs
	return s
}

func cloneSections(in []Section) []Section {
	out := make([]Section, 0, len(in))
	for _, s := range in {
		out = append(out, s.clone())
	}
	return out
}

func (a Answer) clone() Answer {
	a.Value = append([]string{}, a.Value...)
	return a
}

func cloneAnswers(in []Answer) []Answer {
	out := make([]Answer, 0, len(in))
	for _, a := range in {
		out = append(out, a.clone())
	}
	return out
}

func (r UserResponse) clone() UserResponse {
	r.Answers = cloneAnswers(r.Answers)
	return r
}

func cloneResponses(in []UserResponse) []UserResponse {
	out := make([]UserResponse, 0, len(in))
	for _, r := range in {
		out = append(out, r.clone())
	}
	return out
}
