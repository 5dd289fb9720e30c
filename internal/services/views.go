package services

import (
	"sort"
	"strings"

	"github.com/soaringjerry/Sondage/internal/utils"
)

// UserSummary is one row of the admin user list.
type UserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	SubmittedAt string `json:"submittedAt"`
}

// AnswerView pairs a question text with the displayed answer.
type AnswerView struct {
	QuestionID int    `json:"questionId"`
	SectionID  int    `json:"sectionId"`
	Question   string `json:"question"`
	Display    string `json:"display"`
}

// QuestionRef locates a question within the definition.
type QuestionRef struct {
	SectionID  int    `json:"sectionId"`
	QuestionID int    `json:"questionId"`
	Text       string `json:"text"`
}

// UniqueUsers keeps the first response seen per user, newest submission first.
func UniqueUsers(responses []UserResponse) []UserSummary {
	seen := map[string]bool{}
	type row struct {
		summary UserSummary
		resp    UserResponse
	}
	rows := []row{}
	for _, r := range responses {
		if seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		rows = append(rows, row{
			summary: UserSummary{ID: r.UserID, Name: r.UserName, Phone: r.UserPhone, SubmittedAt: r.SubmittedAt.Format(timeLayoutISO)},
			resp:    r,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].resp.SubmittedAt.After(rows[j].resp.SubmittedAt) })
	out := make([]UserSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.summary)
	}
	return out
}

// SortedBySubmission returns a copy ordered newest first.
func SortedBySubmission(responses []UserResponse) []UserResponse {
	out := cloneResponses(responses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out
}

// AnswerDisplay renders an answer for people: the chosen options joined with
// ", ", then "Autre: <text>" when "other" carries text. Nothing selected shows
// the no-answer placeholder.
func AnswerDisplay(a *Answer) string {
	none := utils.T("answer.none")
	if a == nil || len(a.Value) == 0 {
		return none
	}
	picked := make([]string, 0, len(a.Value))
	hasOther := false
	for _, v := range a.Value {
		if v == OtherOption {
			hasOther = true
			continue
		}
		picked = append(picked, v)
	}
	result := strings.Join(picked, ", ")
	if hasOther && a.OtherValue != "" {
		other := utils.T("answer.other") + ": " + a.OtherValue
		if result != "" {
			result += ", " + other
		} else {
			result = other
		}
	}
	if result == "" {
		return none
	}
	return result
}

// FindAnswer returns the response's answer to (questionID, sectionID), or nil.
func FindAnswer(r UserResponse, questionID, sectionID int) *Answer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID && r.Answers[i].SectionID == sectionID {
			a := r.Answers[i].clone()
			return &a
		}
	}
	return nil
}

// QuestionText looks a question up by its section and id.
func QuestionText(sections []Section, questionID, sectionID int) string {
	for _, s := range sections {
		if s.ID != sectionID {
			continue
		}
		for _, q := range s.Questions {
			if q.ID == questionID {
				return q.Text
			}
		}
	}
	return utils.T("question.unknown")
}

// DescribeResponse lists the response's answers with their question texts, in
// the order they were recorded.
func DescribeResponse(sections []Section, r UserResponse) []AnswerView {
	out := make([]AnswerView, 0, len(r.Answers))
	for i := range r.Answers {
		a := r.Answers[i]
		out = append(out, AnswerView{
			QuestionID: a.QuestionID,
			SectionID:  a.SectionID,
			Question:   QuestionText(sections, a.QuestionID, a.SectionID),
			Display:    AnswerDisplay(&a),
		})
	}
	return out
}

// AllQuestions flattens the definition in section then question order.
func AllQuestions(sections []Section) []QuestionRef {
	out := []QuestionRef{}
	for _, s := range sections {
		for _, q := range s.Questions {
			out = append(out, QuestionRef{SectionID: s.ID, QuestionID: q.ID, Text: q.Text})
		}
	}
	return out
}
