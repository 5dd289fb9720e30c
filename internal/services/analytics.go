package services

import (
	"sort"
	"time"
)

type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// QuestionStats tallies the selections made for one question.
type QuestionStats struct {
	SectionID  int           `json:"sectionId"`
	QuestionID int           `json:"questionId"`
	Text       string        `json:"text"`
	Options    []OptionCount `json:"options"`
	Other      int           `json:"other"`
	Answered   int           `json:"answered"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	TotalResponses int             `json:"totalResponses"`
	Questions      []QuestionStats `json:"questions"`
	Timeseries     []DailyCount    `json:"timeseries"`
}

// Summarize counts, per question of the definition, how often each option was
// chosen, and how many responses arrived per day in loc. Selected values that
// are no longer options of the question are ignored.
func Summarize(sections []Section, responses []UserResponse, loc *time.Location) *AnalyticsSummary {
	if loc == nil {
		loc = time.UTC
	}
	stats, index := buildQuestionStats(sections)
	countsByDay := map[string]int{}
	for _, r := range responses {
		for _, a := range r.Answers {
			i, ok := index[questionKey{a.SectionID, a.QuestionID}]
			if !ok || len(a.Value) == 0 {
				continue
			}
			tallyAnswer(&stats[i], a)
		}
		countsByDay[r.SubmittedAt.In(loc).Format("2006-01-02")]++
	}
	return &AnalyticsSummary{
		TotalResponses: len(responses),
		Questions:      stats,
		Timeseries:     buildTimeseries(countsByDay),
	}
}

type questionKey struct{ section, question int }

func buildQuestionStats(sections []Section) ([]QuestionStats, map[questionKey]int) {
	index := map[questionKey]int{}
	stats := []QuestionStats{}
	for _, s := range sections {
		for _, q := range s.Questions {
			opts := make([]OptionCount, 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, OptionCount{Option: o})
			}
			index[questionKey{s.ID, q.ID}] = len(stats)
			stats = append(stats, QuestionStats{SectionID: s.ID, QuestionID: q.ID, Text: q.Text, Options: opts})
		}
	}
	return stats, index
}

func tallyAnswer(st *QuestionStats, a Answer) {
	st.Answered++
	for _, v := range a.Value {
		if v == OtherOption {
			st.Other++
			continue
		}
		for i := range st.Options {
			if st.Options[i].Option == v {
				st.Options[i].Count++
				break
			}
		}
	}
}

func buildTimeseries(counts map[string]int) []DailyCount {
	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]DailyCount, 0, len(days))
	for _, d := range days {
		out = append(out, DailyCount{Date: d, Count: counts[d]})
	}
	return out
}
