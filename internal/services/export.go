package services

import (
	"strings"
	"time"

	"github.com/soaringjerry/Sondage/internal/utils"
)

const (
	timeLayoutISO    = time.RFC3339
	exportTimeLayout = "02/01/2006 15:04:05"
)

// ExportFileName names the download after the export day.
func ExportFileName(now time.Time) string {
	return "responses_" + now.Format("2006-01-02") + ".csv"
}

// ExportCSV renders one row per response (storage order) with the respondent,
// the submission time in loc and one column per question of the definition.
// Every field is double-quoted and rows end with CRLF.
func ExportCSV(sections []Section, responses []UserResponse, loc *time.Location) ([]byte, error) {
	if len(responses) == 0 {
		return nil, NewNotFoundError(utils.T("export.empty"))
	}
	if loc == nil {
		loc = time.UTC
	}
	questions := AllQuestions(sections)

	var b strings.Builder
	header := []string{utils.T("export.col_name"), utils.T("export.col_phone"), utils.T("export.col_submitted")}
	for _, q := range questions {
		header = append(header, q.Text)
	}
	writeRow(&b, header)
	for _, r := range responses {
		row := make([]string, 0, 3+len(questions))
		row = append(row, r.UserName, r.UserPhone, r.SubmittedAt.In(loc).Format(exportTimeLayout))
		for _, q := range questions {
			row = append(row, AnswerDisplay(FindAnswer(r, q.QuestionID, q.SectionID)))
		}
		writeRow(&b, row)
	}
	return []byte(b.String()), nil
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
