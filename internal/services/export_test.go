package services

import (
	"strings"
	"testing"
	"time"
)

func TestExportFileName(t *testing.T) {
	got := ExportFileName(time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC))
	if got != "responses_2024-07-09.csv" {
		t.Fatalf("got %q", got)
	}
}

func TestExportCSVEmpty(t *testing.T) {
	if _, err := ExportCSV(nil, nil, nil); !IsCode(err, ErrorNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	sections := []Section{
		{ID: 1, Questions: []Question{{ID: 1, Text: `Votre "profession"`}}},
		{ID: 2, Questions: []Question{{ID: 1, Text: "Priorités"}}},
	}
	responses := []UserResponse{{
		UserName:    "Jeanne",
		UserPhone:   "06 12 34 56 78",
		SubmittedAt: time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC),
		Answers: []Answer{
			{QuestionID: 1, SectionID: 2, Value: []string{"Santé", "other"}, OtherValue: "Mutuelle"},
		},
	}}
	out, err := ExportCSV(sections, responses, paris)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Split(string(out), "\r\n")
	if len(lines) != 3 || lines[2] != "" {
		t.Fatalf("expected two CRLF terminated rows, got %q", out)
	}
	wantHeader := `"Nom","Téléphone","Date de soumission","Votre ""profession""","Priorités"`
	if lines[0] != wantHeader {
		t.Fatalf("header = %s", lines[0])
	}
	wantRow := `"Jeanne","06 12 34 56 78","01/03/2024 10:05:07","Aucune réponse","Santé, Autre: Mutuelle"`
	if lines[1] != wantRow {
		t.Fatalf("row = %s", lines[1])
	}
}
