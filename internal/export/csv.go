// Package export serializes filtered results to the CSV dialect the admin
// tooling expects: UTF-8 with BOM, semicolon delimiter, CRLF line endings.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/examprom/examprom/internal/exam"
)

// ErrNothingToExport is returned when the filtered result set is empty; no
// file should be produced.
var ErrNothingToExport = errors.New("no results to export")

const bom = "\uFEFF"

// Results renders the filtered results against the dataset they came from.
// One column per question (union of question IDs across the filtered
// exams), each cell the chosen option's text plus a correctness marker,
// then aggregate counts and the numeric score.
func Results(ds exam.Dataset, filtered []exam.Result) ([]byte, error) {
	if len(filtered) == 0 {
		return nil, ErrNothingToExport
	}

	examsByID := map[int]exam.Exam{}
	for _, e := range ds.Exams {
		examsByID[e.ID] = e
	}
	usersByDNI := map[string]exam.User{}
	for _, u := range ds.Users {
		usersByDNI[u.DNI] = u
	}

	questionIDs := questionUnion(examsByID, filtered)

	var buf bytes.Buffer
	buf.WriteString(bom)

	header := []string{"Estudiante", "Examen", "Puntaje", "Fecha"}
	for _, qid := range questionIDs {
		header = append(header, fmt.Sprintf("Pregunta %d", qid))
	}
	header = append(header, "Respuestas Correctas", "Respuestas Incorrectas", "Nota Numérica")
	writeRow(&buf, header)

	for _, r := range filtered {
		e := examsByID[r.ExamID]
		row := []string{
			studentName(usersByDNI, r.StudentDNI),
			examName(e, r.ExamID),
			formatScore(r.Score) + "/" + formatScore(r.Total),
			r.Date,
		}

		for _, qid := range questionIDs {
			row = append(row, answerCell(e, qid, r.Answers))
		}

		correct, incorrect := 0, 0
		for _, q := range e.Questions {
			if r.Answers[q.ID] == q.CorrectOptionID {
				correct++
			} else {
				incorrect++
			}
		}
		row = append(row,
			strconv.Itoa(correct),
			strconv.Itoa(incorrect),
			formatScore(r.Score),
		)
		writeRow(&buf, row)
	}
	return buf.Bytes(), nil
}

// questionUnion collects the distinct question IDs of every exam present in
// the filtered results, ascending.
func questionUnion(examsByID map[int]exam.Exam, filtered []exam.Result) []int {
	seen := map[int]bool{}
	var ids []int
	for _, r := range filtered {
		e, ok := examsByID[r.ExamID]
		if !ok {
			continue
		}
		for _, q := range e.Questions {
			if !seen[q.ID] {
				seen[q.ID] = true
				ids = append(ids, q.ID)
			}
		}
	}
	sort.Ints(ids)
	return ids
}

func answerCell(e exam.Exam, questionID int, answers map[int]int) string {
	for _, q := range e.Questions {
		if q.ID != questionID {
			continue
		}
		chosen, answered := answers[q.ID]
		if !answered {
			return "No respondida (✗)"
		}
		text := "No respondida"
		for _, o := range q.Options {
			if o.ID == chosen {
				text = o.Text
				break
			}
		}
		if chosen == q.CorrectOptionID {
			return text + " (✓)"
		}
		return text + " (✗)"
	}
	return "" // exam has no such question
}

func studentName(users map[string]exam.User, dni string) string {
	if u, ok := users[dni]; ok {
		return u.Name
	}
	return dni
}

func examName(e exam.Exam, id int) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("Examen %d", id)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeRow emits one CRLF-terminated record, quote-wrapping any field that
// contains the delimiter, a quote or a line break, with internal quotes
// doubled.
func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(';')
		}
		if strings.ContainsAny(f, ";\"\r\n") {
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
			buf.WriteByte('"')
		} else {
			buf.WriteString(f)
		}
	}
	buf.WriteString("\r\n")
}
