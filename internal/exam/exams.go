package exam

import (
	"context"
	"strings"
)

type QuestionInput struct {
	ID              int           `json:"id"`
	Text            string        `json:"text"`
	Options         []OptionInput `json:"options"`
	CorrectOptionID int           `json:"correctOptionId"`
}

type OptionInput struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type CreateExamRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1"`
}

type UpdateExamRequest struct {
	ID          int             `json:"id" validate:"required"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1"`
}

func (s *Service) CreateExam(_ context.Context, req CreateExamRequest) (Exam, error) {
	if err := s.checkReq(req); err != nil {
		return Exam{}, err
	}
	questions, err := buildQuestions(req.Name, req.Questions)
	if err != nil {
		return Exam{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := Exam{
		ID:          nextExamID(s.exams),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Questions:   questions,
	}
	s.exams = append(append([]Exam(nil), s.exams...), e)
	s.persistExams()
	return e, nil
}

func (s *Service) UpdateExam(_ context.Context, req UpdateExamRequest) (Exam, error) {
	if err := s.checkReq(req); err != nil {
		return Exam{}, err
	}
	questions, err := buildQuestions(req.Name, req.Questions)
	if err != nil {
		return Exam{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findExam(req.ID); !ok {
		return Exam{}, ErrNotFound
	}
	updated := Exam{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Questions:   questions,
	}
	s.exams = filterExams(s.exams, func(e Exam) bool { return e.ID != req.ID })
	s.exams = append(s.exams, updated)
	s.persistExams()
	return updated, nil
}

// DeleteExam removes the exam and cascades: its habilitations and results
// go with it.
func (s *Service) DeleteExam(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findExam(id); !ok {
		return ErrNotFound
	}
	s.exams = filterExams(s.exams, func(e Exam) bool { return e.ID != id })
	s.habilitations = filterHabilitations(s.habilitations, func(h Habilitation) bool { return h.ExamID != id })
	s.results = filterResults(s.results, func(r Result) bool { return r.ExamID != id })

	s.persistExams()
	s.persistHabilitations()
	s.persistResults()
	return nil
}

// buildQuestions validates and normalizes question input: non-empty texts,
// at least two options per question, and a correct option that belongs to
// the question. Zero IDs are filled with the smallest unused value.
func buildQuestions(examName string, in []QuestionInput) ([]Question, error) {
	if strings.TrimSpace(examName) == "" {
		return nil, validationf("exam name is required")
	}
	questions := make([]Question, 0, len(in))
	seenQ := map[int]bool{}
	for i, q := range in {
		qid := q.ID
		if qid == 0 {
			qid = nextFreeID(seenQ)
		}
		if seenQ[qid] {
			return nil, validationf("question %d: duplicate id %d", i+1, qid)
		}
		seenQ[qid] = true
		if strings.TrimSpace(q.Text) == "" {
			return nil, validationf("question %d: text is required", i+1)
		}
		if len(q.Options) < 2 {
			return nil, validationf("question %d: at least two options required", i+1)
		}
		opts := make([]Option, 0, len(q.Options))
		seenO := map[int]bool{}
		correctOK := false
		for j, o := range q.Options {
			oid := o.ID
			if oid == 0 {
				oid = nextFreeID(seenO)
			}
			if seenO[oid] {
				return nil, validationf("question %d option %d: duplicate id %d", i+1, j+1, oid)
			}
			seenO[oid] = true
			if strings.TrimSpace(o.Text) == "" {
				return nil, validationf("question %d option %d: text is required", i+1, j+1)
			}
			if oid == q.CorrectOptionID {
				correctOK = true
			}
			opts = append(opts, Option{ID: oid, Text: strings.TrimSpace(o.Text)})
		}
		if !correctOK {
			return nil, validationf("question %d: a correct option must be selected", i+1)
		}
		questions = append(questions, Question{
			ID:              qid,
			Text:            strings.TrimSpace(q.Text),
			Options:         opts,
			CorrectOptionID: q.CorrectOptionID,
		})
	}
	return questions, nil
}

func nextFreeID(seen map[int]bool) int {
	id := 1
	for seen[id] {
		id++
	}
	return id
}
