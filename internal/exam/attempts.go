package exam

import (
	"context"

	"github.com/examprom/examprom/internal/store"
)

type SubmitExamRequest struct {
	DNI     string      `json:"dni" validate:"required"`
	ExamID  int         `json:"examId" validate:"required"`
	Answers map[int]int `json:"answers"`
}

// StartExam hands the student a fresh attempt: the exam with answer keys
// stripped and the score-visibility flag of the habilitation that granted
// access. Only exams currently available to the student can be started.
func (s *Service) StartExam(_ context.Context, dni string, examID int) (Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.findUser(dni)
	if !ok {
		return Attempt{}, ErrNotFound
	}
	e, ok := s.findExam(examID)
	if !ok {
		return Attempt{}, ErrNotFound
	}
	h, ok := s.habilitationFor(u, examID)
	if !ok || s.hasResult(dni, examID) {
		return Attempt{}, ErrExamNotAvailable
	}
	return Attempt{Exam: stripAnswers(e), ShowScore: h.ShowScore}, nil
}

// SubmitExam grades and records a student's one attempt. At-most-once is
// enforced twice over: against the results collection and against the
// in-flight set, which only clears once the persistence call resolves.
func (s *Service) SubmitExam(_ context.Context, req SubmitExamRequest) (Result, error) {
	if err := s.checkReq(req); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(req.DNI)
	if !ok {
		return Result{}, ErrNotFound
	}
	e, ok := s.findExam(req.ExamID)
	if !ok {
		return Result{}, ErrNotFound
	}

	key := submitKey(req.DNI, req.ExamID)
	if s.hasResult(req.DNI, req.ExamID) {
		return Result{}, ErrResultExists
	}
	if _, busy := s.inflight[key]; busy {
		return Result{}, ErrSubmissionInFlight
	}
	for _, q := range e.Questions {
		if _, answered := req.Answers[q.ID]; !answered {
			return Result{}, ErrUnansweredQuestions
		}
	}

	correct := countCorrect(e, req.Answers)
	h, _ := s.habilitationFor(u, req.ExamID) // zero value means showScore=false

	answers := make(map[int]int, len(req.Answers))
	for _, q := range e.Questions {
		answers[q.ID] = req.Answers[q.ID]
	}
	r := Result{
		StudentDNI: req.DNI,
		ExamID:     req.ExamID,
		Score:      float64(correct) * 10 / float64(len(e.Questions)),
		Total:      10,
		Date:       s.now().UTC().Format("2006-01-02"),
		Answers:    answers,
		ShowScore:  h.ShowScore,
	}
	s.results = append(append([]Result(nil), s.results...), r)

	s.inflight[key] = struct{}{}
	persist(s, store.CollectionResults, s.results, func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	})
	return r, nil
}

func countCorrect(e Exam, answers map[int]int) int {
	n := 0
	for _, q := range e.Questions {
		if answers[q.ID] == q.CorrectOptionID {
			n++
		}
	}
	return n
}

func stripAnswers(e Exam) Exam {
	qs := make([]Question, len(e.Questions))
	copy(qs, e.Questions)
	for i := range qs {
		qs[i].CorrectOptionID = 0
	}
	e.Questions = qs
	return e
}
