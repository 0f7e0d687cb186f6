package exam

import "context"

// Derived queries. All of them recompute from the current collections on
// every call; the dataset is small enough that caching would only add
// invalidation bugs.

// AvailableExams lists exams habilitated for one of the student's groups
// that the student has not submitted yet.
func (s *Service) AvailableExams(_ context.Context, dni string) ([]Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.findUser(dni)
	if !ok {
		return nil, ErrNotFound
	}
	out := []Exam{}
	for _, e := range s.exams {
		if _, granted := s.habilitationFor(u, e.ID); granted && !s.hasResult(dni, e.ID) {
			out = append(out, stripAnswers(e))
		}
	}
	return out, nil
}

// CompletedExams lists the exams the student already has a result for,
// paired with that result.
func (s *Service) CompletedExams(_ context.Context, dni string) ([]CompletedExam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.findUser(dni); !ok {
		return nil, ErrNotFound
	}
	out := []CompletedExam{}
	for _, r := range s.results {
		if r.StudentDNI != dni {
			continue
		}
		e, ok := s.findExam(r.ExamID)
		if !ok {
			continue
		}
		out = append(out, CompletedExam{Exam: stripAnswers(e), Result: r})
	}
	return out, nil
}

type CompletedExam struct {
	Exam   Exam   `json:"exam"`
	Result Result `json:"result"`
}

// FilteredResults narrows results by exam and/or group; zero means no
// filter on that axis. Group filtering goes through the result owner's
// GroupIDs, the authoritative membership source.
func (s *Service) FilteredResults(_ context.Context, examID, groupID int) []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Result{}
	for _, r := range s.results {
		if examID != 0 && r.ExamID != examID {
			continue
		}
		if groupID != 0 {
			u, ok := s.findUser(r.StudentDNI)
			if !ok {
				continue
			}
			member := false
			for _, gid := range u.GroupIDs {
				if gid == groupID {
					member = true
					break
				}
			}
			if !member {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// PendingStudents lists registrations awaiting approval.
func (s *Service) PendingStudents(_ context.Context) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []User{}
	for _, u := range s.users {
		if u.Role == RoleStudent && u.Status == StatusPending {
			out = append(out, u)
		}
	}
	return out
}
