package exam

import "context"

type HabilitateRequest struct {
	ExamID    int  `json:"examId" validate:"required"`
	GroupID   int  `json:"groupId" validate:"required"`
	ShowScore bool `json:"showScore"`
}

// Habilitate grants a group access to an exam. Duplicate (examId, groupId)
// pairs are rejected.
func (s *Service) Habilitate(_ context.Context, req HabilitateRequest) (Habilitation, error) {
	if err := s.checkReq(req); err != nil {
		return Habilitation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findExam(req.ExamID); !ok {
		return Habilitation{}, ErrNotFound
	}
	if _, ok := s.findGroup(req.GroupID); !ok {
		return Habilitation{}, ErrNotFound
	}
	for _, h := range s.habilitations {
		if h.ExamID == req.ExamID && h.GroupID == req.GroupID {
			return Habilitation{}, ErrDuplicateHabilitation
		}
	}

	h := Habilitation{
		ID:        nextHabilitationID(s.habilitations),
		ExamID:    req.ExamID,
		GroupID:   req.GroupID,
		ShowScore: req.ShowScore,
	}
	s.habilitations = append(append([]Habilitation(nil), s.habilitations...), h)
	s.persistHabilitations()
	return h, nil
}

// DeleteHabilitation removes a habilitation by ID. No cascade is needed:
// results snapshot their ShowScore at submission time.
func (s *Service) DeleteHabilitation(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, h := range s.habilitations {
		if h.ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	s.habilitations = filterHabilitations(s.habilitations, func(h Habilitation) bool { return h.ID != id })
	s.persistHabilitations()
	return nil
}
