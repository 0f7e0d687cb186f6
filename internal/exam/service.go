package exam

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/examprom/examprom/internal/store"
)

const persistTimeout = 10 * time.Second

// Service is the single source of truth for the session. Mutation
// operations validate, apply a pure transformation of the current
// collections, swap the in-memory state, then persist the whole collection
// fire-and-forget: a failed save is logged and reported on Errs but never
// rolls the in-memory state back.
type Service struct {
	gw       store.Gateway
	validate *validator.Validate

	mu            sync.RWMutex
	exams         []Exam
	groups        []Group
	users         []User
	habilitations []Habilitation
	results       []Result

	// inflight guards submissions per (dni, examID) until the persistence
	// call resolves; the results slice alone cannot be trusted against rapid
	// repeat submits while a save is pending.
	inflight map[string]struct{}

	errs chan error
	wg   sync.WaitGroup

	now        func() time.Time
	bcryptCost int // cost for hashing new credentials
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBcryptCost sets the bcrypt cost used when hashing new credentials.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.bcryptCost = cost }
}

// NewService loads the five collections, falling back to the seed dataset
// for any collection that is absent or unreadable.
func NewService(ctx context.Context, gw store.Gateway, opts ...ServiceOption) *Service {
	s := &Service{
		gw:         gw,
		validate:   validator.New(),
		inflight:   map[string]struct{}{},
		errs:       make(chan error, 16),
		now:        time.Now,
		bcryptCost: 12,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.exams = store.LoadCollection(ctx, gw, store.CollectionExams, SeedExams())
	s.groups = store.LoadCollection(ctx, gw, store.CollectionGroups, SeedGroups())
	s.users = store.LoadCollection(ctx, gw, store.CollectionUsers, SeedUsers())
	s.habilitations = store.LoadCollection(ctx, gw, store.CollectionHabilitations, SeedHabilitations())
	s.results = store.LoadCollection(ctx, gw, store.CollectionResults, SeedResults())
	return s
}

// Errs reports persistence failures. The channel is buffered; when nobody
// listens, failures are still logged.
func (s *Service) Errs() <-chan error { return s.errs }

// Flush waits for all queued saves to resolve. Called at shutdown and by
// tests that need deterministic persistence.
func (s *Service) Flush() { s.wg.Wait() }

// Snapshot returns a copy of the current dataset.
func (s *Service) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{
		Exams:         append([]Exam(nil), s.exams...),
		Groups:        append([]Group(nil), s.groups...),
		Users:         append([]User(nil), s.users...),
		Habilitations: append([]Habilitation(nil), s.habilitations...),
		Results:       append([]Result(nil), s.results...),
	}
}

// persist snapshots one collection and writes it in the background. onDone,
// when set, runs after the save resolves regardless of its outcome.
func persist[T any](s *Service, name string, items []T, onDone func()) {
	snap := append([]T(nil), items...)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if onDone != nil {
			defer onDone()
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := store.SaveCollection(ctx, s.gw, name, snap); err != nil {
			log.Printf("persist %s: %v", name, err)
			select {
			case s.errs <- err:
			default:
			}
		}
	}()
}

func (s *Service) persistExams()         { persist(s, store.CollectionExams, s.exams, nil) }
func (s *Service) persistGroups()        { persist(s, store.CollectionGroups, s.groups, nil) }
func (s *Service) persistUsers()         { persist(s, store.CollectionUsers, s.users, nil) }
func (s *Service) persistHabilitations() {
	persist(s, store.CollectionHabilitations, s.habilitations, nil)
}
func (s *Service) persistResults()       { persist(s, store.CollectionResults, s.results, nil) }

// checkReq runs struct-tag validation on a request and converts failures to
// the domain's validation error.
func (s *Service) checkReq(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return validationf("invalid request: %v", err)
	}
	return nil
}

// lookups; callers hold at least the read lock.

func (s *Service) findUser(dni string) (User, bool) {
	for _, u := range s.users {
		if u.DNI == dni {
			return u, true
		}
	}
	return User{}, false
}

func (s *Service) findExam(id int) (Exam, bool) {
	for _, e := range s.exams {
		if e.ID == id {
			return e, true
		}
	}
	return Exam{}, false
}

func (s *Service) findGroup(id int) (Group, bool) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

func (s *Service) hasResult(dni string, examID int) bool {
	for _, r := range s.results {
		if r.StudentDNI == dni && r.ExamID == examID {
			return true
		}
	}
	return false
}

// habilitationFor returns the habilitation granting user access to examID.
func (s *Service) habilitationFor(u User, examID int) (Habilitation, bool) {
	for _, h := range s.habilitations {
		if h.ExamID != examID {
			continue
		}
		for _, gid := range u.GroupIDs {
			if h.GroupID == gid {
				return h, true
			}
		}
	}
	return Habilitation{}, false
}

func submitKey(dni string, examID int) string {
	return fmt.Sprintf("%s|%d", dni, examID)
}
