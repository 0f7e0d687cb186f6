package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/examprom/examprom/internal/api/http"
	"github.com/examprom/examprom/internal/auth"
	"github.com/examprom/examprom/internal/config"
	"github.com/examprom/examprom/internal/db"
	"github.com/examprom/examprom/internal/exam"
	"github.com/examprom/examprom/internal/rbac"
	"github.com/examprom/examprom/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gw, sqlGW, err := openGateway(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	svc := exam.NewService(ctx, gw, exam.WithBcryptCost(cfg.BcryptCost))
	go drainErrs(svc)

	authSvc := auth.NewService(cfg.AuthSecret, time.Duration(cfg.TokenTTLHrs)*time.Hour)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", api.LoginHandler(authSvc, svc))
	r.Post("/auth/register", api.RegisterHandler(svc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// admin surface
		pr.With(rbac.Require("exam:manage")).Get("/exams", api.ListExamsHandler(svc))
		pr.With(rbac.Require("exam:manage")).Post("/exams", api.CreateExamHandler(svc))
		pr.With(rbac.Require("exam:manage")).Put("/exams/{examID}", api.UpdateExamHandler(svc))
		pr.With(rbac.Require("exam:manage")).Delete("/exams/{examID}", api.DeleteExamHandler(svc))

		pr.With(rbac.Require("group:manage")).Get("/groups", api.ListGroupsHandler(svc))
		pr.With(rbac.Require("group:manage")).Post("/groups", api.CreateGroupHandler(svc))
		pr.With(rbac.Require("group:manage")).Put("/groups/{groupID}", api.UpdateGroupHandler(svc))
		pr.With(rbac.Require("group:manage")).Delete("/groups/{groupID}", api.DeleteGroupHandler(svc))

		pr.With(rbac.Require("user:manage")).Get("/users", api.ListUsersHandler(svc))
		pr.With(rbac.Require("user:manage")).Get("/users/pending", api.PendingStudentsHandler(svc))
		pr.With(rbac.Require("user:manage")).Put("/users/{dni}", api.UpdateUserHandler(svc))
		pr.With(rbac.Require("user:manage")).Delete("/users/{dni}", api.DeleteUserHandler(svc))
		pr.With(rbac.Require("user:manage")).Post("/users/{dni}/approve", api.ApproveStudentHandler(svc))
		pr.With(rbac.Require("user:manage")).Post("/users/import", api.ImportPreviewHandler(svc))
		pr.With(rbac.Require("user:manage")).Post("/users/import/commit", api.ImportCommitHandler(svc))

		pr.With(rbac.Require("habilitation:manage")).Get("/habilitations", api.ListHabilitationsHandler(svc))
		pr.With(rbac.Require("habilitation:manage")).Post("/habilitations", api.HabilitateHandler(svc))
		pr.With(rbac.Require("habilitation:manage")).Delete("/habilitations/{habilitationID}", api.DeleteHabilitationHandler(svc))

		pr.With(rbac.Require("result:view")).Get("/results", api.ListResultsHandler(svc))
		pr.With(rbac.Require("result:view")).Get("/results/export", api.ExportResultsHandler(svc))

		// student surface
		pr.With(rbac.Require("exam:list")).Get("/student/exams", api.AvailableExamsHandler(svc))
		pr.With(rbac.Require("exam:list")).Get("/student/completed", api.CompletedExamsHandler(svc))
		pr.With(rbac.Require("attempt:start")).Post("/student/exams/{examID}/start", api.StartExamHandler(svc))
		pr.With(rbac.Require("attempt:submit")).Post("/student/exams/{examID}/submit", api.SubmitExamHandler(svc))

		// own account
		pr.With(rbac.Require("account:update")).Post("/account", api.UpdateAccountHandler(svc))
		pr.With(rbac.Require("account:change_password")).Post("/account/change-password", api.ChangePasswordHandler(svc))

		if sqlGW != nil {
			pr.With(rbac.Require("store:audit")).Get("/admin/events", eventsHandler(sqlGW))
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	svc.Flush() // let queued collection saves resolve
}

func openGateway(ctx context.Context, cfg config.Config) (store.Gateway, *store.SQLGateway, error) {
	switch cfg.StoreDriver {
	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		gw := store.NewSQLGateway(dbh, cfg.StoreDriver)
		return gw, gw, nil
	case "memory":
		return store.NewMemGateway(), nil, nil
	default:
		gw, err := store.NewFSGateway(cfg.StoreBasePath)
		return gw, nil, err
	}
}

func drainErrs(svc *exam.Service) {
	for err := range svc.Errs() {
		log.Printf("persistence: %v", err)
	}
}

func eventsHandler(gw *store.SQLGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := gw.Events(r.Context(), 100)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if events == nil {
			events = []store.Event{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(events)
	}
}
