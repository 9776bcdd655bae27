package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/criteria"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for job management",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		api := &apiServer{env: env}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", api.health)
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", api.createJob)
			r.Get("/", api.listJobs)
			r.Get("/{jobID}", api.getJob)
			r.Post("/{jobID}/cancel", api.cancelJob)
			r.Post("/{jobID}/process", api.processJob)
		})

		// Background sweep so queued jobs run without an explicit process call.
		sched := cron.New()
		if _, err := sched.AddFunc(cfg.Server.PendingCron, func() {
			if err := env.Orchestrator.ProcessPending(ctx); err != nil {
				zap.L().Error("pending sweep failed", zap.Error(err))
			}
		}); err != nil {
			return eris.Wrap(err, "schedule pending sweep")
		}
		sched.Start()
		defer sched.Stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			gracefulShutdown(srv, 10*time.Second)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// gracefulShutdown drains in-flight requests before stopping the server.
// The signal context is already cancelled by the time this runs, so the
// drain gets its own deadline.
func gracefulShutdown(srv *http.Server, timeout time.Duration) {
	zap.L().Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
	}
}

type apiServer struct {
	env *pipelineEnv
}

func (s *apiServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createJobRequest struct {
	Prompt           string   `json:"prompt"`
	TargetCount      int      `json:"target_count"`
	QualityThreshold float64  `json:"quality_threshold"`
	Industry         string   `json:"industry"`
	Location         string   `json:"location"`
	TargetRoles      []string `json:"target_roles"`
	Exclusions       []string `json:"exclusions"`
	CustomQueries    []string `json:"custom_queries"`
	Process          bool     `json:"process"`
}

func (s *apiServer) createJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	job, err := s.env.Orchestrator.CreateJob(r.Context(), req.Prompt, criteria.Overrides{
		Industry:          req.Industry,
		Location:          req.Location,
		TargetRoles:       req.TargetRoles,
		ExclusionKeywords: req.Exclusions,
		CustomQueries:     req.CustomQueries,
	}, req.TargetCount, req.QualityThreshold)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Process {
		s.processAsync(job.ID)
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *apiServer) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.env.Orchestrator.ListJobs(r.Context(), store.JobFilter{
		Status: model.JobStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *apiServer) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.env.Orchestrator.GetJob(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	companies, err := s.env.Store.ListCompanies(r.Context(), job.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job":       job,
		"companies": companies,
	})
}

func (s *apiServer) cancelJob(w http.ResponseWriter, r *http.Request) {
	if err := s.env.Orchestrator.Cancel(r.Context(), chi.URLParam(r, "jobID")); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *apiServer) processJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, err := s.env.Orchestrator.GetJob(r.Context(), jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.processAsync(job.ID)
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"job_id": job.ID,
	})
}

// processAsync runs a job outside the request lifecycle. The background
// context keeps processing alive after the HTTP response is written.
func (s *apiServer) processAsync(jobID string) {
	go func() {
		if err := s.env.Orchestrator.Process(context.Background(), jobID); err != nil {
			zap.L().Error("job processing failed",
				zap.String("job_id", jobID),
				zap.Error(err),
			)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
