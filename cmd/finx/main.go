package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/IT-BAER/finx-sub002/internal/auth"
	database "github.com/IT-BAER/finx-sub002/internal/db"
	"github.com/IT-BAER/finx-sub002/internal/finance/application"
	"github.com/IT-BAER/finx-sub002/internal/finance/infrastructure"
	"github.com/IT-BAER/finx-sub002/internal/finance/interfaces"
	"github.com/IT-BAER/finx-sub002/internal/metrics"
	"github.com/IT-BAER/finx-sub002/internal/user"
	"github.com/IT-BAER/finx-sub002/pkg/logging"
)

type Response struct {
	Message string `json:"message"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(recorder.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		slog.Debug("request completed", "method", r.Method, "path", r.URL.Path,
			"status", recorder.status, "duration", time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router           *http.ServeMux
	dbService        *database.DBService
	jwtManager       auth.JWTManagerInterface
	userHandler      *user.Handler
	recordHandler    *interfaces.RecordHandler
	sharingHandler   *interfaces.SharingHandler
	recurringHandler *interfaces.RecurringHandler
	sourceHandler    *interfaces.SourceHandler
	targetHandler    *interfaces.TargetHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	protect := auth.JWTAccessTokenMiddleware(s.jwtManager)

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.userHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleGetProfile)))

	// RECORDS API
	protectedRoutes.Handle("GET /api/protected/records", protect(http.HandlerFunc(s.recordHandler.GetRecords)))
	protectedRoutes.Handle("POST /api/protected/records", protect(http.HandlerFunc(s.recordHandler.CreateRecord)))
	protectedRoutes.Handle("PUT /api/protected/records/{recordID}", protect(http.HandlerFunc(s.recordHandler.UpdateRecord)))
	protectedRoutes.Handle("DELETE /api/protected/records/{recordID}", protect(http.HandlerFunc(s.recordHandler.DeleteRecord)))

	// SHARING API
	protectedRoutes.Handle("GET /api/protected/sharing", protect(http.HandlerFunc(s.sharingHandler.GetGrants)))
	protectedRoutes.Handle("POST /api/protected/sharing", protect(http.HandlerFunc(s.sharingHandler.SaveGrant)))
	protectedRoutes.Handle("DELETE /api/protected/sharing/{recipientID}", protect(http.HandlerFunc(s.sharingHandler.DeleteGrant)))

	// RECURRING RULES API
	protectedRoutes.Handle("GET /api/protected/recurring", protect(http.HandlerFunc(s.recurringHandler.GetRules)))
	protectedRoutes.Handle("POST /api/protected/recurring", protect(http.HandlerFunc(s.recurringHandler.CreateRule)))
	protectedRoutes.Handle("PUT /api/protected/recurring/{ruleID}", protect(http.HandlerFunc(s.recurringHandler.UpdateRule)))
	protectedRoutes.Handle("DELETE /api/protected/recurring/{ruleID}", protect(http.HandlerFunc(s.recurringHandler.DeleteRule)))

	// SOURCES / TARGETS API
	protectedRoutes.Handle("GET /api/protected/sources", protect(http.HandlerFunc(s.sourceHandler.GetSources)))
	protectedRoutes.Handle("POST /api/protected/sources", protect(http.HandlerFunc(s.sourceHandler.CreateSource)))
	protectedRoutes.Handle("PUT /api/protected/sources/{sourceID}", protect(http.HandlerFunc(s.sourceHandler.UpdateSource)))
	protectedRoutes.Handle("DELETE /api/protected/sources/{sourceID}", protect(http.HandlerFunc(s.sourceHandler.DeleteSource)))
	protectedRoutes.Handle("GET /api/protected/targets", protect(http.HandlerFunc(s.targetHandler.GetTargets)))
	protectedRoutes.Handle("POST /api/protected/targets", protect(http.HandlerFunc(s.targetHandler.CreateTarget)))
	protectedRoutes.Handle("PUT /api/protected/targets/{targetID}", protect(http.HandlerFunc(s.targetHandler.UpdateTarget)))
	protectedRoutes.Handle("DELETE /api/protected/targets/{targetID}", protect(http.HandlerFunc(s.targetHandler.DeleteTarget)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/metrics", promhttp.Handler())
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	logging.Setup()

	if err := checkConfiguration(); err != nil {
		slog.Error("missing configuration, update to start server", "error", err)
		os.Exit(1)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		slog.Error("could not initialize database", "error", err)
		os.Exit(1)
	}
	defer dbService.Close()

	if err := dbService.Bootstrap(); err != nil {
		slog.Error("could not bootstrap schema", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService, jwtManager)

	sharingRepo := infrastructure.NewSharingRepository(dbService.DB)
	sourceRepo := infrastructure.NewSourceRepository(dbService.DB)
	targetRepo := infrastructure.NewTargetRepository(dbService.DB)
	recordRepo := infrastructure.NewRecordRepository(dbService.DB)
	recurringRepo := infrastructure.NewRecurringRepository(dbService.DB)

	sourceService := application.NewSourceService(sourceRepo)
	targetService := application.NewTargetService(targetRepo)

	resolver := application.NewAccessScopeResolver(sharingRepo)
	loader := application.NewPermissionLoader(sharingRepo, sourceService)
	pipeline := application.NewVisibilityPipeline(loader)

	recordService := application.NewRecordService(recordRepo, resolver, loader, pipeline, sourceService, targetService)
	sharingService := application.NewSharingService(sharingRepo, sourceService)
	recurringService := application.NewRecurringService(recurringRepo, recordService, loader)

	recordHandler := interfaces.NewRecordHandler(recordService, respondJSON, respondError)
	sharingHandler := interfaces.NewSharingHandler(sharingService, respondJSON, respondError)
	recurringHandler := interfaces.NewRecurringHandler(recurringService, respondJSON, respondError)
	sourceHandler := interfaces.NewSourceHandler(sourceService, respondJSON, respondError)
	targetHandler := interfaces.NewTargetHandler(targetService, respondJSON, respondError)

	server := &Server{
		dbService:        dbService,
		jwtManager:       jwtManager,
		userHandler:      userHandler,
		recordHandler:    recordHandler,
		sharingHandler:   sharingHandler,
		recurringHandler: recurringHandler,
		sourceHandler:    sourceHandler,
		targetHandler:    targetHandler,
	}
	server.RegisterRoutes()

	if err := StartRecurringScheduler(recurringService); err != nil {
		slog.Error("scheduler didn't start, stopping the app", "error", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, metricsMiddleware(server.router)); err != nil {
		slog.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// StartRecurringScheduler materializes due recurring rules once an hour.
func StartRecurringScheduler(recurringService *application.RecurringService) error {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if err := recurringService.MaterializeDue(time.Now().UTC()); err != nil {
			slog.Error("error materializing recurring rules", "error", err)
		} else {
			slog.Debug("recurring rules materialized")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
