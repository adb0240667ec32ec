package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barovia-dm/tracker/internal/alchemy"
	"github.com/barovia-dm/tracker/internal/auth"
	"github.com/barovia-dm/tracker/internal/campaign"
	"github.com/barovia-dm/tracker/internal/database"
	"github.com/barovia-dm/tracker/internal/handler"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/metrics"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	sessions        *scs.SessionManager
	alchemyService  alchemy.Service
	campaignService campaign.Service
	authService     auth.Service
}

// NewServer creates a new Server instance. Everything under /api/v1 except
// login sits behind the session gate; health, readiness and metrics stay open
// for probes and scraping.
func NewServer(port int, dbPool database.Pool, sessions *scs.SessionManager, alchemySvc alchemy.Service, campaignSvc campaign.Service, authSvc auth.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(sessions.LoadAndSave)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint for Prometheus scraping
	r.Handle("/metrics", promhttp.Handler())

	alchemyHandler := handler.NewAlchemyHandler(alchemySvc)
	campaignHandler := handler.NewCampaignHandler(campaignSvc)
	authHandler := handler.NewAuthHandler(authSvc, sessions)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(handler.RequireAuth(sessions))

			r.Post("/logout", authHandler.Logout)

			r.Route("/alchemy", func(r chi.Router) {
				r.Get("/elements", alchemyHandler.GetElements)
				r.Post("/elements", alchemyHandler.UpdateElement)
				r.Get("/materials", alchemyHandler.GetMaterials)
				r.Post("/materials", alchemyHandler.RegisterMaterial)
				r.Post("/craft", alchemyHandler.Craft)
				r.Post("/extract", alchemyHandler.Extract)
				r.Get("/recipes", alchemyHandler.GetRecipes)
				r.Post("/recipes", alchemyHandler.SaveRecipe)
				r.Delete("/recipes", alchemyHandler.DeleteRecipe)
			})

			r.Route("/characters", func(r chi.Router) {
				r.Get("/", campaignHandler.GetCharacters)
				r.Post("/", campaignHandler.CreateCharacter)
				r.Get("/{id}", campaignHandler.GetCharacter)
				r.Put("/{id}", campaignHandler.UpdateCharacter)
			})

			r.Route("/quests", func(r chi.Router) {
				r.Get("/", campaignHandler.GetQuests)
				r.Post("/", campaignHandler.CreateQuest)
				r.Get("/{id}", campaignHandler.GetQuest)
				r.Put("/{id}", campaignHandler.UpdateQuest)
			})

			r.Route("/npcs", func(r chi.Router) {
				r.Get("/", campaignHandler.GetNpcs)
				r.Post("/", campaignHandler.CreateNpc)
				r.Get("/{id}", campaignHandler.GetNpc)
				r.Put("/{id}", campaignHandler.UpdateNpc)
			})

			r.Route("/lore", func(r chi.Router) {
				r.Get("/", campaignHandler.GetLore)
				r.Post("/", campaignHandler.CreateLoreEntry)
				r.Put("/{id}", campaignHandler.UpdateLoreEntry)
			})

			r.Route("/currency", func(r chi.Router) {
				r.Get("/", campaignHandler.GetCoins)
				r.Put("/", campaignHandler.UpdateCoins)
			})

			r.Route("/equipment", func(r chi.Router) {
				r.Get("/", campaignHandler.GetEquipment)
				r.Post("/", campaignHandler.AddEquipment)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:          dbPool,
		sessions:        sessions,
		alchemyService:  alchemySvc,
		campaignService: campaignSvc,
		authService:     authSvc,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probe and scrape endpoints would flood the log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
