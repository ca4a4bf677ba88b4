package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanderinggate/merchant-service/internal/database"
	"github.com/wanderinggate/merchant-service/internal/handler"
	"github.com/wanderinggate/merchant-service/internal/inventory"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/merchant"
	"github.com/wanderinggate/merchant-service/internal/metrics"
	"github.com/wanderinggate/merchant-service/internal/profile"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	merchantService  merchant.Service
	inventoryService inventory.Service
	profileService   profile.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, merchantService merchant.Service, inventoryService inventory.Service, profileService profile.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/merchants", func(r chi.Router) {
			r.Get("/", handler.HandleGetMerchants(merchantService))
			r.Post("/", handler.HandleCreateMerchant(merchantService))
			r.Get("/type/{type}", handler.HandleGetMerchantsByType(merchantService))
			r.Get("/location/{location}", handler.HandleGetMerchantsByLocation(merchantService))

			r.Route("/{merchantID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetMerchantByID(merchantService))
				r.Put("/", handler.HandleUpdateMerchant(merchantService))
				r.Get("/inventory", handler.HandleGetMerchantInventory(merchantService))
				r.Post("/inventory/quantity", handler.HandleUpdateItemQuantity(merchantService))
				r.Post("/buy", handler.HandleBuyItem(merchantService))
				r.Post("/sell", handler.HandleSellItem(merchantService))
				r.Post("/restock", handler.HandleRestockMerchant(merchantService))
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", handler.HandleGetProfile(profileService))
			r.Post("/", handler.HandleCreateProfile(profileService))
			r.Get("/reputations", handler.HandleGetReputations(profileService))
		})

		r.Get("/inventory", handler.HandleGetInventory(inventoryService))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		merchantService:  merchantService,
		inventoryService: inventoryService,
		profileService:   profileService,
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

		// Skip logging for health check endpoints and metrics
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
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for debug logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
