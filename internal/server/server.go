// Package server provides the HTTP REST API for the careers-page builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/cache"
	"github.com/jonathan/careers-builder/internal/config"
	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/server/middleware"
	"github.com/jonathan/careers-builder/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             *db.DB
	logger         *zap.Logger
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	passwordConfig *config.PasswordConfig
	accountService *AccountService
	authHandler    *AuthHandler
	pageCache      cache.PageCache
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Logger      *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:     database,
		logger: logger,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.passwordConfig = passwordConfig
	s.accountService = NewAccountService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.accountService, s.jwtService)

	// Optional Redis page cache; without it every public request renders.
	cacheConfig, err := config.NewCacheConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create cache config: %w", err)
	}
	if cacheConfig.Enabled() {
		redisCache, err := cache.NewRedis(context.Background(), cacheConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.pageCache = redisCache
		logger.Info("page cache enabled", zap.String("addr", cacheConfig.Addr))
	} else {
		s.pageCache = cache.Noop{}
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Editing surfaces sit behind the auth middleware;
// signup, login, health and the public page do not.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	// Public surface
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /{slug}/careers", s.handlePublicPage)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Editor surface: draft bundle, publish lifecycle, preview
	mux.Handle("GET /api/companies/{slug}", authed(http.HandlerFunc(s.handleGetBundle)))
	mux.Handle("PUT /api/companies/{slug}", authed(http.HandlerFunc(s.handleSaveBundle)))
	mux.Handle("POST /api/companies/{slug}/publish", authed(http.HandlerFunc(s.handlePublish)))
	mux.Handle("POST /api/companies/{slug}/unpublish", authed(http.HandlerFunc(s.handleUnpublish)))
	mux.Handle("GET /api/companies/{slug}/preview", authed(http.HandlerFunc(s.handlePreview)))

	// Membership
	mux.Handle("GET /api/companies/{slug}/team", authed(http.HandlerFunc(s.handleGetTeam)))
	mux.Handle("GET /api/companies/{slug}/users", authed(http.HandlerFunc(s.handleListUsers)))
	mux.Handle("POST /api/companies/{slug}/users", authed(http.HandlerFunc(s.handleAddUser)))
	mux.Handle("PATCH /api/companies/{slug}/users/{user_id}", authed(http.HandlerFunc(s.handleUpdateUserRole)))
	mux.Handle("DELETE /api/companies/{slug}/users/{user_id}", authed(http.HandlerFunc(s.handleDeleteUser)))

	// Comments
	mux.Handle("GET /api/sections/{anchor}/comments", authed(http.HandlerFunc(s.handleListComments)))
	mux.Handle("POST /api/sections/{anchor}/comments", authed(http.HandlerFunc(s.handleCreateComment)))

	// Bulk import
	mux.Handle("POST /api/jobs/bulk-upload", authed(http.HandlerFunc(s.handleBulkUpload)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if closer, ok := s.pageCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSignup handles tenant signup requests.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Signup(w, r)
}

// handleLogin handles collaborator login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
