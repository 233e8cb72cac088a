package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Browser redirect target after OAuth callbacks
	frontendURL   string
	sealer        *cookieSealer
	secureCookies bool

	// Services
	authService       driving.AuthService
	userService       driving.UserService
	connectionService driving.ConnectionService
	githubService     driving.GitHubService
	knowledgeService  driving.KnowledgeService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	Version      string
	FrontendURL  string
	CookieSecret string
	// SecureCookies should be false only in local development
	SecureCookies bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:          "0.0.0.0",
		Port:          8080,
		Version:       "dev",
		FrontendURL:   "http://localhost:3000",
		SecureCookies: true,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	connectionService driving.ConnectionService,
	githubService driving.GitHubService,
	knowledgeService driving.KnowledgeService,
	db Pinger,
	redisClient Pinger, // can be nil
) (*Server, error) {
	sealer, err := newCookieSealer(cfg.CookieSecret)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		frontendURL:       strings.TrimRight(cfg.FrontendURL, "/"),
		sealer:            sealer,
		secureCookies:     cfg.SecureCookies,
		authService:       authService,
		userService:       userService,
		connectionService: connectionService,
		githubService:     githubService,
		knowledgeService:  knowledgeService,
		db:                db,
		redisClient:       redisClient,
	}

	// Recovery sits outermost so panics anywhere below are caught;
	// CORS answers preflights before they hit the router.
	cors := NewCORSMiddleware([]string{s.frontendURL})
	handler := NewRecoveryMiddleware().Handler(
		cors.Handler(
			NewLoggingMiddleware().Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Sign-in endpoints (public; the callback receives provider redirects)
	s.router.HandleFunc("GET /api/v1/auth/{provider}/signin", s.handleSignIn)
	s.router.HandleFunc("GET /api/v1/auth/{provider}/callback", s.handleSignInCallback)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("POST /api/v1/auth/logout-all",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogoutAll)))

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))
	s.router.Handle("PATCH /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateMe)))
	s.router.Handle("DELETE /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteMe)))

	// GitHub connection endpoints. The callback is public because it
	// receives the redirect from GitHub; the flow cookie carries the
	// user binding.
	s.router.Handle("GET /api/v1/github/connect",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGitHubConnect)))
	s.router.HandleFunc("GET /api/v1/github/callback", s.handleGitHubCallback)
	s.router.Handle("GET /api/v1/github/status",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGitHubStatus)))
	s.router.Handle("DELETE /api/v1/github/disconnect",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGitHubDisconnect)))

	// GitHub API endpoints (authenticated, require a connection)
	s.router.Handle("GET /api/v1/github/repositories",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListRepositories)))
	s.router.Handle("POST /api/v1/github/workflow",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateWorkflowPR)))

	// Knowledge base endpoints (authenticated)
	s.router.Handle("GET /api/v1/knowledge",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListKnowledge)))
	s.router.Handle("POST /api/v1/knowledge",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateKnowledge)))
	s.router.Handle("GET /api/v1/knowledge/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetKnowledge)))
	s.router.Handle("PUT /api/v1/knowledge/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateKnowledge)))
	s.router.Handle("DELETE /api/v1/knowledge/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteKnowledge)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
