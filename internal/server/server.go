package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	db              *db.DB
	llmClient       llm.Client
	sessions        *SessionStore
	exporter        *export.Pipeline
	enhancer        *enhance.Service
	builderEnhancer resume.Enhancer
	rateLimiter     *ratelimit.Limiter
	jwtService      *JWTService
	authHandler     *AuthHandler
	validate        *validator.Validate
	corsOrigins     []string
	defaultTemplate string
}

// Deps are the collaborators a Server is built from. Nil fields get defaults:
// no Users disables auth, no Rasterizer means headless Chrome, no Enhancer
// means the rule-based rewrites.
type Deps struct {
	Users      UserStore
	JWT        *config.JWTConfig
	Password   *config.PasswordConfig
	Rasterizer export.Rasterizer
	Enhancer   enhance.Enhancer
	RateLimit  *ratelimit.Config
}

// New creates a server from cfg and deps without touching the network.
func New(cfg config.Config, deps Deps) (*Server, error) {
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy := resume.AllowEmpty
	if cfg.KeepLastEntry {
		policy = resume.KeepLastEntry
	}

	rasterizer := deps.Rasterizer
	if rasterizer == nil {
		chrome := export.NewChromeRasterizer(config.Duration(cfg.ExportTimeout, export.DefaultTimeout), cfg.Verbose)
		if cfg.ChromePath != "" {
			chrome.ExecPath = cfg.ChromePath
		}
		rasterizer = chrome
	}

	textEnhancer := deps.Enhancer
	if textEnhancer == nil {
		textEnhancer = enhance.NewRuleEnhancer()
	}
	service := enhance.NewService(textEnhancer)

	rateCfg := deps.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig()
	}

	s := &Server{
		sessions:        NewSessionStore(config.Duration(cfg.SessionIdleTTL, 30*time.Minute), policy),
		exporter:        export.NewPipeline(rasterizer, cfg.Verbose),
		enhancer:        service,
		builderEnhancer: enhance.Local{Service: service},
		rateLimiter:     ratelimit.NewLimiter(rateCfg),
		validate:        validator.New(),
		corsOrigins:     cfg.CORSOrigins,
		defaultTemplate: cfg.TemplateID,
	}

	var userService *UserService
	if deps.Users != nil && deps.JWT != nil && deps.Password != nil {
		userService = NewUserService(deps.Users, deps.Password)
		s.jwtService = NewJWTService(deps.JWT)
	} else {
		log.Printf("[server] no user database configured, auth routes will answer 503")
	}
	s.authHandler = NewAuthHandler(userService, s.jwtService)

	s.handler = s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // exports can take a while
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Open builds a production server: it connects and migrates the user database
// when DATABASE_URL is set and uses Gemini for enhancement when an API key is set.
func Open(ctx context.Context, cfg config.Config) (*Server, error) {
	var deps Deps
	var database *db.DB

	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		if deps.Password, err = config.NewPasswordConfig(); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		if deps.JWT, err = config.NewJWTConfig(); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		deps.Users = database
	}

	var client llm.Client
	if cfg.APIKey != "" {
		var err error
		client, err = llm.NewClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
		if err != nil {
			if database != nil {
				database.Close()
			}
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		timeout := config.Duration(cfg.EnhanceTimeout, 20*time.Second)
		deps.Enhancer = enhance.NewFallbackEnhancer(enhance.NewLLMEnhancer(client), timeout)
	}

	s, err := New(cfg, deps)
	if err != nil {
		if database != nil {
			database.Close()
		}
		if client != nil {
			_ = client.Close()
		}
		return nil, err
	}
	s.db = database
	s.llmClient = client
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/templates", s.handleTemplates)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /api/auth/signin", s.authHandler.Signin)
	mux.Handle("GET /api/auth/me", s.requireAuth(http.HandlerFunc(s.authHandler.Me)))
	mux.Handle("PUT /api/auth/password", s.requireAuth(http.HandlerFunc(s.authHandler.UpdatePassword)))

	// Text enhancement
	mux.HandleFunc("POST /api/text-enhancer/enhance", s.handleEnhanceText)
	mux.HandleFunc("POST /api/text-enhancer/enhance-resume-section", s.handleEnhanceSection)

	// Builder sessions
	mux.HandleFunc("POST /api/builder/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/builder/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/builder/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /api/builder/sessions/{id}/resume", s.handleImportResume)
	mux.HandleFunc("PUT /api/builder/sessions/{id}/template", s.handleSetTemplate)
	mux.HandleFunc("PATCH /api/builder/sessions/{id}/personal", s.handleUpdatePersonal)
	mux.HandleFunc("GET /api/builder/sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("GET /api/builder/sessions/{id}/preview.json", s.handlePreviewJSON)
	mux.HandleFunc("POST /api/builder/sessions/{id}/enhance", s.handleBuilderEnhance)
	mux.HandleFunc("POST /api/builder/sessions/{id}/export", s.handleExport)
	mux.HandleFunc("POST /api/builder/sessions/{id}/{section}", s.handleAddEntry)
	mux.HandleFunc("PATCH /api/builder/sessions/{id}/{section}/{entryId}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /api/builder/sessions/{id}/{section}/{entryId}", s.handleRemoveEntry)

	return ratelimit.Middleware(s.rateLimiter)(s.withLogging(s.withCORS(mux)))
}

// requireAuth wraps next in JWT validation when auth is configured.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next // AuthHandler answers 503 itself
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// Handler returns the full middleware-wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases background goroutines and connections.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.sessions.Stop()
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("[server] closing LLM client: %v", err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Export-Pages")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(origin string) string {
	if slices.Contains(s.corsOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.ContainsFunc(s.corsOrigins, func(o string) bool { return strings.EqualFold(o, origin) }) {
		return origin
	}
	return ""
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"auth":     s.jwtService != nil,
	}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, status)
}
