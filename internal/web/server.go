// Package web provides the HTTP server and handlers for course registration.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JonMunkholm/coursereg/internal/config"
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/export"
	"github.com/JonMunkholm/coursereg/internal/session"
	mw "github.com/JonMunkholm/coursereg/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP server for the course registration application.
type Server struct {
	service  *core.Service
	sessions *session.Manager
	db       Pinger
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
	exports  *export.Limiter

	limiters []*rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, sessions *session.Manager, db Pinger, cfg *config.Config) *Server {
	s := &Server{
		service:  service,
		sessions: sessions,
		db:       db,
		cfg:      cfg,
		router:   chi.NewRouter(),
		exports:  export.NewLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWait),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(s.sessions.Middleware)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newLimiter(s.cfg.Rate.RequestsPerMinute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Get("/dashboard", s.handleDashboard)

	// Login is rate limited separately so password guessing stays slow
	// even when the global limit is generous.
	r.Get("/login", s.handleLoginForm)
	if s.cfg.Rate.Enabled {
		r.With(s.newLimiter(s.cfg.Rate.LoginLimit).middleware).Post("/login", s.handleLogin)
	} else {
		r.Post("/login", s.handleLogin)
	}
	r.Get("/logout", s.handleLogout)

	// Categories
	r.Get("/registrar_categoria", s.handleCategoryForm)
	r.Post("/registrar_categoria", s.handleCreateCategory)
	r.Get("/consultar_categorias", s.handleListCategories)
	r.Get("/editar_categoria/{id}", s.handleEditCategoryForm)
	r.Post("/editar_categoria/{id}", s.handleUpdateCategory)
	r.Get("/eliminar_categoria/{id}", s.handleDeleteCategory)
	r.Post("/eliminar_categoria/{id}", s.handleDeleteCategory)

	// Courses
	r.Get("/registrar_curso", s.handleCourseForm)
	r.Post("/registrar_curso", s.handleCreateCourse)
	r.Get("/consultar_cursos", s.handleListCourses)
	r.Get("/editar_curso/{id}", s.handleEditCourseForm)
	r.Post("/editar_curso/{id}", s.handleUpdateCourse)
	r.Get("/eliminar_curso/{id}", s.handleDeleteCourse)
	r.Post("/eliminar_curso/{id}", s.handleDeleteCourse)

	// Participants
	r.Get("/registrar_participante", s.handleParticipantForm)
	r.Post("/registrar_participante", s.handleCreateParticipant)
	r.Get("/consultar_participantes", s.handleListParticipants)
	r.Get("/editar_participante/{id}", s.handleEditParticipantForm)
	r.Post("/editar_participante/{id}", s.handleUpdateParticipant)
	r.Get("/eliminar_participante/{id}", s.handleDeleteParticipant)
	r.Post("/eliminar_participante/{id}", s.handleDeleteParticipant)

	// Enrollments
	r.Get("/inscribir", s.handleEnrollForm)
	r.Post("/inscribir", s.handleEnroll)
	r.Get("/consultar_inscripciones", s.handleListEnrollments)
	r.Get("/editar_inscripcion/{id}", s.handleEditEnrollmentForm)
	r.Post("/editar_inscripcion/{id}", s.handleUpdateEnrollment)
	r.Get("/eliminar_inscripcion/{id}", s.handleDeleteEnrollment)
	r.Post("/eliminar_inscripcion/{id}", s.handleDeleteEnrollment)

	// Report downloads need a logged-in user.
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession("/login"))
		for _, rep := range []core.Report{core.ReportParticipants, core.ReportEnrollments, core.ReportCourses} {
			for _, f := range exportFormats {
				r.Get("/exportar_"+string(rep)+"_"+f.name, s.handleExport(rep, f))
			}
		}
	})
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// once Shutdown has been called.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background limiters. It is
// safe to call from another goroutine than Start.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.stop()
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const csp = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", csp)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) newLimiter(perMinute int) *rateLimiter {
	l := newRateLimiter(perMinute, time.Minute)
	s.limiters = append(s.limiters, l)
	return l
}

// rateLimiter is a fixed-window request counter per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// cleanup drops visitors idle for two windows until stop is called.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if rl.now().Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// allow consumes a token for ip and reports whether the request may proceed.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return rl.rate > 0
	}
	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		if !rl.allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			http.Error(w, "Too many requests. Please wait a minute and try again.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
