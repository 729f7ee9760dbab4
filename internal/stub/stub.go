// Package stub is a local stand-in for the Triply API, close enough for
// development and integration tests: it issues real bearer tokens, enforces
// them, and answers trip fetches in the server naming convention so the
// client's normalization path gets exercised. It generates canned
// itineraries, not real ones.
package stub

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/triply/triply-go/internal/logger"
)

// loginRateLimit bounds credential guessing: 5 attempts per minute per IP.
const loginRateLimit = "5-M"

type storedTrip struct {
	id          string
	destination string
	departDate  string
	returnDate  string
	createdAt   time.Time
	payload     map[string]any
}

// Server is the in-memory stub API.
type Server struct {
	logger      *zap.Logger
	secret      []byte
	frontendURL string

	mu    sync.Mutex
	users map[string]string
	trips map[string]*storedTrip
	order []string
}

// New creates a stub server. The signing secret is generated per instance,
// so tokens do not survive restarts; that is the point of a stub.
func New(log *zap.Logger, frontendURL string) *Server {
	return &Server{
		logger:      log,
		secret:      []byte(uuid.NewString()),
		frontendURL: frontendURL,
		users:       make(map[string]string),
		trips:       make(map[string]*storedTrip),
	}
}

// Handler builds the full middleware and routing stack.
func (s *Server) Handler() (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("triply-stub"))
	r.Use(s.requestID)
	r.Use(s.logging)

	loginLimiter, err := newLoginLimiter()
	if err != nil {
		return nil, err
	}

	r.HandleFunc("/api/Auth/register", s.handleRegister).Methods(http.MethodPost)
	r.Handle("/api/Auth/login", loginLimiter(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/api/Advisor", s.handleCreateTrip).Methods(http.MethodPost)
	authed.HandleFunc("/api/Trips", s.handleListTrips).Methods(http.MethodGet)
	authed.HandleFunc("/api/Trips/{id}", s.handleGetTrip).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{s.frontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Traceparent"},
	})
	return c.Handler(r), nil
}

func newLoginLimiter() (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(loginRateLimit)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlibmw.NewMiddleware(instance)
	return mw.Handler, nil
}

// requestID stamps every response with a tracing id the client can report.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("stub_request",
			zap.String("method", r.Method),
			zap.String("path", logger.SanitizePath(r.URL.Path)),
			zap.Int("status_code", wrapped.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
