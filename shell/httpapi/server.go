package httpapi

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

const (
	defaultRequestTimeout = 5 * time.Second

	headerRequestID = "X-Request-ID"

	logMsgRequest       = "http: request handled"
	logMsgInternalError = "http: request failed with internal error"
	logAttrRequestID    = "request_id"
	logAttrMethod       = "method"
	logAttrPath         = "path"
	logAttrStatus       = "status"
	logAttrDurationMS   = "duration_ms"
	logAttrReason       = "reason"
)

var (
	jsonAPI  = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Server is the HTTP front of the lending service.
type Server struct {
	app            *fiber.App
	handlers       Handlers
	logger         shell.Logger
	clock          func() time.Time
	defaultTopN    int
	requestTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and failure logs.
func WithLogger(logger shell.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces time.Now as the source of lend, return and overdue timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithDefaultTopN sets the usage report title limit used when the request names none.
func WithDefaultTopN(topN int) Option {
	return func(s *Server) {
		s.defaultTopN = topN
	}
}

// WithRequestTimeout bounds the context every route handler runs with.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.requestTimeout = timeout
		}
	}
}

// NewServer creates the fiber app with all routes registered.
func NewServer(handlers Handlers, opts ...Option) *Server {
	s := &Server{
		handlers:       handlers,
		clock:          time.Now,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		JSONEncoder:           jsonAPI.Marshal,
		JSONDecoder:           jsonAPI.Unmarshal,
		DisableStartupMessage: true,
		Immutable:             true,
		UnescapePath:          true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(s.requestContext)
	s.routes()

	return s
}

// App exposes the fiber app, e.g. for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// requestContext assigns a request id, applies the request timeout and logs the outcome.
func (s *Server) requestContext(c *fiber.Ctx) error {
	id := c.Get(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(headerRequestID, id)

	ctx, cancel := context.WithTimeout(c.UserContext(), s.requestTimeout)
	defer cancel()
	c.SetUserContext(ctx)

	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = StatusFor(err)
	}

	if s.logger != nil {
		s.logger.Info(
			logMsgRequest,
			logAttrRequestID, id,
			logAttrMethod, c.Method(),
			logAttrPath, c.Path(),
			logAttrStatus, status,
			logAttrDurationMS, durationToMilliseconds(time.Since(start)),
		)
	}

	return err
}

func (s *Server) now() time.Time {
	return s.clock()
}

func (s *Server) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{Code: status, Status: statusSuccess, Message: message, Data: data})
}

func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
