package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	httpHandlers "github.com/11JOB/11JOB-frontend/internal/adapters/http"
	"github.com/11JOB/11JOB-frontend/internal/adapters/remote"
	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/config"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/session"

	_ "github.com/11JOB/11JOB-frontend/docs"
)

// Server represents the gateway HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	sessions *session.Store
	registry *prometheus.Registry
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance and wires the full stack: session
// store, backend client, services, handlers.
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger,
		registry: prometheus.NewRegistry(),
	}

	var metricsReg prometheus.Registerer
	if cfg.Metrics.Enabled {
		metricsReg = server.registry
	}

	// Session store and backend client
	sessions := session.New(cfg.Session.File)
	server.sessions = sessions

	client, err := remote.New(cfg.Remote, sessions, metricsReg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	scheduleAPI := remote.NewScheduleClient(client)
	jobAPI := remote.NewJobClient(client)
	portfolioAPI := remote.NewPortfolioClient(client)
	userAPI := remote.NewUserClient(client)

	// Initialize services
	scheduleService := services.NewScheduleService(scheduleAPI, appLogger)
	draftService := services.NewDraftService(scheduleAPI, appLogger)
	jobService := services.NewJobService(jobAPI, appLogger)
	portfolioService := services.NewPortfolioService(portfolioAPI, appLogger)
	sessionService := services.NewSessionService(userAPI, sessions, appLogger)

	// Initialize handlers
	scheduleHandler := httpHandlers.NewScheduleHandler(scheduleService, appLogger)
	draftHandler := httpHandlers.NewDraftHandler(draftService, scheduleService, appLogger)
	jobHandler := httpHandlers.NewJobHandler(jobService, appLogger)
	portfolioHandler := httpHandlers.NewPortfolioHandler(portfolioService, appLogger)
	authHandler := httpHandlers.NewAuthHandler(sessionService, appLogger)

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(scheduleHandler, draftHandler, jobHandler, portfolioHandler, authHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(scheduleHandler *httpHandlers.ScheduleHandler, draftHandler *httpHandlers.DraftHandler, jobHandler *httpHandlers.JobHandler, portfolioHandler *httpHandlers.PortfolioHandler, authHandler *httpHandlers.AuthHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/session", authHandler.GetSession)
	authGroup.POST("/join", authHandler.Join)
	authGroup.POST("/email/send", authHandler.SendEmailCode)
	authGroup.POST("/email/check", authHandler.CheckEmailCode)
	authGroup.PUT("/password", authHandler.ChangePassword)
	authGroup.DELETE("/account", authHandler.DeleteAccount)

	// Schedule routes
	scheduleGroup := v1.Group("/schedules")
	scheduleGroup.GET("", scheduleHandler.ListSchedules)
	scheduleGroup.POST("", scheduleHandler.CreateSchedule)
	scheduleGroup.GET("/view", scheduleHandler.GetView)
	scheduleGroup.GET("/:id", scheduleHandler.GetSchedule)
	scheduleGroup.DELETE("/:id", scheduleHandler.DeleteSchedule)

	// Edit session routes
	scheduleGroup.POST("/:id/edit", draftHandler.BeginEdit)
	scheduleGroup.GET("/:id/edit", draftHandler.GetDraft)
	scheduleGroup.PUT("/:id/edit", draftHandler.UpdateDraft)
	scheduleGroup.DELETE("/:id/edit", draftHandler.CancelEdit)
	scheduleGroup.POST("/:id/edit/files", draftHandler.AddFiles)
	scheduleGroup.DELETE("/:id/edit/files/:stagingKey", draftHandler.RemoveFile)
	scheduleGroup.POST("/:id/edit/files/:fileId/toggle-delete", draftHandler.ToggleFileDeletion)
	scheduleGroup.POST("/:id/edit/commit", draftHandler.CommitEdit)

	// Job posting routes
	v1.GET("/jobs", jobHandler.SearchJobs)

	// Portfolio routes
	portfolioGroup := v1.Group("/portfolio")
	portfolioGroup.GET("", portfolioHandler.GetPortfolio)
	portfolioGroup.POST("", portfolioHandler.CreatePortfolio)
	portfolioGroup.PUT("", portfolioHandler.UpdatePortfolio)
	portfolioGroup.GET("/projects", portfolioHandler.ListProjects)
	portfolioGroup.POST("/projects", portfolioHandler.CreateProject)
	portfolioGroup.PUT("/projects/:id", portfolioHandler.UpdateProject)
	portfolioGroup.DELETE("/projects/:id", portfolioHandler.DeleteProject)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	s.registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	// The gateway holds no local resources that can fail to come up; it is
	// ready as soon as it listens. Backend reachability is reported per
	// request, not here.
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if s, ok := msg.(string); ok {
			msg = map[string]string{"message": s}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
