package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/carehub/patient-portal/docs"
	"github.com/carehub/patient-portal/internal/api/handler"
	"github.com/carehub/patient-portal/internal/api/middleware"
	"github.com/carehub/patient-portal/internal/core/domain"
	"github.com/carehub/patient-portal/internal/core/ports"
	"github.com/carehub/patient-portal/internal/infrastructure/http/handlers"
)

// Deps holds everything the router needs. Guard is optional; without it the
// Idempotency-Key header is ignored.
type Deps struct {
	Accounts ports.AccountService
	Patients ports.PatientService
	Guard    middleware.SubmissionGuard

	JWTSecret        string
	ProtectDashboard bool
	SecureCookie     bool
	// LoginRate is in requests per second per client IP; 0 disables the limiter.
	LoginRate  float64
	LoginBurst int

	Readiness []handlers.Dependency
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Rate limiting keys on the peer address; X-Forwarded-For is not trusted.
	e.IPExtractor = echo.ExtractIPDirect()

	validator := handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))

	authHandler := handler.NewAuthHandler(d.Accounts, validator, d.SecureCookie)
	patientHandler := handler.NewPatientHandler(d.Patients, validator)
	authMiddleware := middleware.Auth(d.JWTSecret)

	guarded := func(scope string) []echo.MiddlewareFunc {
		if d.Guard == nil {
			return nil
		}
		return []echo.MiddlewareFunc{middleware.Idempotency(d.Guard, scope, d.Logger)}
	}

	limited := func() []echo.MiddlewareFunc {
		if d.LoginRate <= 0 {
			return nil
		}
		return []echo.MiddlewareFunc{middleware.LoginRateLimit(rate.Limit(d.LoginRate), d.LoginBurst)}
	}

	// --- Account routes ---
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register, guarded("register")...)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login, limited()...)
	e.POST("/password", authHandler.ChangePassword, authMiddleware)

	// --- Patient routes ---
	patients := e.Group("/patient")
	patients.GET("/register", patientHandler.ShowRegister)
	patients.POST("/register", patientHandler.Register, guarded("patient-register")...)
	if d.ProtectDashboard {
		patients.GET("/dashboard", patientHandler.Dashboard, authMiddleware, middleware.RBAC(domain.RolePatient))
	} else {
		patients.GET("/dashboard", patientHandler.Dashboard)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Operational endpoints ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
