package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/api/handler"
	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/api/middleware"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
)

// Deps carries everything the screen shell serves.
type Deps struct {
	Session   ports.SessionService
	Employees ports.EmployeeService
	Home      ports.HomeService
	Bookings  ports.BookingService
	Chat      ports.ChatService
	Profile   ports.ProfileService

	Navigation *navigation.Router
	Health     map[string]handler.Pinger

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil
	// means the prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	promMiddleware, err := echoprometheus.MiddlewareConfig{
		Namespace:                 "homeservices",
		Subsystem:                 "http",
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(promMiddleware)
	e.Use(requestLogger(log))

	// --- Screen teardown ---
	nav := handler.NewNavigator(d.Navigation, log)
	nav.OnLeave(navigation.RouteTracking, func(entry navigation.Entry) {
		if err := d.Bookings.StopTracking(trackingID(entry)); err == nil {
			metrics.ActiveTrackings.Dec()
		}
	})
	nav.OnLeave(navigation.RouteChat, func(entry navigation.Entry) {
		_ = d.Chat.Close(conversationID(entry))
	})
	nav.OnLeave(navigation.RouteHome, func(navigation.Entry) {
		d.Home.CloseHome()
	})

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(d.Session, nav)
	employeeHandler := handler.NewEmployeeHandler(d.Employees, nav)
	catalogHandler := handler.NewCatalogHandler(d.Home, d.Session, nav)
	bookingHandler := handler.NewBookingHandler(d.Bookings, d.Home, nav)
	chatHandler := handler.NewChatHandler(d.Chat, d.Home, nav)
	chatStream := handler.NewChatStream(d.Chat, log)
	profileHandler := handler.NewProfileHandler(d.Profile)
	navHandler := handler.NewNavHandler(nav)
	healthHandler := handler.NewHealthHandler(d.Health)

	// The customer and employee sessions are independent, so each screen
	// only looks at its own marker.
	customer := []echo.MiddlewareFunc{
		middleware.Identify(middleware.Source{Role: middleware.RoleCustomer, Checker: d.Session}),
		middleware.RBAC(middleware.RoleCustomer),
	}
	employee := []echo.MiddlewareFunc{
		middleware.Identify(middleware.Source{Role: middleware.RoleEmployee, Checker: d.Employees}),
		middleware.RBAC(middleware.RoleEmployee),
	}

	// --- Session ---
	e.GET("/session", sessionHandler.Current)
	e.POST("/session/continue", sessionHandler.Continue)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/signup", sessionHandler.Signup)
	e.POST("/session/logout", sessionHandler.Logout, customer...)

	// --- Employee ---
	e.POST("/employee/open", employeeHandler.Open)
	e.POST("/employee/signup", employeeHandler.Signup)
	e.POST("/employee/login", employeeHandler.Login)
	e.GET("/employee/dashboard", employeeHandler.Dashboard, employee...)
	e.POST("/employee/logout", employeeHandler.Logout, employee...)

	// --- Catalog (public) ---
	e.GET("/services", catalogHandler.Services)

	// --- Customer screens ---
	e.GET("/home", catalogHandler.Home, customer...)
	e.GET("/home/banner", catalogHandler.Banner, customer...)
	e.POST("/services/:id/open", catalogHandler.OpenService, customer...)
	e.POST("/services/:id/providers/:providerId/open", catalogHandler.OpenProvider, customer...)

	e.POST("/trackings", bookingHandler.StartTracking, customer...)
	e.GET("/trackings/:id", bookingHandler.Tracking, customer...)
	e.POST("/trackings/:id/confirm", bookingHandler.Confirm, customer...)
	e.GET("/bookings", bookingHandler.List, customer...)
	e.DELETE("/bookings/:index", bookingHandler.Cancel, customer...)

	e.POST("/chats", chatHandler.Open, customer...)
	e.GET("/chats/:id/messages", chatHandler.Messages, customer...)
	e.POST("/chats/:id/messages", chatHandler.Send, customer...)
	e.POST("/chats/:id/media", chatHandler.Media, customer...)
	e.POST("/chats/:id/documents", chatHandler.Document, customer...)
	e.POST("/chats/:id/recording", chatHandler.StartRecording, customer...)
	e.POST("/chats/:id/recording/stop", chatHandler.StopRecording, customer...)
	e.GET("/chats/:id/ws", chatStream.Serve, customer...)

	e.GET("/profile", profileHandler.Get, customer...)
	e.PATCH("/profile", profileHandler.Update, customer...)
	e.POST("/profile/picture", profileHandler.Picture, customer...)

	// --- Navigation ---
	e.POST("/nav", navHandler.Navigate)
	e.POST("/nav/back", navHandler.Back)

	// --- Health probes and metrics (no session required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))

	return e, nil
}

// requestLogger feeds echo's access log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func trackingID(e navigation.Entry) string {
	v, _ := e.Params["trackingId"].(string)
	return v
}

func conversationID(e navigation.Entry) string {
	v, _ := e.Params["conversationId"].(string)
	return v
}
