package server

import (
	"context"
	"net/http"

	"fix-manufacture-api/internal/handler"
	"fix-manufacture-api/internal/metrics"
	"fix-manufacture-api/internal/middleware"
	"fix-manufacture-api/internal/service"
	"fix-manufacture-api/internal/token"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Catalog  service.CatalogService
	Orders   service.OrderService
	Users    service.UserService
	Payments service.PaymentService
	Roles    service.RoleResolver
	Tokens   token.Service
}

type Server struct {
	echo           *echo.Echo
	guard          *middleware.Guard
	gatherer       prometheus.Gatherer
	catalogHandler *handler.CatalogHandler
	orderHandler   *handler.OrderHandler
	userHandler    *handler.UserHandler
	paymentHandler *handler.PaymentHandler
}

func NewServer(services Services, recorder metrics.Recorder, gatherer prometheus.Gatherer, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	s := &Server{
		echo:           e,
		guard:          middleware.NewGuard(services.Tokens, services.Roles, recorder, log),
		gatherer:       gatherer,
		catalogHandler: handler.NewCatalogHandler(services.Catalog),
		orderHandler:   handler.NewOrderHandler(services.Orders),
		userHandler:    handler.NewUserHandler(services.Users),
		paymentHandler: handler.NewPaymentHandler(services.Payments),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	authenticated := middleware.Chain(s.guard.Authenticated())
	ownerOrSelf := middleware.Chain(s.guard.Authenticated(), s.guard.OwnerOrSelf("email"))
	admin := middleware.Chain(s.guard.Authenticated(), s.guard.Admin())

	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Server is running")
	})
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	// -------- catalog --------
	s.echo.GET("/parts", s.catalogHandler.ListParts)
	s.echo.GET("/parts/:id", s.catalogHandler.GetPart)
	s.echo.PUT("/parts/:id", s.catalogHandler.UpdateQuantity)
	s.echo.POST("/parts", s.catalogHandler.CreatePart, admin)
	s.echo.GET("/reviews", s.catalogHandler.ListReviews)
	s.echo.POST("/reviews", s.catalogHandler.AddReview)

	// -------- orders --------
	s.echo.POST("/orders", s.orderHandler.PlaceOrder)
	s.echo.GET("/orders", s.orderHandler.ListOrders, ownerOrSelf)
	s.echo.GET("/orders/:id", s.orderHandler.GetOrder, authenticated)
	s.echo.PATCH("/orders/:id", s.orderHandler.ConfirmPayment, authenticated)
	s.echo.DELETE("/orders/:id", s.orderHandler.DeleteOrder, authenticated)
	s.echo.GET("/all-orders", s.orderHandler.ListAllOrders, admin)

	// -------- users --------
	s.echo.PUT("/users/:email", s.userHandler.UpsertUser)
	s.echo.GET("/admin/:email", s.userHandler.IsAdmin)
	s.echo.PUT("/users/admin/:email", s.userHandler.Promote, admin)
	s.echo.GET("/users", s.userHandler.ListUsers, admin)

	// -------- payment --------
	s.echo.POST("/create-payment-intent", s.paymentHandler.CreatePaymentIntent, authenticated)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
