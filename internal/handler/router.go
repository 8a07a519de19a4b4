package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/handler/api"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	carHandler *api.CarHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, paymentHandler, carHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	carHandler *api.CarHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		cars := apiGroup.Group("/cars")
		{
			addRoutes(cars, []route{
				{Method: http.MethodGet, Path: "", Handler: carHandler.ListCars},
				{Method: http.MethodGet, Path: "/:id", Handler: carHandler.GetCar},
				{
					Method: http.MethodPost, Path: "",
					Handler: carHandler.CreateCar,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireAuth()},
				},
				{
					Method: http.MethodDelete, Path: "/:id",
					Handler: carHandler.DelistCar,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireAuth()},
				},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMyBookings},
				{Method: http.MethodGet, Path: "/owned", Handler: bookingHandler.ListOwnedBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.ConfirmBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{
					Method: http.MethodPatch, Path: "/:id/payment-status",
					Handler: bookingHandler.OverridePaymentStatus,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)},
				},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/orders", Handler: paymentHandler.CreateOrder},
				{Method: http.MethodPost, Path: "/verify", Handler: paymentHandler.VerifyPayment},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
