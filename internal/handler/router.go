package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"driveshare/internal/domain/user"
	"driveshare/internal/handler/api"
	"driveshare/internal/handler/middleware"
	"driveshare/internal/pkg/config"
	"driveshare/internal/pkg/metrics"
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
	authHandler *api.AuthHandler,
	vehicleHandler *api.VehicleHandler,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, vehicleHandler, bookingHandler, availabilityHandler, authMiddleware)
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
	authHandler *api.AuthHandler,
	vehicleHandler *api.VehicleHandler,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	metrics.Register()

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		{
			// Catalog, availability calendar and conflict pre-flight are
			// public: a renter browses before logging in.
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: vehicleHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: vehicleHandler.Get},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: availabilityHandler.ReservedIntervals},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: availabilityHandler.DayHours},
				{Method: http.MethodPost, Path: "/:id/availability/check", Handler: availabilityHandler.CheckSelection},
			})

			owner := vehicles.Group("")
			owner.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleOwner, user.RoleAdmin))
			addRoutes(owner, []route{
				{Method: http.MethodPost, Path: "", Handler: vehicleHandler.Register},
				{Method: http.MethodGet, Path: "/mine", Handler: vehicleHandler.ListMine},
			})

			admin := vehicles.Group("")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/pending", Handler: vehicleHandler.ListPending},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: vehicleHandler.Approve},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: vehicleHandler.Reject},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleRenter)}},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.Confirm},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
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
