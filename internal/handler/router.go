package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rentwheels/internal/handler/api"
	"rentwheels/internal/handler/middleware"
	"rentwheels/internal/pkg/config"
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
	vehicleHandler *api.VehicleHandler,
	sessionHandler *api.SessionHandler,
	draftHandler *api.DraftHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, vehicleHandler, sessionHandler, draftHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	vehicleHandler *api.VehicleHandler,
	sessionHandler *api.SessionHandler,
	draftHandler *api.DraftHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// The catalog is browsable without signing in.
		vehicles := apiGroup.Group("/vehicles")
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: vehicleHandler.ListVehicles},
				{Method: http.MethodGet, Path: "/:id", Handler: vehicleHandler.GetVehicle},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: vehicleHandler.CheckAvailability},
			})
		}

		sessions := apiGroup.Group("/sessions")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: sessionHandler.StartSession},
				{Method: http.MethodPost, Path: "/resume", Handler: sessionHandler.ResumeSession},
				{Method: http.MethodGet, Path: "/:id", Handler: sessionHandler.GetSession},
				{Method: http.MethodDelete, Path: "/:id", Handler: sessionHandler.DiscardSession},
				{Method: http.MethodPut, Path: "/:id/vehicle", Handler: sessionHandler.SelectVehicle},
				{Method: http.MethodPut, Path: "/:id/trip", Handler: sessionHandler.SetTripDetails},
				{Method: http.MethodPut, Path: "/:id/personal", Handler: sessionHandler.SetPersonalInfo},
				{Method: http.MethodPut, Path: "/:id/payment-method", Handler: sessionHandler.SetPaymentMethod},
				{Method: http.MethodPost, Path: "/:id/coupon", Handler: sessionHandler.ApplyCoupon},
				{Method: http.MethodPost, Path: "/:id/next", Handler: sessionHandler.Next},
				{Method: http.MethodPost, Path: "/:id/back", Handler: sessionHandler.Back},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: sessionHandler.Submit},
				{Method: http.MethodPost, Path: "/:id/retry", Handler: sessionHandler.Retry},
			})
		}

		drafts := apiGroup.Group("/drafts")
		drafts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(drafts, []route{
				{Method: http.MethodGet, Path: "", Handler: draftHandler.ListDrafts},
				{Method: http.MethodGet, Path: "/:id", Handler: draftHandler.GetDraft},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.GetUserBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
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
