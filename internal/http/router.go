package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "inventory/internal/config"
	h "inventory/internal/http/handlers"
	"inventory/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func corsConfig() cors.Config {
	origins := []string{
		"http://localhost:3000", "http://127.0.0.1:3000",
		"http://localhost:5173", "http://127.0.0.1:5173",
	}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = origins[:0]
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 24 * time.Hour
	return cfg
}

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(corsConfig()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	staff := middleware.RequireAuth()
	staffRole := middleware.RequireRoles("owner", "admin", "staff")
	adminRole := middleware.RequireRoles("owner", "admin")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Trips: snapshot reads are open to collaborators, everything
		// administrative is staff-gated. Online selling and the payment
		// collaborator's cancel are unauthenticated by design.
		trips := api.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.GET("/:id", h.GetTripSnapshot)
		trips.GET("/:id/snapshot", h.GetTripSnapshot)
		trips.POST("/:id/sell-online", h.SellOnline)
		trips.POST("/:id/cancel", h.CancelSeats)

		trips.POST("", staff, staffRole, h.CreateTrip)
		trips.PUT("/:id", staff, staffRole, h.UpdateTrip)
		trips.DELETE("/:id", staff, adminRole, h.DeleteTrip)
		trips.POST("/:id/sell-manual", staff, staffRole, h.SellManual)
		trips.PUT("/:id/halt", staff, staffRole, h.SetTripHalt)
		trips.PUT("/:id/status", staff, staffRole, h.TransitionTripStatus)
		trips.PUT("/:id/vehicle", staff, staffRole, h.ReassignTripVehicle)

		// Vehicles
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.POST("", staff, staffRole, h.CreateVehicle)
		vehicles.PUT("/:id", staff, staffRole, h.UpdateVehicle)
		vehicles.DELETE("/:id", staff, adminRole, h.DeleteVehicle)

		// Companies
		companies := api.Group("/companies")
		companies.GET("", h.GetCompanies)
		companies.POST("", staff, adminRole, h.CreateCompany)
		companies.PUT("/:id/auto-halt", staff, adminRole, h.SetCompanyAutoHalt)
	}

	h.SetRouter(r)
	return r
}
