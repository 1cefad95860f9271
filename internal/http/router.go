package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ltl-driver-management/backend/internal/config"
	"github.com/ltl-driver-management/backend/internal/db"
	"github.com/ltl-driver-management/backend/internal/http/handlers"
	"github.com/ltl-driver-management/backend/internal/http/middleware"
	"github.com/ltl-driver-management/backend/internal/service"
	"github.com/ltl-driver-management/backend/internal/tms"

	_ "github.com/ltl-driver-management/backend/docs"
)

func Router(cfg config.Config, store *db.Store, gateway tms.Gateway, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store: store,
		Dispo: &service.DispositionService{
			Store:   store,
			Gateway: gateway,
			Logger:  logger,
		},
		Validator: validator.New(),
		Logger:    logger,
		AdminKey:  cfg.AdminKey,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/trips", h.TripsList)
		api.GET("/trips/:id", h.TripDetails)
		api.GET("/trips/:id/late-reason", h.TripLateReason)
		api.GET("/terminals", h.TerminalsList)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/trips/:id/disposition", h.DisposeTrip)
		admin.POST("/loadsheets/disposition", h.DisposeLoadsheets)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
