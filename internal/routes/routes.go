package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenity-studio/yoga-scheduler/internal/audit"
	"github.com/serenity-studio/yoga-scheduler/internal/config"
	"github.com/serenity-studio/yoga-scheduler/internal/handlers"
	"github.com/serenity-studio/yoga-scheduler/internal/middleware"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
	ucReservation "github.com/serenity-studio/yoga-scheduler/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, backend store.Backend, cfg *config.Config, logger *zap.Logger) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditDispatcher := audit.NewDispatcher(logger)

	// ======================================================
	// USE CASES — RESERVATIONS
	// ======================================================
	createUC := ucReservation.NewCreateReservation(
		backend,
		auditDispatcher,
		cfg.Timezone,
		cfg.CreateLatency,
	)

	searchUC := ucReservation.NewSearchByEmail(backend)

	cancelUC := ucReservation.NewCancelReservation(
		backend,
		auditDispatcher,
	)

	exportUC := ucReservation.NewExportCSV(backend)

	availUC := ucReservation.NewCheckAvailability(backend)

	// ======================================================
	// HANDLERS
	// ======================================================
	reservationHandler := handlers.NewReservationHandler(createUC, searchUC, cancelUC, exportUC)
	classHandler := handlers.NewClassHandler(availUC)
	healthHandler := handlers.NewHealthHandler(backend)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	{
		api.POST("/reservations", reservationHandler.Create)
		api.GET("/reservations", reservationHandler.Search)
		api.GET("/reservations/export", reservationHandler.Export)
		api.DELETE("/reservations/:id", reservationHandler.Cancel)

		api.GET("/classes", classHandler.ListSchedules)
		api.GET("/classes/:type/availability", classHandler.Availability)
	}
}
