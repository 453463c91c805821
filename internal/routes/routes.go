package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	"github.com/BruksfildServices01/studio-console/internal/config"
	"github.com/BruksfildServices01/studio-console/internal/handlers"
	infraRepo "github.com/BruksfildServices01/studio-console/internal/infra/repository"
	"github.com/BruksfildServices01/studio-console/internal/media"
	"github.com/BruksfildServices01/studio-console/internal/middleware"
	"github.com/BruksfildServices01/studio-console/internal/notify"
	"github.com/BruksfildServices01/studio-console/internal/payment"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	ucBooking "github.com/BruksfildServices01/studio-console/internal/usecase/booking"
	ucSchedule "github.com/BruksfildServices01/studio-console/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *slog.Logger,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	settingsStore := settings.NewStore(db, rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var processor payment.Processor = payment.Noop{}
	if cfg.MercadoPagoToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken, log)
		if err != nil {
			log.Warn("mercado pago indisponível, reembolsos ficam pendentes", "error", err)
		} else {
			processor = mp
		}
	}

	var notifier notify.Sender = notify.Noop{}
	if cfg.HasSMTP() {
		notifier = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, log)
	}

	var storage media.Storage
	if cfg.HasS3() {
		storage = media.NewS3Storage(cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	}

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		settingsStore,
		auditDispatcher,
		notifier,
	)

	advanceAppointmentUC := ucBooking.NewAdvanceAppointment(
		bookingRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		settingsStore,
		auditDispatcher,
		processor,
		notifier,
	)

	completeAppointmentUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		settingsStore,
		auditDispatcher,
	)

	checkInUC := ucBooking.NewCheckInAppointment(
		bookingRepo,
		settingsStore,
		auditDispatcher,
	)

	checkOutUC := ucBooking.NewCheckOutAppointment(
		bookingRepo,
		settingsStore,
		auditDispatcher,
	)

	rescheduleUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		settingsStore,
		auditDispatcher,
		notifier,
	)

	requestRescheduleUC := ucBooking.NewRequestReschedule(
		bookingRepo,
		settingsStore,
		auditDispatcher,
	)

	resolveRescheduleUC := ucBooking.NewResolveReschedule(
		bookingRepo,
		settingsStore,
		auditDispatcher,
		rescheduleUC,
	)

	retryRefundUC := ucBooking.NewRetryRefund(
		bookingRepo,
		auditDispatcher,
		processor,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		settingsStore,
	)

	listByDateUC := ucBooking.NewListAppointmentsByDate(
		bookingRepo,
		settingsStore,
	)

	listByMonthUC := ucBooking.NewListAppointmentsByMonth(
		bookingRepo,
		settingsStore,
	)

	// ======================================================
	// 🧠 USE CASES — SCHEDULE
	// ======================================================
	placeShiftUC := ucSchedule.NewPlaceShift(
		scheduleRepo,
		settingsStore,
		auditDispatcher,
	)

	deleteShiftUC := ucSchedule.NewDeleteShift(
		scheduleRepo,
		auditDispatcher,
	)

	monthViewUC := ucSchedule.NewMonthView(
		scheduleRepo,
		settingsStore,
	)

	requestSwapUC := ucSchedule.NewRequestSwap(
		scheduleRepo,
		auditDispatcher,
	)

	resolveSwapUC := ucSchedule.NewResolveSwap(
		scheduleRepo,
		settingsStore,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, storage)
	settingsHandler := handlers.NewSettingsHandler(settingsStore, auditDispatcher)
	locationHandler := handlers.NewLocationHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		advanceAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		checkInUC,
		checkOutUC,
		rescheduleUC,
		resolveRescheduleUC,
		retryRefundUC,
		availabilityUC,
		listByDateUC,
		listByMonthUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		db,
		auditDispatcher,
		placeShiftUC,
		deleteShiftUC,
		monthViewUC,
		requestSwapUC,
		resolveSwapUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		bookingRepo,
		createAppointmentUC,
		availabilityUC,
		requestRescheduleUC,
		cancelAppointmentUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:ref", publicHandler.GetAppointment)
			publicAPI.POST("/appointments/:ref/reschedule-request", publicHandler.RequestReschedule)
			publicAPI.POST("/appointments/:ref/cancel", publicHandler.CancelAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (STAFF)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Annotate)
			secured.PATCH("/appointments/:id/status", appointmentHandler.Advance)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/check-in", appointmentHandler.CheckIn)
			secured.PATCH("/appointments/:id/check-out", appointmentHandler.CheckOut)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/mark-paid", appointmentHandler.MarkPaid)

			secured.GET("/availability", appointmentHandler.Availability)

			// ------------------------------
			// SCHEDULE
			// ------------------------------
			secured.GET("/schedule", scheduleHandler.MonthView)
			secured.GET("/schedule/entries", scheduleHandler.ListEntries)
			secured.POST("/schedule/shifts/:id/swap-request", scheduleHandler.RequestSwap)

			secured.GET("/shift-templates", scheduleHandler.ListTemplates)

			secured.GET("/staff", staffHandler.List)
			secured.GET("/staff/:id/availability", staffHandler.GetAvailability)

			// ------------------------------
			// 👑 ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.POST("/staff", staffHandler.Create)
				admin.PATCH("/staff/:id", staffHandler.Update)
				admin.PUT("/staff/:id/availability", staffHandler.UpdateAvailability)
				admin.POST("/staff/:id/availability/seed", staffHandler.SeedDefaultAvailability)

				admin.GET("/services", serviceHandler.List)
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.POST("/services/:id/image", serviceHandler.UploadImage)

				admin.GET("/locations", locationHandler.List)
				admin.POST("/locations", locationHandler.Create)
				admin.PATCH("/locations/:id", locationHandler.Update)

				admin.GET("/settings", settingsHandler.Get)
				admin.PATCH("/settings", settingsHandler.Update)

				admin.POST("/schedule/shifts", scheduleHandler.PlaceShift)
				admin.PATCH("/schedule/shifts/:id/cancel", scheduleHandler.DeleteShift)
				admin.PATCH("/schedule/shifts/:id/swap", scheduleHandler.ResolveSwap)

				admin.POST("/shift-templates", scheduleHandler.CreateTemplate)
				admin.PATCH("/shift-templates/:id", scheduleHandler.UpdateTemplate)

				admin.GET("/reschedule-requests", appointmentHandler.ListRescheduleRequests)
				admin.PATCH("/reschedule-requests/:id", appointmentHandler.ResolveReschedule)

				admin.GET("/refunds/queue", appointmentHandler.RefundQueue)
				admin.POST("/appointments/:id/refund", appointmentHandler.RetryRefund)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
