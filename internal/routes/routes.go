package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/backup"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/handlers"
	infraRepo "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/infra/repository"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
	ucAppointment "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/usecase/appointment"
	ucServiceRecord "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/usecase/servicerecord"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	Config  *config.Config
	Store   store.Store
	Locker  lock.Locker
	Audit   *audit.Dispatcher
	Backups *backup.Service
}

// NewEngine builds the gin engine with the global middleware chain and every
// route registered.
func NewEngine(d Deps, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(),
	)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	repo := infraRepo.NewStoreRepository(d.Store)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	schedulerUC := ucAppointment.NewScheduler(repo, d.Locker, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(repo, d.Locker, d.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(repo, d.Locker, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(repo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(repo)
	availabilityUC := ucAppointment.NewGetAvailability(repo)

	// ======================================================
	// USE CASES: SERVICE RECORDS
	// ======================================================
	lifecycleUC := ucServiceRecord.NewLifecycle(repo, d.Locker, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Store)
	authHandler := handlers.NewAuthHandler(d.Store, cfg, d.Audit)
	clientHandler := handlers.NewClientHandler(d.Store, d.Audit)
	carHandler := handlers.NewCarHandler(d.Store, d.Audit)
	partHandler := handlers.NewPartHandler(d.Store, d.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		schedulerUC,
		cancelAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		listAppointmentsByMonthUC,
		availabilityUC,
	)
	serviceRecordHandler := handlers.NewServiceRecordHandler(lifecycleUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.Store)
	backupHandler := handlers.NewBackupHandler(d.Backups, d.Audit)
	publicHandler := handlers.NewPublicHandler(availabilityUC)

	staff := middleware.Authorize(models.RoleAdmin, models.RoleTechnician)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/business-hours", publicHandler.BusinessHours)
			publicAPI.GET("/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.Authenticate(cfg, d.Store))
		{
			auth := secured.Group("/auth")
			{
				auth.GET("/profile", authHandler.Profile)
				auth.PUT("/password", authHandler.ChangePassword)
				auth.POST("/admin", adminOnly, authHandler.CreateAdmin)
				auth.GET("/admins", adminOnly, authHandler.ListAdmins)
				auth.PATCH("/admins/:id/active", adminOnly, authHandler.SetAdminActive)
			}

			clients := secured.Group("/clients")
			{
				clients.GET("", staff, clientHandler.List)
				clients.GET("/:id", clientHandler.Get)
				clients.GET("/:id/cars", clientHandler.Cars)
				clients.PUT("/:id", clientHandler.Update)
				clients.PATCH("/:id/active", adminOnly, clientHandler.SetActive)
				clients.DELETE("/:id", adminOnly, clientHandler.Delete)
			}

			cars := secured.Group("/cars")
			{
				cars.GET("", carHandler.List)
				cars.GET("/:id", carHandler.Get)
				cars.POST("", carHandler.Create)
				cars.PUT("/:id", carHandler.Update)
				cars.PATCH("/:id/active", staff, carHandler.SetActive)
				cars.DELETE("/:id", adminOnly, carHandler.Delete)
			}

			parts := secured.Group("/parts", staff)
			{
				parts.GET("", partHandler.List)
				parts.GET("/categories", partHandler.Categories)
				parts.GET("/:id", partHandler.Get)
				parts.POST("", partHandler.Create)
				parts.PUT("/:id", partHandler.Update)
				parts.PATCH("/:id/active", partHandler.SetActive)
				parts.PATCH("/:id/stock", partHandler.UpdateStock)
				parts.DELETE("/:id", adminOnly, partHandler.Delete)
			}

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			appointments := secured.Group("/appointments")
			{
				appointments.GET("", appointmentHandler.List)
				appointments.GET("/month", appointmentHandler.ListByMonth)
				appointments.GET("/availability", appointmentHandler.Availability)
				appointments.GET("/:id", appointmentHandler.Get)
				appointments.POST("", appointmentHandler.Create)
				appointments.PUT("/:id", appointmentHandler.Update)
				appointments.PATCH("/:id/cancel", appointmentHandler.Cancel)
				appointments.DELETE("/:id", staff, appointmentHandler.Delete)
			}

			// ------------------------------
			// SERVICE RECORDS
			// ------------------------------
			records := secured.Group("/service-records", staff)
			{
				records.GET("", serviceRecordHandler.List)
				records.GET("/:id", serviceRecordHandler.Get)
				records.POST("", serviceRecordHandler.Create)
				records.POST("/:id/processing", serviceRecordHandler.AddProcessing)
				records.PUT("/:id", serviceRecordHandler.Update)
				records.DELETE("/:id", serviceRecordHandler.Delete)
			}

			secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
			secured.POST("/admin/backups", adminOnly, backupHandler.Create)
		}
	}
}
