package handlers

import (
	"net/http"

	"legal_cms_go/config"
	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler carries the dependencies shared by every endpoint. It is built once
// at startup; Mailer may be nil when no mail provider is configured.
type Handler struct {
	DB      *gorm.DB
	Config  *config.Config
	Tokens  *services.TokenService
	Storage services.StorageProvider
	Mailer  services.Mailer
	Logins  *services.LoginMonitor
}

func New(database *gorm.DB, cfg *config.Config, tokens *services.TokenService, storage services.StorageProvider, mailer services.Mailer) *Handler {
	return &Handler{
		DB:      database,
		Config:  cfg,
		Tokens:  tokens,
		Storage: storage,
		Mailer:  mailer,
		Logins:  services.NewLoginMonitor(),
	}
}

// db returns the database bound to the request context so queries carry the
// request's trace span and cancellation
func (h *Handler) db(c echo.Context) *gorm.DB {
	return h.DB.WithContext(c.Request().Context())
}

// RegisterRoutes mounts the API under /api and the health checks
func RegisterRoutes(e *echo.Echo, h *Handler, authLimiter *middleware.RateLimiter) {
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/health", h.Health)

	auth := api.Group("/auth")
	auth.POST("/register", h.Register, authLimiter.Middleware())
	auth.POST("/login", h.Login, authLimiter.Middleware())

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(h.Tokens, h.DB))

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/profile", h.GetProfile)
	protected.PUT("/auth/profile", h.UpdateProfile)
	protected.PUT("/auth/change-password", h.ChangePassword)

	// Services enforce roles for case, hearing, document and courtroom
	// writes. The spreadsheet routes are gated here.
	exporters := middleware.RequireRoleWithMessage("Only court can export cases", models.RoleCourt)
	importers := middleware.RequireRoleWithMessage("Only court/advocate can import cases", models.RoleCourt, models.RoleAdvocate)

	// Cases
	protected.GET("/cases", h.ListCases)
	protected.POST("/cases", h.CreateCase)
	protected.GET("/cases/search", h.SearchCases)
	protected.GET("/cases/qr/*", h.GetCaseByQR)
	protected.GET("/cases/export", h.ExportCases, exporters)
	protected.GET("/cases/import/template", h.GetImportTemplate, importers)
	protected.POST("/cases/import", h.ImportCases, importers)
	protected.GET("/cases/:id", h.GetCase)
	protected.PUT("/cases/:id", h.UpdateCase)
	protected.DELETE("/cases/:id", h.DeleteCase)
	protected.POST("/cases/:id/timeline", h.AddTimelineEntry)

	// Hearings
	protected.GET("/hearings", h.ListHearings)
	protected.GET("/hearings/calendar", h.Calendar)
	protected.POST("/hearings", h.CreateHearing)
	protected.PUT("/hearings/:id", h.UpdateHearing)
	protected.DELETE("/hearings/:id", h.DeleteHearing)

	// Documents
	protected.GET("/documents", h.ListDocuments)
	protected.POST("/documents", h.UploadDocument)
	protected.GET("/documents/:id", h.GetDocument)
	protected.GET("/documents/:id/download", h.DownloadDocument)
	protected.PUT("/documents/:id", h.UpdateDocument)
	protected.PUT("/documents/:id/verify", h.VerifyDocument)
	protected.DELETE("/documents/:id", h.DeleteDocument)

	// Tasks
	protected.GET("/tasks", h.ListTasks)
	protected.POST("/tasks", h.CreateTask)
	protected.PUT("/tasks/:id", h.UpdateTask)
	protected.DELETE("/tasks/:id", h.DeleteTask)

	// Notes
	protected.GET("/notes", h.ListNotes)
	protected.POST("/notes", h.CreateNote)
	protected.PUT("/notes/:id", h.UpdateNote)
	protected.DELETE("/notes/:id", h.DeleteNote)

	// Notifications
	protected.GET("/notifications", h.ListNotifications)
	protected.GET("/notifications/unread-count", h.UnreadNotificationCount)
	protected.PUT("/notifications/read-all", h.MarkAllNotificationsRead)
	protected.PUT("/notifications/:id/read", h.MarkNotificationRead)
	protected.DELETE("/notifications/:id", h.DeleteNotification)
	protected.POST("/notifications/send-email", h.SendEmail)

	// Messages
	protected.GET("/messages/contacts", h.ListContacts)
	protected.GET("/messages/:userId", h.GetConversation)
	protected.POST("/messages", h.SendMessage)

	// Courtrooms
	protected.GET("/courtrooms", h.ListCourtrooms)
	protected.GET("/courtrooms/:id", h.GetCourtroom)
	protected.PUT("/courtrooms/:id", h.UpdateCourtroom)

	// Analytics
	analytics := protected.Group("/analytics")
	analytics.GET("/dashboard", h.Dashboard)
	analytics.GET("/cases-trend", h.CasesTrend)
	analytics.GET("/cases-by-type", h.CasesByType)
	analytics.GET("/daily-hearings", h.DailyHearings)
	analytics.GET("/advocate-performance", h.AdvocatePerformance)
	analytics.GET("/pendency", h.Pendency)
	analytics.GET("/export", h.ExportCases, exporters)
}

// Health reports liveness without authentication
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Legal CMS API is running",
	})
}
