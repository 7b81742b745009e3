package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/config"
	"medbook/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/register/doctor", h.registerDoctor)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.PUT("/me", h.updateCurrentUser)
			users.PUT("/me/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.GET("/", h.getUsers)
				admin.GET("/:id", h.getUserByID)
				admin.DELETE("/:id", h.deactivateUser)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/me", h.authMiddleware(), h.doctorMiddleware(), h.getMyDoctorProfile)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/:id/availability", h.getDoctorAvailability)

			auth := doctors.Group("/", h.authMiddleware())
			{
				auth.PUT("/:id", h.updateDoctor)
				auth.PUT("/:id/availability", h.declareAvailability)
			}
		}

		timeSlots := api.Group("/time-slots")
		{
			timeSlots.GET("/", h.getTimeSlots)
			timeSlots.GET("/:id", h.getTimeSlotByID)
			timeSlots.POST("/", h.authMiddleware(), h.createTimeSlot)
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("/", h.createAppointment)
			appointments.GET("/", h.getAppointments)
			appointments.GET("/upcoming", h.getUpcomingAppointments)
			appointments.GET("/stats", h.getAppointmentStats)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.POST("/:id/confirm", h.confirmAppointment)
			appointments.POST("/:id/complete", h.completeAppointment)
			appointments.POST("/:id/cancel", h.cancelAppointment)
		}

		records := api.Group("/medical-records")
		records.Use(h.authMiddleware())
		{
			records.POST("/", h.createMedicalRecord)
			records.GET("/", h.getMedicalRecords)
			records.GET("/:id", h.getMedicalRecordByID)
			records.PUT("/:id", h.updateMedicalRecord)
			records.POST("/:id/attachments", h.uploadRecordAttachment)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/doctor/:id", h.getDoctorReviews)
			reviews.GET("/doctor/:id/stats", h.getDoctorReviewStats)
			reviews.GET("/:id", h.getReviewByID)

			auth := reviews.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createReview)
				auth.GET("/", h.getReviews)
				auth.PUT("/:id", h.updateReview)
			}
		}
	}
}
