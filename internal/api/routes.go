package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	programService service.ProgramService,
	trackerService service.TrackerService,
	calendarService service.CalendarService,
	shareService service.ShareService,
	photoService service.PhotoService,
) {
	authHandler := NewAuthHandler(authService)
	programHandler := NewProgramHandler(programService)
	trackerHandler := NewTrackerHandler(trackerService)
	calendarHandler := NewCalendarHandler(calendarService, shareService)
	photoHandler := NewPhotoHandler(photoService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Public shared-calendar view: the token is the only credential.
		apiV1.GET("/shared/:token", calendarHandler.ResolveShareLink)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Program Catalog ---
		programGroup := protected.Group("/programs")
		{
			// Browsing is open to all authenticated users.
			programGroup.GET("", programHandler.ListPublished)
			programGroup.GET("/:programId", programHandler.GetProgramDetails)

			// Authoring is coach-only.
			programGroup.POST("", RoleMiddleware(domain.RoleCoach), programHandler.CreateProgram)
			programGroup.POST("/:programId/slots", RoleMiddleware(domain.RoleCoach), programHandler.AddSlot)
			programGroup.PUT("/:programId/publish", RoleMiddleware(domain.RoleCoach), programHandler.PublishProgram)
		}
		protected.GET("/coach/programs", RoleMiddleware(domain.RoleCoach), programHandler.GetMyPrograms)

		// --- Training Tracker (athlete) ---
		trackerGroup := protected.Group("/tracker")
		trackerGroup.Use(RoleMiddleware(domain.RoleAthlete))
		{
			trackerGroup.POST("/activate", trackerHandler.ActivateProgram)
			trackerGroup.GET("/active", trackerHandler.GetActiveProgram)
			trackerGroup.POST("/logs", trackerHandler.LogWorkout)
			trackerGroup.PUT("/logs/:logId", trackerHandler.EditLog)
		}

		// --- Calendar ---
		protected.GET("/calendar/:year/:month", calendarHandler.GetMonth)
		protected.POST("/calendar/share", calendarHandler.CreateShareLink)

		// --- Progress Photos ---
		photoGroup := protected.Group("/photos")
		photoGroup.Use(RoleMiddleware(domain.RoleAthlete))
		{
			photoGroup.POST("/upload-url", photoHandler.RequestUploadURL)
			photoGroup.POST("/confirm", photoHandler.ConfirmUpload)
			photoGroup.GET("", photoHandler.GetMyPhotos)
		}
	}
}
