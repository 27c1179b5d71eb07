package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/controllers"
	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	scheduleController *controllers.ScheduleController,
	classController *controllers.ClassController,
	instructorController *controllers.InstructorController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public read routes ---
	schedule := v1.Group("/schedule")
	{
		schedule.GET("", scheduleController.ListSchedule)
		schedule.GET("/slot", scheduleController.GetSlot)
	}

	classes := v1.Group("/classes")
	{
		classes.GET("", classController.ListClasses)
		classes.GET("/names", classController.ListClassNames)
		classes.GET("/:name", classController.GetClassByName)
	}

	instructors := v1.Group("/instructors")
	{
		instructors.GET("/names", instructorController.ListInstructorNames)
		instructors.GET("/:id", instructorController.GetInstructorByID)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionRequired())
	{
		authenticated.GET("/auth/me", authController.Me)

		scheduleProtected := authenticated.Group("/schedule")
		{
			scheduleProtected.POST("", scheduleController.CreateSlot)
			scheduleProtected.DELETE("", scheduleController.DeleteSlot)
			scheduleProtected.PUT("/instructors", scheduleController.AssignInstructors)
		}

		classesProtected := authenticated.Group("/classes")
		{
			classesProtected.POST("", classController.CreateClass)
			classesProtected.DELETE("", classController.DeleteClass)
		}

		instructorsProtected := authenticated.Group("/instructors")
		{
			instructorsProtected.POST("", instructorController.CreateInstructor)
			instructorsProtected.DELETE("", instructorController.DeleteInstructor)
		}
	}
}
