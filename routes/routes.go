package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/formforge/formbuilder-server/controllers"
	"github.com/formforge/formbuilder-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/google/login", controllers.GoogleLoginHandler)
			auth.POST("/logout", controllers.Logout)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)
			protected.PUT("/me/photo", controllers.UpdateProfilePhoto)
		}

		forms := api.Group("/forms")
		{
			forms.POST("", middleware.AuthJWT(), middleware.RateLimitFormsCreate(), controllers.CreateForm)
			forms.GET("", middleware.AuthJWT(), controllers.ListMyForms)

			// Public read: anonymous submitters need the schema to render.
			forms.GET("/:id", controllers.GetForm)
			forms.POST("/:id/submit", middleware.OptionalAuth(), middleware.RateLimitSubmit(), controllers.SubmitForm)

			// Owner-only; a foreign form answers 404 here.
			owned := forms.Group("/:id")
			owned.Use(middleware.AuthJWT(), middleware.CheckFormOwner())
			{
				owned.PUT("", controllers.UpdateForm)
				owned.DELETE("", controllers.DeleteForm)
				owned.POST("/duplicate", controllers.DuplicateForm)
				owned.GET("/responses", controllers.GetResponses)
				owned.GET("/responses/table", controllers.GetResponsesTable)
				owned.POST("/export", controllers.CreateExport)
				owned.GET("/export/:job_id", controllers.GetExport)
			}
		}
	}
}
