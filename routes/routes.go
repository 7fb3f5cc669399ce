package routes

import (
	"os"
	"strings"

	"userpulse-backend/config"
	"userpulse-backend/controllers"
	"userpulse-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public survey surfaces: embed config, share links, response intake,
	// team-invite acceptance
	public := r.Group("/public")
	{
		public.GET("/embed/:eventKey", controllers.GetEmbedConfig)
		public.GET("/s/:slug", controllers.ResolveShareLink)
		public.POST("/responses", controllers.SubmitResponse)
		public.POST("/invitations/accept", controllers.AcceptInvitation)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Contact routes, including the duplicate review & merge flow
		contacts := api.Group("/contacts")
		contacts.Use(utils.RequirePermission(utils.SectionContacts, utils.LevelView))
		{
			contacts.GET("", controllers.GetContacts)
			contacts.GET("/duplicates", controllers.GetDuplicateContacts)
			contacts.GET("/:id", controllers.GetContact)

			edit := contacts.Group("")
			edit.Use(utils.RequirePermission(utils.SectionContacts, utils.LevelEdit))
			{
				edit.POST("", controllers.CreateContact)
				edit.PUT("/:id", controllers.UpdateContact)
				edit.DELETE("/:id", controllers.DeleteContact)
				edit.POST("/merge", controllers.MergeContacts)
				edit.POST("/:id/tags", controllers.AssignTag)
				edit.DELETE("/:id/tags/:tagId", controllers.UnassignTag)
			}
		}

		// Tag routes
		tags := api.Group("/tags")
		tags.Use(utils.RequirePermission(utils.SectionContacts, utils.LevelView))
		{
			tags.GET("", controllers.GetTags)

			edit := tags.Group("")
			edit.Use(utils.RequirePermission(utils.SectionContacts, utils.LevelEdit))
			{
				edit.POST("", controllers.CreateTag)
				edit.DELETE("/:id", controllers.DeleteTag)
			}
		}

		// Brand / location hierarchy
		brands := api.Group("/brands")
		brands.Use(utils.RequirePermission(utils.SectionSettings, utils.LevelView))
		{
			brands.GET("", controllers.GetBrands)

			manage := brands.Group("")
			manage.Use(utils.RequirePermission(utils.SectionSettings, utils.LevelManage))
			{
				manage.POST("", controllers.CreateBrand)
				manage.POST("/:id/locations", controllers.CreateLocation)
			}
		}

		// Survey event routes
		surveys := api.Group("/survey-events")
		surveys.Use(utils.RequirePermission(utils.SectionSurveys, utils.LevelView))
		{
			surveys.GET("", controllers.GetSurveyEvents)
			surveys.GET("/:id", controllers.GetSurveyEvent)

			edit := surveys.Group("")
			edit.Use(utils.RequirePermission(utils.SectionSurveys, utils.LevelEdit))
			{
				edit.POST("", controllers.CreateSurveyEvent)
				edit.PUT("/:id", controllers.UpdateSurveyEvent)
				edit.DELETE("/:id", controllers.DeleteSurveyEvent)
			}
		}

		// Response routes
		responses := api.Group("/responses")
		responses.Use(utils.RequirePermission(utils.SectionSurveys, utils.LevelView))
		{
			responses.GET("", controllers.GetResponses)
		}

		// Feedback categorization
		feedback := api.Group("/feedback")
		feedback.Use(utils.RequirePermission(utils.SectionFeedback, utils.LevelEdit))
		{
			feedback.POST("/categorize", controllers.CategorizeFeedback)
		}

		// Distribution routes: invitations, share links, SFTP sources
		distribution := api.Group("/distribution")
		distribution.Use(utils.RequirePermission(utils.SectionDistribution, utils.LevelView))
		{
			distribution.GET("/invitations", controllers.GetInvitations)
			distribution.GET("/share-links", controllers.GetShareLinks)
			distribution.GET("/sftp-sources", controllers.GetSftpSources)

			edit := distribution.Group("")
			edit.Use(utils.RequirePermission(utils.SectionDistribution, utils.LevelEdit))
			{
				edit.POST("/invitations", controllers.CreateInvitations)
				edit.POST("/share-links", controllers.CreateShareLink)
				edit.DELETE("/share-links/:id", controllers.DeleteShareLink)
				edit.POST("/sftp-sources", controllers.CreateSftpSource)
				edit.DELETE("/sftp-sources/:id", controllers.DeleteSftpSource)
			}
		}

		// Team routes and the invite wizard
		team := api.Group("/team")
		team.Use(utils.RequirePermission(utils.SectionTeam, utils.LevelEdit))
		{
			team.GET("", controllers.GetTeamMembers)
			team.GET("/invitations", controllers.GetInvitationsList)
			team.POST("/invitations", controllers.StartInvitation)
			team.PUT("/invitations/:id", controllers.AdvanceInvitation)
			team.POST("/invitations/:id/send", controllers.SendInvitation)
			team.DELETE("/invitations/:id", controllers.RevokeInvitation)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
