package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *AuthHandler
	Templates *TemplateHandler
	Portfolio *PortfolioHandler
	Builder   *BuilderHandler
	Media     *MediaHandler
}

// RegisterRoutes mounts the public and the token-protected API.
func RegisterRoutes(router *gin.Engine, h Handlers, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/login", h.Auth.Login)

		api.GET("/templates", h.Templates.ListTemplates)
		api.GET("/templates/presets", h.Templates.ListPresets)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			p := private.Group("/portfolio")
			{
				p.GET("", h.Portfolio.GetPortfolio)
				p.PATCH("/fields", h.Portfolio.SetFields)
				p.PUT("/template", h.Portfolio.SelectTemplate)
				p.PUT("/preset", h.Portfolio.ApplyPreset)
				p.PUT("/sections/:section", h.Portfolio.ReplaceSection)
				p.POST("/skills", h.Portfolio.AddSkill)
				p.DELETE("/skills/:name", h.Portfolio.RemoveSkill)
				p.POST("/collections/:collection", h.Portfolio.AddItem)
				p.DELETE("/collections/:collection/:id", h.Portfolio.RemoveItem)
				p.POST("/save", h.Portfolio.Save)
				p.GET("/status", h.Portfolio.Status)
				p.GET("/progress", h.Portfolio.Progress)
				p.GET("/preview", h.Portfolio.Preview)
				p.GET("/export/:format", h.Portfolio.Export)
				p.POST("/backups", h.Portfolio.Backup)
				p.POST("/uploads/:kind", h.Media.Upload)
				p.GET("/uploads", h.Media.List)
			}

			b := private.Group("/builder")
			{
				b.GET("", h.Builder.GetState)
				b.POST("/next", h.Builder.Next)
				b.POST("/prev", h.Builder.Prev)
				b.PUT("/step", h.Builder.GoTo)
				b.PUT("/section", h.Builder.SelectSection)
			}
		}
	}
}
