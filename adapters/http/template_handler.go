package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates accepts an optional ?category= filter; "All" means none.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": portfolio.Templates(c.Query("category"))})
}

func (h *TemplateHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": portfolio.Presets()})
}
