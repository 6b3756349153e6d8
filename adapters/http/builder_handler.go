package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// BuilderHandler drives the wizard. Moves are never gated on progress.
type BuilderHandler struct {
	sessions *builder.Manager
}

func NewBuilderHandler(sessions *builder.Manager) *BuilderHandler {
	return &BuilderHandler{sessions: sessions}
}

func (h *BuilderHandler) session(c *gin.Context) (*builder.Session, bool) {
	sess, err := h.sessions.Open(c.Request.Context(), GetIdentityFromGinContext(c))
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return sess, true
}

func (h *BuilderHandler) GetState(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		c.JSON(http.StatusOK, gin.H{"data": sess.WizardState()})
	}
}

func (h *BuilderHandler) Next(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		c.JSON(http.StatusOK, gin.H{"data": sess.Next()})
	}
}

func (h *BuilderHandler) Prev(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		c.JSON(http.StatusOK, gin.H{"data": sess.Prev()})
	}
}

func (h *BuilderHandler) GoTo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req goToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("step is required", err))
		return
	}
	st, err := sess.GoTo(builder.Step(req.Step))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": st})
}

func (h *BuilderHandler) SelectSection(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req selectSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("section is required", err))
		return
	}
	st, err := sess.SelectSection(builder.ContentSection(req.Section))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": st})
}
