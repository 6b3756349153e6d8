package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	backupUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/backup"
	exportUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/export"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const maxSectionBody = 1 << 20

type PortfolioHandler struct {
	sessions  *builder.Manager
	exportUC  *exportUC.ExportUseCase
	previewUC *exportUC.PreviewUseCase
	backupUC  *backupUC.BackupUseCase
	now       func() time.Time
	logger    logger.Logger
}

func NewPortfolioHandler(
	sessions *builder.Manager,
	exportUseCase *exportUC.ExportUseCase,
	previewUseCase *exportUC.PreviewUseCase,
	backupUseCase *backupUC.BackupUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		sessions:  sessions,
		exportUC:  exportUseCase,
		previewUC: previewUseCase,
		backupUC:  backupUseCase,
		now:       time.Now,
		logger:    log,
	}
}

// session resolves the caller's builder session, reporting failures on c.
func (h *PortfolioHandler) session(c *gin.Context) (*builder.Session, bool) {
	sess, err := h.sessions.Open(c.Request.Context(), GetIdentityFromGinContext(c))
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return sess, true
}

func (h *PortfolioHandler) writeModel(c *gin.Context, sess *builder.Session) {
	c.JSON(http.StatusOK, gin.H{"data": sess.Snapshot()})
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.writeModel(c, sess)
}

func (h *PortfolioHandler) SetFields(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req SetFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("fields must be a non-empty list of {path, value}", err))
		return
	}
	updates := make([]portfolio.FieldUpdate, 0, len(req.Fields))
	for _, f := range req.Fields {
		updates = append(updates, portfolio.FieldUpdate{Path: portfolio.FieldPath(f.Path), Value: f.Value})
	}
	if err := sess.SetFields(updates); err != nil {
		c.Error(err)
		return
	}
	h.writeModel(c, sess)
}

func (h *PortfolioHandler) SelectTemplate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("templateId is required", err))
		return
	}
	if err := sess.SelectTemplate(req.TemplateID); err != nil {
		c.Error(err)
		return
	}
	h.writeModel(c, sess)
}

func (h *PortfolioHandler) ApplyPreset(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req applyPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("name is required", err))
		return
	}
	if err := sess.ApplyPreset(req.Name); err != nil {
		c.Error(err)
		return
	}
	h.writeModel(c, sess)
}

// ReplaceSection takes the raw section body, e.g. an array of projects or
// a personalInfo object, as found in a JSON export.
func (h *PortfolioHandler) ReplaceSection(c *gin.Context) {
	sec, known := portfolio.ParseSection(c.Param("section"))
	if !known {
		c.Error(apperror.NewInvalidInput("unknown section '"+c.Param("section")+"'", nil))
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSectionBody))
	if err != nil {
		c.Error(apperror.NewInvalidInput("failed to read request body", err))
		return
	}
	if err := sess.ReplaceSection(sec, body); err != nil {
		c.Error(err)
		return
	}
	h.writeModel(c, sess)
}

func (h *PortfolioHandler) AddSkill(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("name is required", err))
		return
	}
	if !sess.AddSkill(req.Name) {
		c.Error(apperror.NewConflict("skill", "name", req.Name))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": sess.Snapshot().Skills})
}

func (h *PortfolioHandler) RemoveSkill(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.RemoveSkill(c.Param("name")) {
		c.Error(apperror.NewNotFound("skill", c.Param("name")))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PortfolioHandler) AddItem(c *gin.Context) {
	coll, known := portfolio.ParseCollection(c.Param("collection"))
	if !known {
		c.Error(apperror.NewInvalidInput("unknown collection '"+c.Param("collection")+"'", nil))
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var (
		item any
		err  error
	)
	switch coll {
	case portfolio.CollectionProjects:
		var d portfolio.ProjectDraft
		if err = c.ShouldBindJSON(&d); err == nil {
			item, err = sess.AddProject(d)
		}
	case portfolio.CollectionExperience:
		var d portfolio.ExperienceDraft
		if err = c.ShouldBindJSON(&d); err == nil {
			item, err = sess.AddExperience(d)
		}
	case portfolio.CollectionEducation:
		var d portfolio.EducationDraft
		if err = c.ShouldBindJSON(&d); err == nil {
			item, err = sess.AddEducation(d)
		}
	}
	if err != nil {
		c.Error(bindOrDomain(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (h *PortfolioHandler) RemoveItem(c *gin.Context) {
	coll, known := portfolio.ParseCollection(c.Param("collection"))
	if !known {
		c.Error(apperror.NewInvalidInput("unknown collection '"+c.Param("collection")+"'", nil))
		return
	}
	id, err := portfolio.ParseID(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid item id", err))
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.RemoveItem(coll, id) {
		c.Error(apperror.NewNotFound(string(coll), id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Save flushes immediately and reports the resulting status.
func (h *PortfolioHandler) Save(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.SaveNow(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToSaveStatusDTO(sess.SaveState(), h.now())})
}

func (h *PortfolioHandler) Status(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToSaveStatusDTO(sess.SaveState(), h.now())})
}

func (h *PortfolioHandler) Progress(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToProgressDTO(sess.Snapshot())})
}

func (h *PortfolioHandler) Preview(c *gin.Context) {
	vm, err := h.previewUC.Execute(c.Request.Context(), GetIdentityFromGinContext(c), c.Query("viewport"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vm})
}

func (h *PortfolioHandler) Export(c *gin.Context) {
	art, err := h.exportUC.Execute(c.Request.Context(), exportUC.ExportInput{
		Identity: GetIdentityFromGinContext(c),
		Format:   c.Param("format"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(art.Filename))
	c.Data(http.StatusOK, art.ContentType, art.Body)
}

func (h *PortfolioHandler) Backup(c *gin.Context) {
	out, err := h.backupUC.Execute(c.Request.Context(), GetIdentityFromGinContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": out})
}

// bindOrDomain passes domain validation errors through and reports any
// other failure as a malformed body.
func bindOrDomain(err error) error {
	var verr *portfolio.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return apperror.NewInvalidInput("malformed request body", err)
}
