package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type MediaHandler struct {
	uploadUC *mediaUC.UploadImageUseCase
	listUC   *mediaUC.ListMediaUseCase
	logger   logger.Logger
}

func NewMediaHandler(uploadUC *mediaUC.UploadImageUseCase, listUC *mediaUC.ListMediaUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{uploadUC: uploadUC, listUC: listUC, logger: log}
}

// Upload takes a multipart "file" and, for project images, an optional
// "project_id" form field naming the project to update.
func (h *MediaHandler) Upload(c *gin.Context) {
	kind, ok := media.ParseKind(c.Param("kind"))
	if !ok {
		c.Error(apperror.NewInvalidInput("upload kind must be avatar or project", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}

	input := mediaUC.UploadImageInput{
		Identity: GetIdentityFromGinContext(c),
		Kind:     kind,
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
	}
	if raw := c.PostForm("project_id"); raw != "" {
		id, err := portfolio.ParseID(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid project_id", err))
			return
		}
		input.ProjectID = &id
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()
	input.File = file

	output, err := h.uploadUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": output})
}

func (h *MediaHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	output, err := h.listUC.Execute(c.Request.Context(), mediaUC.ListMediaInput{
		Identity: GetIdentityFromGinContext(c),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": output.Medias})
}
