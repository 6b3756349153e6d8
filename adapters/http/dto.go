package http

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetFieldsRequest applies several scalar edits in order. Paths are the
// closed set returned by portfolio.FieldPaths.
type SetFieldsRequest struct {
	Fields []struct {
		Path  string `json:"path" binding:"required"`
		Value string `json:"value"`
	} `json:"fields" binding:"required,min=1"`
}

type selectTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

type applyPresetRequest struct {
	Name string `json:"name" binding:"required"`
}

type addSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

type goToStepRequest struct {
	Step string `json:"step" binding:"required"`
}

type selectSectionRequest struct {
	Section string `json:"section" binding:"required"`
}

type SaveStatusDTO struct {
	Status      autosave.Status `json:"status"`
	LastSavedAt *time.Time      `json:"lastSavedAt"`
	LastSaved   string          `json:"lastSaved"`
	Pending     bool            `json:"pending"`
	Error       string          `json:"error,omitempty"`
}

func ToSaveStatusDTO(st autosave.State, now time.Time) SaveStatusDTO {
	dto := SaveStatusDTO{Status: st.Status, Pending: st.Pending, LastSaved: "never"}
	if !st.LastSavedAt.IsZero() {
		t := st.LastSavedAt
		dto.LastSavedAt = &t
		dto.LastSaved = humanize.RelTime(t, now, "ago", "from now")
	}
	if st.Err != nil {
		dto.Error = "Failed to save changes, they are kept locally and retried on the next edit"
	}
	return dto
}

type ProgressDTO struct {
	CompletedCount int  `json:"completedCount"`
	TotalCount     int  `json:"totalCount"`
	Percent        int  `json:"percent"`
	Personal       bool `json:"personal"`
	Projects       bool `json:"projects"`
	Skills         bool `json:"skills"`
}

func ToProgressDTO(p *portfolio.Portfolio) ProgressDTO {
	pr := portfolio.SectionProgress(p)
	return ProgressDTO{
		CompletedCount: pr.CompletedCount,
		TotalCount:     pr.TotalCount,
		Percent:        pr.Percent(),
		Personal:       portfolio.IsPersonalComplete(p.PersonalInfo),
		Projects:       portfolio.IsProjectsComplete(p.Projects),
		Skills:         portfolio.IsSkillsComplete(p.Skills),
	}
}
