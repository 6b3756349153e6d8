package render

import (
	"encoding/json"
	"time"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

// ExportVersion is stamped into every JSON export.
const ExportVersion = "1.0"

type exportMeta struct {
	ExportedAt   time.Time `json:"exportedAt"`
	Version      string    `json:"version"`
	TemplateName string    `json:"templateName"`
}

type exportDocument struct {
	Meta exportMeta `json:"meta"`
	*portfolio.Portfolio
}

// JSON writes meta followed by the model fields, indented by two spaces.
// It is the only export that can be imported again section by section.
func JSON(p *portfolio.Portfolio, now time.Time) ([]byte, error) {
	p = orEmpty(p).Clone()
	meta := exportMeta{ExportedAt: now.UTC(), Version: ExportVersion}
	if p.Template != nil {
		meta.TemplateName = p.Template.Name
	}
	return json.MarshalIndent(exportDocument{Meta: meta, Portfolio: p}, "", "  ")
}
