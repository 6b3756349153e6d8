package render

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatHTML, FormatPDF:
		return f, true
	}
	return "", false
}

// Artifact is a finished export ready to be sent as a download.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export renders p in the given format. now stamps the JSON meta block and
// the JSON filename date.
func Export(p *portfolio.Portfolio, f Format, now time.Time) (Artifact, error) {
	name := displayName(orEmpty(p))
	switch f {
	case FormatJSON:
		body, err := JSON(p, now)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{
			Filename:    "portfolio_" + fileSafe(name, '_') + "_" + now.UTC().Format(time.DateOnly) + ".json",
			ContentType: "application/json",
			Body:        body,
		}, nil
	case FormatHTML:
		body, err := HTML(p)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{
			Filename:    "portfolio-" + fileSafe(name, '-') + ".html",
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(body),
		}, nil
	case FormatPDF:
		body, err := PDF(p)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: "portfolio.pdf", ContentType: "application/pdf", Body: body}, nil
	}
	return Artifact{}, &portfolio.ValidationError{Fields: []string{"format"}, Reason: "unsupported export format " + strconv.Quote(string(f))}
}

// fileSafe keeps letters and digits and collapses every other run into sep.
func fileSafe(name string, sep rune) string {
	var b strings.Builder
	pending := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "portfolio"
	}
	return b.String()
}
