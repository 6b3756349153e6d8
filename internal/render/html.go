package render

import (
	"bytes"
	"html/template"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

var pageTmpl = template.Must(template.New("portfolio").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Name}}</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; line-height: 1.6; color: {{.Theme.Text}}; background: {{.Theme.Background}}; }
  header.hero { padding: 80px 24px; text-align: center; color: #ffffff; background: linear-gradient(135deg, {{.Theme.Primary}} 0%, {{.Theme.Secondary}} 100%); }
  header.hero img { width: 120px; height: 120px; border-radius: 50%; object-fit: cover; margin-bottom: 16px; }
  header.hero h1 { font-size: 2.5rem; }
  header.hero h2 { font-weight: 400; opacity: 0.9; }
  nav { display: flex; gap: 16px; justify-content: center; padding: 12px; }
  nav a { color: {{.Theme.Primary}}; text-decoration: none; }
  section { max-width: 960px; margin: 0 auto; padding: 48px 24px; }
  section h3 { color: {{.Theme.Primary}}; margin-bottom: 24px; font-size: 1.75rem; }
  .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(260px, 1fr)); gap: 24px; }
  .card { border: 1px solid #e5e7eb; border-radius: 12px; padding: 20px; }
  .card img { width: 100%; border-radius: 8px; margin-bottom: 12px; }
  .featured { border-color: {{.Theme.Accent}}; }
  .tags span, .skills span { display: inline-block; margin: 4px; padding: 4px 12px; border-radius: 999px; background: {{.Theme.Accent}}; color: #ffffff; font-size: 0.85rem; }
  .item { margin-bottom: 24px; }
  .item .period { color: #6b7280; font-size: 0.9rem; }
  .links a { margin-right: 12px; color: {{.Theme.Accent}}; }
  footer { text-align: center; padding: 24px; color: #6b7280; }
</style>
</head>
<body>
<header class="hero" id="about">
  {{- if .AvatarURL}}
  <img src="{{.AvatarURL}}" alt="{{.Name}}">
  {{- end}}
  <h1>{{.Name}}</h1>
  {{- if .Title}}
  <h2>{{.Title}}</h2>
  {{- end}}
  <p>{{.Bio}}</p>
</header>
<nav>
  {{- range .Nav}}
  <a href="#{{.}}">{{.}}</a>
  {{- end}}
</nav>
{{- if .Skills}}
<section id="skills">
  <h3>Skills</h3>
  <div class="skills">
    {{- range .Skills}}
    <span>{{.}}</span>
    {{- end}}
  </div>
</section>
{{- end}}
{{- if .Projects}}
<section id="projects">
  <h3>Projects</h3>
  <div class="grid">
    {{- range .Projects}}
    <article class="card{{if .Featured}} featured{{end}}">
      {{- if .ImageURL}}
      <img src="{{.ImageURL}}" alt="{{.Title}}">
      {{- end}}
      <h4>{{.Title}}</h4>
      <p>{{.Description}}</p>
      {{- if .Technologies}}
      <div class="tags">{{range .Technologies}}<span>{{.}}</span>{{end}}</div>
      {{- end}}
      <div class="links">
        {{- if .LiveURL}}<a href="{{.LiveURL}}">Live</a>{{end}}
        {{- if .GithubURL}}<a href="{{.GithubURL}}">Code</a>{{end}}
      </div>
    </article>
    {{- end}}
  </div>
</section>
{{- end}}
{{- if .Experience}}
<section id="experience">
  <h3>Experience</h3>
  {{- range .Experience}}
  {{template "timeline" .}}
  {{- end}}
</section>
{{- end}}
{{- if .Education}}
<section id="education">
  <h3>Education</h3>
  {{- range .Education}}
  {{template "timeline" .}}
  {{- end}}
</section>
{{- end}}
<section id="contact">
  <h3>Contact</h3>
  {{- with .Contact}}
  {{- if .Email}}<p>Email: <a href="mailto:{{.Email}}">{{.Email}}</a></p>{{end}}
  {{- if .Phone}}<p>Phone: {{.Phone}}</p>{{end}}
  {{- if .Location}}<p>Location: {{.Location}}</p>{{end}}
  {{- if .Website}}<p>Website: <a href="{{.Website}}">{{.Website}}</a></p>{{end}}
  {{- end}}
</section>
<footer>{{.Name}}</footer>
</body>
</html>
{{define "timeline"}}<div class="item">
    <h4>{{.Heading}}</h4>
    <p>{{.Subtitle}}{{if .Location}} &middot; {{.Location}}{{end}}</p>
    {{- if .Period}}
    <p class="period">{{.Period}}</p>
    {{- end}}
    {{- if .Details}}
    <p>{{.Details}}</p>
    {{- end}}
  </div>{{end}}`))

// HTML renders a standalone page with inline styles. Collection sections
// are left out entirely when their collection is empty.
func HTML(p *portfolio.Portfolio) (string, error) {
	vm := PreviewViewModel(p, Desktop)
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, vm); err != nil {
		return "", err
	}
	return buf.String(), nil
}
