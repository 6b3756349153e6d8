// Package render turns a portfolio into its preview view-model and export
// artifacts. Every function is pure and reads only the model it is given,
// so the preview and all exports always agree.
package render

import (
	"strings"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

const placeholderName = "My Portfolio"

type ViewportClass string

const (
	Desktop ViewportClass = "desktop"
	Tablet  ViewportClass = "tablet"
	Mobile  ViewportClass = "mobile"
)

type Viewport struct {
	Class  ViewportClass `json:"class"`
	Width  string        `json:"width"`
	Height string        `json:"height"`
}

var viewports = map[ViewportClass]Viewport{
	Desktop: {Class: Desktop, Width: "100%", Height: "auto"},
	Tablet:  {Class: Tablet, Width: "768px", Height: "1024px"},
	Mobile:  {Class: Mobile, Width: "375px", Height: "667px"},
}

// ParseViewport falls back to desktop for unknown or empty input.
func ParseViewport(s string) ViewportClass {
	if _, ok := viewports[ViewportClass(s)]; ok {
		return ViewportClass(s)
	}
	return Desktop
}

type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

type ProjectView struct {
	ID           portfolio.ID `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Technologies []string     `json:"technologies"`
	LiveURL      string       `json:"liveUrl,omitempty"`
	GithubURL    string       `json:"githubUrl,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Featured     bool         `json:"featured"`
}

// TimelineItem is one experience or education entry ready for display.
type TimelineItem struct {
	ID       portfolio.ID `json:"id"`
	Heading  string       `json:"heading"`
	Subtitle string       `json:"subtitle"`
	Location string       `json:"location,omitempty"`
	Period   string       `json:"period"`
	Details  string       `json:"details,omitempty"`
}

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

type ViewModel struct {
	Viewport     Viewport       `json:"viewport"`
	HasTemplate  bool           `json:"hasTemplate"`
	TemplateID   string         `json:"templateId,omitempty"`
	TemplateName string         `json:"templateName,omitempty"`
	Theme        Theme          `json:"theme"`
	BrandInitial string         `json:"brandInitial"`
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	Bio          string         `json:"bio"`
	AvatarURL    string         `json:"avatarUrl,omitempty"`
	Skills       []string       `json:"skills"`
	Projects     []ProjectView  `json:"projects"`
	Experience   []TimelineItem `json:"experience"`
	Education    []TimelineItem `json:"education"`
	Contact      Contact        `json:"contact"`
	// Nav lists the anchors of the sections that will actually render.
	Nav []string `json:"nav"`
}

// PreviewViewModel builds the live preview. The viewport only sizes the
// frame; content is identical for every class.
func PreviewViewModel(p *portfolio.Portfolio, vc ViewportClass) ViewModel {
	p = orEmpty(p)
	vm := ViewModel{
		Viewport:   viewports[ParseViewport(string(vc))],
		Theme:      themeFor(p),
		Name:       displayName(p),
		Title:      p.PersonalInfo.Title,
		Bio:        p.PersonalInfo.Bio,
		AvatarURL:  p.PersonalInfo.AvatarURL,
		Skills:     append([]string{}, p.Skills...),
		Projects:   make([]ProjectView, 0, len(p.Projects)),
		Experience: experienceTimeline(p.Experience),
		Education:  educationTimeline(p.Education),
		Contact: Contact{
			Email:    p.PersonalInfo.Email,
			Phone:    p.PersonalInfo.Phone,
			Location: p.PersonalInfo.Location,
			Website:  p.PersonalInfo.Website,
		},
	}
	vm.BrandInitial = strings.ToUpper(string([]rune(vm.Name)[:1]))
	if p.Template != nil {
		vm.HasTemplate = true
		vm.TemplateID = p.Template.ID
		vm.TemplateName = p.Template.Name
	}
	for _, pr := range p.Projects {
		vm.Projects = append(vm.Projects, ProjectView{
			ID:           pr.ID,
			Title:        pr.Title,
			Description:  pr.Description,
			Technologies: append([]string{}, pr.Technologies...),
			LiveURL:      pr.LiveURL,
			GithubURL:    pr.GithubURL,
			ImageURL:     pr.ImageURL,
			Featured:     pr.Featured,
		})
	}

	vm.Nav = []string{"about"}
	if len(vm.Skills) > 0 {
		vm.Nav = append(vm.Nav, "skills")
	}
	if len(vm.Projects) > 0 {
		vm.Nav = append(vm.Nav, "projects")
	}
	if len(vm.Experience) > 0 {
		vm.Nav = append(vm.Nav, "experience")
	}
	if len(vm.Education) > 0 {
		vm.Nav = append(vm.Nav, "education")
	}
	vm.Nav = append(vm.Nav, "contact")
	return vm
}

func orEmpty(p *portfolio.Portfolio) *portfolio.Portfolio {
	if p == nil {
		return portfolio.New()
	}
	return p
}

func displayName(p *portfolio.Portfolio) string {
	if name := strings.TrimSpace(p.PersonalInfo.Name); name != "" {
		return name
	}
	return placeholderName
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// themeFor lets the template palette win over user settings for the three
// brand colours; text and background always come from settings.
func themeFor(p *portfolio.Portfolio) Theme {
	defaults := portfolio.DefaultSettings()
	var tc []string
	if p.Template != nil {
		tc = p.Template.Colors
	}
	at := func(i int) string {
		if i < len(tc) {
			return tc[i]
		}
		return ""
	}
	s := p.Settings
	return Theme{
		Primary:    firstNonEmpty(at(0), s.PrimaryColor, defaults.PrimaryColor),
		Secondary:  firstNonEmpty(at(1), s.SecondaryColor, defaults.SecondaryColor),
		Accent:     firstNonEmpty(at(2), s.AccentColor, defaults.AccentColor),
		Text:       firstNonEmpty(s.TextColor, defaults.TextColor),
		Background: firstNonEmpty(s.BackgroundColor, defaults.BackgroundColor),
	}
}

// period renders "start - end", with "Present" for current entries even if
// a stale end date is still stored.
func period(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

func experienceTimeline(items []portfolio.Experience) []TimelineItem {
	out := make([]TimelineItem, 0, len(items))
	for _, e := range items {
		out = append(out, TimelineItem{
			ID:       e.ID,
			Heading:  e.Position,
			Subtitle: e.Company,
			Location: e.Location,
			Period:   period(e.StartDate, e.EndDate, e.Current),
			Details:  e.Description,
		})
	}
	return out
}

func educationTimeline(items []portfolio.Education) []TimelineItem {
	out := make([]TimelineItem, 0, len(items))
	for _, e := range items {
		heading := e.Degree
		if e.Field != "" {
			heading += " in " + e.Field
		}
		details := ""
		if e.Grade != "" {
			details = "Grade: " + e.Grade
		}
		out = append(out, TimelineItem{
			ID:       e.ID,
			Heading:  heading,
			Subtitle: e.Institution,
			Location: e.Location,
			Period:   period(e.StartDate, e.EndDate, e.Current),
			Details:  details,
		})
	}
	return out
}
