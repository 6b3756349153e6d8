package portfolio

import (
	"slices"
	"time"
)

type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	AvatarURL string `json:"avatarUrl"`
}

type Project struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	LiveURL      string    `json:"liveUrl"`
	GithubURL    string    `json:"githubUrl"`
	ImageURL     string    `json:"imageUrl"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Experience keeps EndDate even when Current is set; renderers show "Present".
type Experience struct {
	ID          ID     `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID          ID     `json:"id"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Grade       string `json:"grade"`
}

type Settings struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
}

func DefaultSettings() Settings {
	return Settings{
		PrimaryColor:    "#667eea",
		SecondaryColor:  "#764ba2",
		AccentColor:     "#3b82f6",
		TextColor:       "#333333",
		BackgroundColor: "#ffffff",
	}
}

// Portfolio is the canonical in-memory model of one user's portfolio. It is
// also the document shape written to the store.
type Portfolio struct {
	Template     *TemplateRef `json:"template"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Skills       []string     `json:"skills"`
	Projects     []Project    `json:"projects"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Settings     Settings     `json:"settings"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// New returns an empty portfolio with default settings.
func New() *Portfolio {
	return &Portfolio{
		Skills:     []string{},
		Projects:   []Project{},
		Experience: []Experience{},
		Education:  []Education{},
		Settings:   DefaultSettings(),
	}
}

// Seed returns an empty portfolio whose name and email come from the identity.
func Seed(id Identity) *Portfolio {
	p := New()
	p.PersonalInfo.Name = id.SeedName()
	p.PersonalInfo.Email = id.Email
	return p
}

// Normalize replaces nil collections with empty ones so documents written by
// older clients serialize the same way as fresh ones.
func (p *Portfolio) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = []string{}
		}
	}
	if p.Settings == (Settings{}) {
		p.Settings = DefaultSettings()
	}
}

// Clone returns a deep copy. Snapshots and renders work on clones so the
// session can keep mutating the original.
func (p *Portfolio) Clone() *Portfolio {
	if p == nil {
		return nil
	}
	c := *p
	if p.Template != nil {
		t := p.Template.clone()
		c.Template = &t
	}
	c.Skills = slices.Clone(p.Skills)
	c.Projects = make([]Project, len(p.Projects))
	for i, pr := range p.Projects {
		pr.Technologies = slices.Clone(pr.Technologies)
		c.Projects[i] = pr
	}
	c.Experience = slices.Clone(p.Experience)
	c.Education = slices.Clone(p.Education)
	c.Normalize()
	return &c
}
