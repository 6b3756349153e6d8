package portfolio

import (
	"slices"
	"strings"
	"time"
)

// Collection names the id-bearing sections.
type Collection string

const (
	CollectionProjects   Collection = "projects"
	CollectionExperience Collection = "experience"
	CollectionEducation  Collection = "education"
)

func ParseCollection(s string) (Collection, bool) {
	switch c := Collection(s); c {
	case CollectionProjects, CollectionExperience, CollectionEducation:
		return c, true
	}
	return "", false
}

type ProjectDraft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	ImageURL     string   `json:"imageUrl"`
	Featured     bool     `json:"featured"`
}

type ExperienceDraft struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationDraft struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Grade       string `json:"grade"`
}

func required(pairs ...string) error {
	var absent []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			absent = append(absent, pairs[i])
		}
	}
	return missing(absent...)
}

func (d ProjectDraft) Validate() error {
	return required("title", d.Title, "description", d.Description)
}

func (d ExperienceDraft) Validate() error {
	return required("position", d.Position, "company", d.Company)
}

func (d EducationDraft) Validate() error {
	return required("degree", d.Degree, "institution", d.Institution)
}

func (p *Portfolio) AddProject(d ProjectDraft) (Project, error) {
	if err := d.Validate(); err != nil {
		return Project{}, err
	}
	technologies := make([]string, 0, len(d.Technologies))
	for _, t := range d.Technologies {
		if t = strings.TrimSpace(t); t != "" {
			technologies = append(technologies, t)
		}
	}
	pr := Project{
		ID:           NextID(),
		Title:        d.Title,
		Description:  d.Description,
		Technologies: technologies,
		LiveURL:      d.LiveURL,
		GithubURL:    d.GithubURL,
		ImageURL:     d.ImageURL,
		Featured:     d.Featured,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	p.Projects = append(p.Projects, pr)
	return pr, nil
}

func (p *Portfolio) AddExperience(d ExperienceDraft) (Experience, error) {
	if err := d.Validate(); err != nil {
		return Experience{}, err
	}
	e := Experience{
		ID:          NextID(),
		Position:    d.Position,
		Company:     d.Company,
		Location:    d.Location,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Current:     d.Current,
		Description: d.Description,
	}
	p.Experience = append(p.Experience, e)
	return e, nil
}

func (p *Portfolio) AddEducation(d EducationDraft) (Education, error) {
	if err := d.Validate(); err != nil {
		return Education{}, err
	}
	e := Education{
		ID:          NextID(),
		Degree:      d.Degree,
		Field:       d.Field,
		Institution: d.Institution,
		Location:    d.Location,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Current:     d.Current,
		Grade:       d.Grade,
	}
	p.Education = append(p.Education, e)
	return e, nil
}

func removeByID[T any](items []T, id ID, idOf func(T) ID) ([]T, bool) {
	i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}

// RemoveItem drops the entity with the given id. A missing id is not an error.
func (p *Portfolio) RemoveItem(c Collection, id ID) bool {
	var removed bool
	switch c {
	case CollectionProjects:
		p.Projects, removed = removeByID(p.Projects, id, func(v Project) ID { return v.ID })
	case CollectionExperience:
		p.Experience, removed = removeByID(p.Experience, id, func(v Experience) ID { return v.ID })
	case CollectionEducation:
		p.Education, removed = removeByID(p.Education, id, func(v Education) ID { return v.ID })
	}
	return removed
}

// SetProjectImage points an existing project at an uploaded image.
func (p *Portfolio) SetProjectImage(id ID, url string) bool {
	for i := range p.Projects {
		if p.Projects[i].ID == id {
			p.Projects[i].ImageURL = url
			return true
		}
	}
	return false
}

func (p *Portfolio) AddSkill(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(p.Skills, name) {
		return false
	}
	p.Skills = append(p.Skills, name)
	return true
}

func (p *Portfolio) RemoveSkill(name string) bool {
	i := slices.Index(p.Skills, name)
	if i < 0 {
		return false
	}
	p.Skills = slices.Delete(p.Skills, i, i+1)
	return true
}
