package portfolio

import (
	"encoding/json"
	"fmt"
)

// Section names one group of portfolio data.
type Section string

const (
	SectionTemplate   Section = "template"
	SectionPersonal   Section = "personal"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSettings   Section = "settings"
)

func ParseSection(s string) (Section, bool) {
	switch sec := Section(s); sec {
	case SectionTemplate, SectionPersonal, SectionSkills, SectionProjects,
		SectionExperience, SectionEducation, SectionSettings:
		return sec, true
	case "personalInfo":
		return SectionPersonal, true
	}
	return "", false
}

// ReplaceSection swaps a whole section for the decoded data. The model is
// untouched when data does not decode or breaks a collection invariant.
func (p *Portfolio) ReplaceSection(s Section, data json.RawMessage) error {
	switch s {
	case SectionTemplate:
		var t *TemplateRef
		if err := decodeSection(s, data, &t); err != nil {
			return err
		}
		p.Template = t
	case SectionPersonal:
		var info PersonalInfo
		if err := decodeSection(s, data, &info); err != nil {
			return err
		}
		p.PersonalInfo = info
	case SectionSkills:
		var skills []string
		if err := decodeSection(s, data, &skills); err != nil {
			return err
		}
		if err := uniqueValues(s, skills, func(v string) string { return v }); err != nil {
			return err
		}
		p.Skills = nonNil(skills)
	case SectionProjects:
		var projects []Project
		if err := decodeSection(s, data, &projects); err != nil {
			return err
		}
		if err := uniqueIDs(s, projects, func(v Project) ID { return v.ID }); err != nil {
			return err
		}
		for i := range projects {
			if projects[i].Technologies == nil {
				projects[i].Technologies = []string{}
			}
		}
		p.Projects = nonNil(projects)
	case SectionExperience:
		var items []Experience
		if err := decodeSection(s, data, &items); err != nil {
			return err
		}
		if err := uniqueIDs(s, items, func(v Experience) ID { return v.ID }); err != nil {
			return err
		}
		p.Experience = nonNil(items)
	case SectionEducation:
		var items []Education
		if err := decodeSection(s, data, &items); err != nil {
			return err
		}
		if err := uniqueIDs(s, items, func(v Education) ID { return v.ID }); err != nil {
			return err
		}
		p.Education = nonNil(items)
	case SectionSettings:
		var settings Settings
		if err := decodeSection(s, data, &settings); err != nil {
			return err
		}
		if err := settings.validate(); err != nil {
			return err
		}
		p.Settings = settings
	default:
		return invalid(string(s), "unknown section")
	}
	return nil
}

func decodeSection(s Section, data json.RawMessage, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return invalid(string(s), fmt.Sprintf("malformed section data (%v)", err))
	}
	return nil
}

func uniqueValues[T any](s Section, items []T, key func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			return invalid(string(s), fmt.Sprintf("duplicate value %q", k))
		}
		seen[k] = struct{}{}
	}
	return nil
}

func uniqueIDs[T any](s Section, items []T, idOf func(T) ID) error {
	if err := uniqueValues(s, items, func(v T) string { return idOf(v).String() }); err != nil {
		return err
	}
	for _, it := range items {
		processIDs.Observe(idOf(it))
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
