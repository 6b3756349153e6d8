package portfolio

import "strings"

func nonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func IsPersonalComplete(info PersonalInfo) bool {
	return nonEmpty(info.Name) && nonEmpty(info.Email) && nonEmpty(info.Title)
}

func IsProjectsComplete(projects []Project) bool {
	return len(projects) > 0
}

func IsSkillsComplete(skills []string) bool {
	return len(skills) > 0
}

// Progress counts the tracked sections (personal, projects, skills) that
// are complete. It feeds the progress bar only; it never gates navigation.
type Progress struct {
	CompletedCount int `json:"completedCount"`
	TotalCount     int `json:"totalCount"`
}

func (pr Progress) Percent() int {
	if pr.TotalCount == 0 {
		return 0
	}
	return pr.CompletedCount * 100 / pr.TotalCount
}

func SectionProgress(p *Portfolio) Progress {
	checks := []bool{
		IsPersonalComplete(p.PersonalInfo),
		IsProjectsComplete(p.Projects),
		IsSkillsComplete(p.Skills),
	}
	pr := Progress{TotalCount: len(checks)}
	for _, ok := range checks {
		if ok {
			pr.CompletedCount++
		}
	}
	return pr
}
