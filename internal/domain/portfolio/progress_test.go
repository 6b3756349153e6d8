package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionProgress(t *testing.T) {
	p := New()
	assert.Equal(t, Progress{CompletedCount: 0, TotalCount: 3}, SectionProgress(p))

	p.PersonalInfo = PersonalInfo{Name: "Jane", Email: "jane@example.com", Title: "Engineer"}
	p.AddSkill("Go")

	got := SectionProgress(p)
	assert.Equal(t, Progress{CompletedCount: 2, TotalCount: 3}, got)
	assert.Equal(t, 66, got.Percent())

	_, _ = p.AddProject(ProjectDraft{Title: "A", Description: "a"})
	assert.Equal(t, 100, SectionProgress(p).Percent())
}

func TestIsPersonalComplete(t *testing.T) {
	assert.False(t, IsPersonalComplete(PersonalInfo{Name: "Jane", Email: "jane@example.com"}))
	assert.False(t, IsPersonalComplete(PersonalInfo{Name: " ", Email: "jane@example.com", Title: "Dev"}))
	assert.True(t, IsPersonalComplete(PersonalInfo{Name: "Jane", Email: "jane@example.com", Title: "Dev"}))
}
