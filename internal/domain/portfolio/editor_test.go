package portfolio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

func TestAddSkill_RejectsDuplicates(t *testing.T) {
	p := New()

	assert.True(t, p.AddSkill("React"))
	assert.False(t, p.AddSkill("React"))
	assert.Len(t, p.Skills, 1)
}

func TestAddSkill_TrimsAndIsCaseSensitive(t *testing.T) {
	p := New()

	assert.False(t, p.AddSkill("   "))
	assert.True(t, p.AddSkill("  Go  "))
	assert.True(t, p.AddSkill("go"))
	assert.False(t, p.AddSkill("Go"))
	assert.Equal(t, []string{"Go", "go"}, p.Skills)
}

func TestRemoveSkill(t *testing.T) {
	p := New()
	p.AddSkill("Go")
	p.AddSkill("SQL")

	assert.False(t, p.RemoveSkill("go"))
	assert.True(t, p.RemoveSkill("Go"))
	assert.Equal(t, []string{"SQL"}, p.Skills)
}

func TestAddProject_AssignsDistinctIDsInOrder(t *testing.T) {
	p := New()
	draft := ProjectDraft{Title: "Portfolio", Description: "My site", Technologies: []string{"Go", " ", "React "}}

	first, err := p.AddProject(draft)
	require.NoError(t, err)
	second, err := p.AddProject(draft)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, p.Projects, 2)
	assert.Equal(t, first.ID, p.Projects[0].ID)
	assert.Equal(t, second.ID, p.Projects[1].ID)
	assert.Equal(t, []string{"Go", "React"}, first.Technologies)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestAddProject_RequiresTitleAndDescription(t *testing.T) {
	p := New()

	_, err := p.AddProject(ProjectDraft{Title: " "})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"title", "description"}, vErr.Fields)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Empty(t, p.Projects)
}

func TestAddExperience_ValidationGate(t *testing.T) {
	p := New()

	_, err := p.AddExperience(ExperienceDraft{Position: "", Company: "Acme"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"position"}, vErr.Fields)
	assert.Empty(t, p.Experience)
}

func TestAddExperience_KeepsStaleEndDateWhenCurrent(t *testing.T) {
	p := New()

	e, err := p.AddExperience(ExperienceDraft{Position: "Engineer", Company: "Acme", EndDate: "2022-01", Current: true})

	require.NoError(t, err)
	assert.Equal(t, "2022-01", e.EndDate)
	assert.True(t, e.Current)
}

func TestAddEducation_RequiresDegreeAndInstitution(t *testing.T) {
	p := New()

	_, err := p.AddEducation(EducationDraft{Degree: "BSc"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"institution"}, vErr.Fields)

	e, err := p.AddEducation(EducationDraft{Degree: "BSc", Institution: "MIT"})
	require.NoError(t, err)
	assert.Equal(t, []Education{e}, p.Education)
}

func TestRemoveItem(t *testing.T) {
	p := New()
	a, _ := p.AddProject(ProjectDraft{Title: "A", Description: "a"})
	b, _ := p.AddProject(ProjectDraft{Title: "B", Description: "b"})
	exp, _ := p.AddExperience(ExperienceDraft{Position: "Dev", Company: "Acme"})

	assert.False(t, p.RemoveItem(CollectionProjects, exp.ID+1000))
	assert.True(t, p.RemoveItem(CollectionProjects, a.ID))
	assert.False(t, p.RemoveItem(CollectionProjects, a.ID))
	require.Len(t, p.Projects, 1)
	assert.Equal(t, b.ID, p.Projects[0].ID)

	assert.True(t, p.RemoveItem(CollectionExperience, exp.ID))
	assert.Empty(t, p.Experience)
}

func TestSetProjectImage(t *testing.T) {
	p := New()
	pr, _ := p.AddProject(ProjectDraft{Title: "A", Description: "a"})

	assert.True(t, p.SetProjectImage(pr.ID, "https://img/a.png"))
	assert.False(t, p.SetProjectImage(pr.ID+1, "https://img/b.png"))
	assert.Equal(t, "https://img/a.png", p.Projects[0].ImageURL)
}
