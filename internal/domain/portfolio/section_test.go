package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceSection(t *testing.T) {
	p := New()

	require.NoError(t, p.ReplaceSection(SectionSkills, json.RawMessage(`["Go","SQL"]`)))
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)

	require.NoError(t, p.ReplaceSection(SectionPersonal, json.RawMessage(`{"name":"Jane","email":"j@x.com"}`)))
	assert.Equal(t, "Jane", p.PersonalInfo.Name)

	require.NoError(t, p.ReplaceSection(SectionProjects, json.RawMessage(`null`)))
	assert.NotNil(t, p.Projects)
	assert.Empty(t, p.Projects)
}

func TestReplaceSection_RejectsBrokenInvariants(t *testing.T) {
	p := New()
	p.AddSkill("Go")

	assert.Error(t, p.ReplaceSection(SectionSkills, json.RawMessage(`["A","A"]`)))
	assert.Error(t, p.ReplaceSection(SectionProjects, json.RawMessage(`[{"id":1,"title":"a"},{"id":1,"title":"b"}]`)))
	assert.Error(t, p.ReplaceSection(SectionSettings, json.RawMessage(`{`)))
	assert.Error(t, p.ReplaceSection("hobbies", json.RawMessage(`[]`)))
	assert.Equal(t, []string{"Go"}, p.Skills)
}

func TestReplaceSection_SettingsMustBeHexColours(t *testing.T) {
	p := New()

	err := p.ReplaceSection(SectionSettings, json.RawMessage(`{"primaryColor":"red; background:url(x)"}`))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"settings.primaryColor"}, vErr.Fields)
	assert.Equal(t, DefaultSettings(), p.Settings)

	require.NoError(t, p.ReplaceSection(SectionSettings, json.RawMessage(`{"primaryColor":"#123","accentColor":"#abcdef"}`)))
	assert.Equal(t, "#123", p.Settings.PrimaryColor)
	assert.Equal(t, "#abcdef", p.Settings.AccentColor)
	assert.Empty(t, p.Settings.TextColor)
}

func TestReplaceSection_ImportedIDsAreNotReused(t *testing.T) {
	p := New()
	future := NextID() + 1_000_000

	require.NoError(t, p.ReplaceSection(SectionEducation, json.RawMessage(`[{"id":`+future.String()+`,"degree":"BSc","institution":"MIT"}]`)))
	e, err := p.AddEducation(EducationDraft{Degree: "MSc", Institution: "MIT"})

	require.NoError(t, err)
	assert.Greater(t, e.ID, future)
}

func TestParseSection(t *testing.T) {
	s, ok := ParseSection("personalInfo")
	assert.True(t, ok)
	assert.Equal(t, SectionPersonal, s)

	_, ok = ParseSection("hobbies")
	assert.False(t, ok)
}
