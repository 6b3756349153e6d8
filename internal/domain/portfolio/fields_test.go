package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetField_AllPathsRoundTrip(t *testing.T) {
	p := New()
	for _, path := range FieldPaths() {
		value := "#abcdef"
		require.NoError(t, p.SetField(path, value), path)
		got, ok := p.Field(path)
		assert.True(t, ok)
		assert.Equal(t, value, got, path)
	}
}

func TestSetField_UnknownPath(t *testing.T) {
	p := New()

	err := p.SetField("personalInfo.age", "42")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"personalInfo.age"}, vErr.Fields)
}

func TestSetField_ColorShape(t *testing.T) {
	p := New()

	assert.Error(t, p.SetField(FieldPrimaryColor, "blue"))
	assert.Equal(t, DefaultSettings().PrimaryColor, p.Settings.PrimaryColor)

	assert.NoError(t, p.SetField(FieldPrimaryColor, "#fff"))
	assert.Equal(t, "#fff", p.Settings.PrimaryColor)
}

func TestSetField_PersonalValuesAreNotContentChecked(t *testing.T) {
	p := New()

	require.NoError(t, p.SetField(FieldEmail, "not an email"))
	assert.Equal(t, "not an email", p.PersonalInfo.Email)
}

func TestSetFields_AllOrNothing(t *testing.T) {
	p := New()

	err := p.SetFields([]FieldUpdate{
		{Path: FieldName, Value: "Jane"},
		{Path: FieldTitle, Value: "Engineer"},
		{Path: "personalInfo.age", Value: "42"},
	})

	require.Error(t, err)
	assert.Empty(t, p.PersonalInfo.Name)
	assert.Empty(t, p.PersonalInfo.Title)

	require.NoError(t, p.SetFields([]FieldUpdate{
		{Path: FieldName, Value: "Jane"},
		{Path: FieldAccentColor, Value: "#000"},
	}))
	assert.Equal(t, "Jane", p.PersonalInfo.Name)
	assert.Equal(t, "#000", p.Settings.AccentColor)
}
