package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDSource_StrictlyIncreasingUnderFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	src := NewIDSource(func() time.Time { return frozen })

	a, b, c := src.Next(), src.Next(), src.Next()

	assert.Equal(t, ID(1_700_000_000_000), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, b+1, c)
}

func TestIdentity_SeedName(t *testing.T) {
	assert.Equal(t, "jane.doe", Identity{Email: "jane.doe@x.com"}.SeedName())
	assert.Equal(t, "Jane Doe", Identity{DisplayName: "Jane Doe", Email: "jane.doe@x.com"}.SeedName())
	assert.Equal(t, "", Identity{}.SeedName())
}

func TestClone_IsDeep(t *testing.T) {
	p := New()
	_ = p.SelectTemplate("modern-developer")
	p.AddSkill("Go")
	_, _ = p.AddProject(ProjectDraft{Title: "A", Description: "a", Technologies: []string{"Go"}})

	c := p.Clone()
	c.Skills[0] = "Rust"
	c.Projects[0].Technologies[0] = "Rust"
	c.Template.Features[0] = "x"

	assert.Equal(t, "Go", p.Skills[0])
	assert.Equal(t, "Go", p.Projects[0].Technologies[0])
	assert.NotEqual(t, "x", p.Template.Features[0])
}
