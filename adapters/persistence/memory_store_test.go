package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	_, err := NewMemoryPortfolioStore().Get(context.Background(), "nobody")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPortfolioStore()
	doc := portfolio.New()
	doc.AddSkill("Go")
	require.NoError(t, store.Set(ctx, "u1", doc, portfolio.SetOptions{}))

	doc.AddSkill("Rust")
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)

	got.Skills[0] = "changed"
	again, _ := store.Get(ctx, "u1")
	assert.Equal(t, []string{"Go"}, again.Skills)
}

func TestMemoryStore_MergeKeepsUnknownTopLevelKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPortfolioStore()
	require.NoError(t, store.SetRaw("u1", []byte(`{"legacyTheme":"dark","skills":["Perl"]}`)))

	doc := portfolio.New()
	doc.AddSkill("Go")
	require.NoError(t, store.Set(ctx, "u1", doc, portfolio.SetOptions{Merge: true}))

	assert.Contains(t, string(store.Raw("u1")), `"legacyTheme":"dark"`)
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)

	require.NoError(t, store.Set(ctx, "u1", doc, portfolio.SetOptions{Merge: false}))
	assert.NotContains(t, string(store.Raw("u1")), "legacyTheme")
}

func TestMemoryStore_NormalizesOldDocuments(t *testing.T) {
	store := NewMemoryPortfolioStore()
	require.NoError(t, store.SetRaw("u1", []byte(`{"personalInfo":{"name":"Old"}}`)))

	got, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Old", got.PersonalInfo.Name)
	assert.NotNil(t, got.Projects)
	assert.Equal(t, portfolio.DefaultSettings(), got.Settings)
}
