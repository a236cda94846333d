package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))
	// Migrations are idempotent.
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))
	return db
}

func str(s string) *string { return &s }

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.Error(t, err)
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	a := &domain.Project{Slug: "acme", Title: "Acme", HeightRatio: 1.5, TextContrast: "light",
		Blocks: []domain.Block{{Type: domain.BlockHeading, Content: "Hello", Level: 1}}}
	b := &domain.Project{Slug: "harbor", Title: "Harbor", HeightRatio: 1.2, TextContrast: "dark"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 1, b.Position)

	dup := &domain.Project{Slug: "acme", Title: "Again", HeightRatio: 1.5, TextContrast: "light"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrConflict)

	got, err := repo.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "Hello", got.Blocks[0].Content)

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Blocks)
	assert.NotNil(t, got.Blocks)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Reorder(ctx, []int{b.ID, a.ID}))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "harbor", all[0].Slug)
	assert.Equal(t, "acme", all[1].Slug)

	assert.ErrorIs(t, repo.Reorder(ctx, []int{a.ID, 999}), domain.ErrNotFound)
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "harbor", all[0].Slug, "failed reorder is rolled back")

	a.Title = "Acme Co"
	require.NoError(t, repo.Update(ctx, a))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", got.Title)

	b.Slug = "acme"
	assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrConflict)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, a), domain.ErrNotFound)
}

func TestGalleryRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	projects := NewProjectRepository(db)
	repo := NewGalleryRepository(db)

	p := &domain.Project{Slug: "acme", Title: "Acme", HeightRatio: 1.5, TextContrast: "light"}
	require.NoError(t, projects.Create(ctx, p))

	logo := &domain.Asset{URL: "https://cdn.test/logo.png", Type: domain.MediaImage, Filename: "logo.png",
		Title: str("Acme logo"), Tags: []string{"Branding", "Logos"}, ProjectID: &p.ID, ShowInGallery: true}
	reel := &domain.Asset{URL: "https://cdn.test/reel.mp4", Type: domain.MediaVideo, Filename: "reel.mp4",
		Tags: []string{"animation", " branding "}, ShowInGallery: true}
	hidden := &domain.Asset{URL: "https://cdn.test/wip.png", Type: domain.MediaImage, Filename: "wip.png",
		Tags: []string{"Print"}, ShowInGallery: false}
	for _, a := range []*domain.Asset{logo, reel, hidden} {
		require.NoError(t, repo.Create(ctx, a))
	}
	assert.ErrorIs(t, repo.Create(ctx, &domain.Asset{URL: logo.URL, Type: domain.MediaImage}), domain.ErrConflict)

	all, err := repo.List(ctx, domain.AssetQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, hidden.ID, all[0].ID, "newest first")

	videos, err := repo.List(ctx, domain.AssetQuery{Type: domain.MediaVideo})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, reel.ID, videos[0].ID)

	branded, err := repo.List(ctx, domain.AssetQuery{Tags: []string{"BRANDING"}})
	require.NoError(t, err)
	assert.Len(t, branded, 2)

	searched, err := repo.List(ctx, domain.AssetQuery{Search: "logo", ProjectID: &p.ID})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, logo.ID, searched[0].ID)

	byURL, err := repo.List(ctx, domain.AssetQuery{URL: reel.URL})
	require.NoError(t, err)
	assert.Len(t, byURL, 1)

	gallery, err := repo.ListGallery(ctx, true)
	require.NoError(t, err)
	require.Len(t, gallery, 2)
	assert.Equal(t, reel.ID, gallery[0].ID)
	assert.Nil(t, gallery[0].ProjectSlug)
	require.NotNil(t, gallery[1].ProjectSlug)
	assert.Equal(t, "acme", *gallery[1].ProjectSlug)
	assert.Equal(t, "Acme", *gallery[1].ProjectTitle)

	everything, err := repo.ListGallery(ctx, false)
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	tags, err := repo.DistinctTags(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"animation", "branding", "Logos"}, tags)

	show := true
	updated, err := repo.Update(ctx, hidden.ID, domain.AssetPatch{AltText: str("Work in progress"), ShowInGallery: &show, ProjectID: &p.ID})
	require.NoError(t, err)
	assert.True(t, updated.ShowInGallery)
	assert.Equal(t, []string{"Print"}, updated.Tags)

	zero := 0
	updated, err = repo.Update(ctx, hidden.ID, domain.AssetPatch{ProjectID: &zero, Tags: []string{}})
	require.NoError(t, err)
	assert.Nil(t, updated.ProjectID)
	assert.Empty(t, updated.Tags)
	assert.Equal(t, "Work in progress", *updated.AltText)

	g, err := repo.GetGalleryAsset(ctx, logo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme logo", *g.Title)

	// Deleting the project detaches its assets.
	require.NoError(t, projects.Delete(ctx, p.ID))
	got, err := repo.GetByID(ctx, logo.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProjectID)

	require.NoError(t, repo.Delete(ctx, logo.ID))
	assert.ErrorIs(t, repo.Delete(ctx, logo.ID), domain.ErrNotFound)
	_, err = repo.GetGalleryAsset(ctx, logo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Update(ctx, logo.ID, domain.AssetPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewConfigRepository(newTestDB(t))

	_, err := repo.GetByKey(ctx, domain.SettingPredefinedTags)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, domain.SettingPredefinedTags, `["Branding"]`))
	require.NoError(t, repo.Upsert(ctx, domain.SettingPredefinedTags, `["Print"]`))
	require.NoError(t, repo.Upsert(ctx, domain.SettingGalleryPageSize, `12`))

	s, err := repo.GetByKey(ctx, domain.SettingPredefinedTags)
	require.NoError(t, err)
	assert.Equal(t, `["Print"]`, s.Value)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.SettingGalleryPageSize, all[0].Key)
}

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(newTestDB(t))

	id, err := repo.Create(ctx, domain.ContactInquiry{Name: "Ana", Email: "ana@example.com", Message: "Hi"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.InquiryNew, list[0].Status)
	assert.Nil(t, list[0].RespondedAt)

	require.NoError(t, repo.UpdateStatus(ctx, id, domain.InquiryReplied))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryReplied, list[0].Status)
	assert.NotNil(t, list[0].RespondedAt)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, id+1, domain.InquiryArchived), domain.ErrNotFound)
}
