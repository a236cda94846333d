package application

import (
	"context"
	"strings"
	"testing"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyProjects = `[
  {"id": 1, "slug": "acme", "title": "Acme", "thumbnail": "/thumbs/acme.jpg", "heightRatio": 1.2,
   "images": ["/acme/1.jpg", "https://elsewhere.test/2.jpg"],
   "content": {"description": "Brand refresh", "text": "Delivered in six weeks"}},
  {"id": 2, "slug": "acme", "title": "Acme again", "thumbnail": "", "heightRatio": 1.0, "images": [],
   "content": {"description": "", "text": ""}},
  {"id": 3, "slug": "harbor", "title": "Harbor", "thumbnail": "https://cdn.test/h.jpg", "heightRatio": 1.8,
   "textContrast": "dark", "images": [], "content": {"description": "", "text": ""}}
]`

func TestImportServiceConvertLegacy(t *testing.T) {
	svc := NewImportService(nil, nil, "https://blob.test/", nil)
	var lp LegacyProject
	lp.Title = "Acme"
	lp.Images = []string{"/a.jpg"}
	lp.Content.Description = "Intro"

	blocks := svc.ConvertLegacy(lp)
	assert.Equal(t, []domain.Block{
		{Type: domain.BlockText, Content: "Intro"},
		{Type: domain.BlockFullImage, URL: "https://blob.test/a.jpg", Alt: "Acme image"},
	}, blocks)
}

func TestImportServiceImportProjects(t *testing.T) {
	ctx := context.Background()
	st := newTestStack(t)
	svc := NewImportService(st.projects, NewAssetService(st.assets, st.cache), "https://blob.test", nil)

	report, err := svc.ImportProjects(ctx, strings.NewReader(legacyProjects))
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "harbor"}, report.Imported)
	assert.Equal(t, []string{"acme"}, report.Skipped)
	assert.Empty(t, report.Failed)

	acme, err := st.projects.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "https://blob.test/thumbs/acme.jpg", acme.Thumbnail)
	assert.Equal(t, "light", acme.TextContrast)
	require.Len(t, acme.Blocks, 4)
	assert.Equal(t, "https://blob.test/acme/1.jpg", acme.Blocks[1].URL)
	assert.Equal(t, "https://elsewhere.test/2.jpg", acme.Blocks[2].URL)
	assert.Equal(t, 0, acme.Position)

	harbor, err := st.projects.GetBySlug(ctx, "harbor")
	require.NoError(t, err)
	assert.Equal(t, 1, harbor.Position)
	assert.Equal(t, "dark", harbor.TextContrast)

	again, err := svc.ImportProjects(ctx, strings.NewReader(legacyProjects))
	require.NoError(t, err)
	assert.Empty(t, again.Imported)
	assert.Equal(t, []string{"acme", "acme", "harbor"}, again.Skipped)

	_, err = svc.ImportProjects(ctx, strings.NewReader("{"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportServiceBackfillAssets(t *testing.T) {
	ctx := context.Background()
	st := newTestStack(t)
	assets := NewAssetService(st.assets, st.cache)
	svc := NewImportService(st.projects, assets, "", nil)

	p := &domain.Project{Slug: "reel", Title: "Reel", HeightRatio: 1.5, TextContrast: "light", Blocks: []domain.Block{
		{Type: domain.BlockFullImage, URL: "https://cdn.test/a.jpg"},
		{Type: domain.BlockTwoColumn, Left: "https://cdn.test/b.jpg", Right: "https://cdn.test/a.jpg"},
		{Type: domain.BlockVideo, URL: "https://cdn.test/c.mp4"},
		{Type: domain.BlockQuote, Content: "Great work"},
	}}
	require.NoError(t, st.projects.Create(ctx, p))

	report, err := svc.BackfillAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, &BackfillReport{Created: 3, Existing: 1}, report)

	video, err := assets.List(ctx, domain.AssetQuery{URL: "https://cdn.test/c.mp4"})
	require.NoError(t, err)
	require.Len(t, video, 1)
	assert.Equal(t, domain.MediaVideo, video[0].Type)
	require.NotNil(t, video[0].ProjectID)
	assert.Equal(t, p.ID, *video[0].ProjectID)

	report, err = svc.BackfillAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, &BackfillReport{Created: 0, Existing: 4}, report)
}
