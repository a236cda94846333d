package application

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/moraleja/portfolio/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testStack struct {
	projects domain.ProjectRepository
	assets   *repository.GalleryRepository
	settings domain.SettingsRepository
	contacts domain.ContactRepository
	cache    *ListingCache
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	ctx := context.Background()
	db, err := repository.Open(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(ctx, db, repository.DriverSQLite))

	return &testStack{
		projects: repository.NewProjectRepository(db),
		assets:   repository.NewGalleryRepository(db),
		settings: repository.NewConfigRepository(db),
		contacts: repository.NewContactRepository(db),
		cache:    NewListingCache(time.Minute),
	}
}

// seedAssets stores n gallery images; ids run 1..n.
func (s *testStack) seedAssets(t *testing.T, n int, mutate func(i int, a *domain.Asset)) {
	t.Helper()
	for i := 1; i <= n; i++ {
		a := &domain.Asset{
			URL:           fmt.Sprintf("https://cdn.test/%d.jpg", i),
			Type:          domain.MediaImage,
			Title:         strPtr(fmt.Sprintf("Asset %d", i)),
			Tags:          []string{},
			ShowInGallery: true,
		}
		if mutate != nil {
			mutate(i, a)
		}
		require.NoError(t, s.assets.Create(context.Background(), a))
	}
}

func strPtr(s string) *string { return &s }

// fakeClock returns a fixed, manually advanced time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}
