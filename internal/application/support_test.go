package application

import (
	"context"
	"testing"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	var v Validator
	assert.NoError(t, v.ValidateEmail("hola@moraleja.co"))
	assert.Error(t, v.ValidateEmail("not-an-email"))
	assert.Error(t, v.ValidateEmail(""))

	assert.NoError(t, v.ValidateSlug("summer-campaign-2024"))
	for _, bad := range []string{"", "Summer", "a--b", "-a", "a_b"} {
		assert.Error(t, v.ValidateSlug(bad), bad)
	}

	assert.Error(t, v.ValidateName(" ", "title", 1, 10))
	assert.Error(t, v.ValidateName("abcdefghijk", "title", 1, 10))
	assert.NoError(t, v.ValidateName("ñandú", "title", 5, 5))

	err := v.FormatValidationErrors([]error{assert.AnError, assert.AnError})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "; ")
	assert.NoError(t, v.FormatValidationErrors(nil))
}

func TestRateLimiterWindow(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimiter(time.Minute, 2)
	rl.now = clock.now

	require.NoError(t, rl.Allow("1.2.3.4"))
	require.NoError(t, rl.Allow("1.2.3.4"))
	assert.ErrorIs(t, rl.Allow("1.2.3.4"), domain.ErrRateLimited)
	assert.Equal(t, 0, rl.GetRemaining("1.2.3.4"))
	assert.Equal(t, 2, rl.GetRemaining("5.6.7.8"))

	clock.advance(time.Minute + time.Second)
	assert.Equal(t, 2, rl.GetRemaining("1.2.3.4"))
	rl.Cleanup()
	assert.Equal(t, 0, rl.Size())
	assert.NoError(t, rl.Allow("1.2.3.4"))

	rl.Reset("1.2.3.4")
	assert.Equal(t, 0, rl.Size())
}

func TestSessionManagerExpiry(t *testing.T) {
	clock := newFakeClock()
	sm := NewSessionManager(time.Hour)
	sm.now = clock.now

	token, expires := sm.Issue("admin")
	assert.Equal(t, clock.t.Add(time.Hour), expires)
	user, ok := sm.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, "admin", user)

	other, _ := sm.Issue("admin")
	sm.Revoke(other)
	_, ok = sm.Resolve(other)
	assert.False(t, ok)

	clock.advance(2 * time.Hour)
	sm.Cleanup()
	assert.Equal(t, 0, sm.Size())
	_, ok = sm.Resolve(token)
	assert.False(t, ok)
}

func TestAuthService(t *testing.T) {
	sessions := NewSessionManager(time.Hour)
	auth := NewAuthService("admin", "s3cret", sessions, NewRateLimiter(time.Minute, 2), nil)

	_, err := auth.Login("admin", "wrong", "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	res, err := auth.Login("admin", "s3cret", "10.0.0.1")
	require.NoError(t, err)
	user, err := auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	_, err = auth.Login("admin", "s3cret", "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	auth.Logout(res.Token)
	_, err = auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = auth.Authenticate("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	disabled := NewAuthService("admin", "", sessions, nil, nil)
	_, err = disabled.Login("admin", "", "10.0.0.2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListingCacheTTL(t *testing.T) {
	clock := newFakeClock()
	lc := NewListingCache(time.Minute)
	lc.now = clock.now

	lc.Set("visible", []domain.GalleryAsset{{ID: 1}})
	got, ok := lc.Get("visible")
	require.True(t, ok)
	assert.Len(t, got, 1)

	clock.advance(2 * time.Minute)
	_, ok = lc.Get("visible")
	assert.False(t, ok)
	lc.Cleanup()
	assert.Equal(t, 0, lc.Size())

	lc.Set("all", nil)
	lc.Clear()
	assert.Equal(t, 0, lc.Size())
}

func TestConfigServiceDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStack(t)
	svc := NewConfigService(st.settings, SiteDefaults{})

	tags, err := svc.PredefinedTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Branding", tags[0])
	size, err := svc.GalleryPageSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, size)

	assert.ErrorIs(t, svc.UpdateConfig(ctx, domain.SettingGalleryPageSize, "500"), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateConfig(ctx, domain.SettingPredefinedTags, `"Logos"`), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateConfig(ctx, "theme", `"dark"`), domain.ErrInvalidInput)

	require.NoError(t, svc.UpdateConfig(ctx, domain.SettingGalleryPageSize, "12"))
	require.NoError(t, svc.UpdateConfig(ctx, domain.SettingPredefinedTags, `["Logos","Print"]`))
	size, err = svc.GalleryPageSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, size)
	tags, err = svc.PredefinedTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logos", "Print"}, tags)

	all, err := svc.GetAllConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
