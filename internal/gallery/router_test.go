package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterHistoryContract(t *testing.T) {
	h := &recordingHistory{}
	r, err := NewRouter("/gallery?type=image", h)
	require.NoError(t, err)

	_, ok := r.ViewingID()
	assert.False(t, ok)

	r.Open(4)
	r.Navigate(5)
	r.Navigate(6)
	r.Close()

	assert.Equal(t, []string{
		"push /gallery?photo=4&type=image",
		"replace /gallery?photo=5&type=image",
		"replace /gallery?photo=6&type=image",
		"push /gallery?type=image",
	}, h.Ops())
	assert.Equal(t, "/gallery?type=image", r.URL())
}

func TestRouterDeepLinkAndSync(t *testing.T) {
	r, err := NewRouter("/gallery?photo=12", &recordingHistory{})
	require.NoError(t, err)

	id, ok := r.ViewingID()
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	id, ok = r.Sync("/gallery?photo=3")
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	_, ok = r.Sync("/gallery?photo=abc")
	assert.False(t, ok)
	_, ok = r.Sync("/gallery")
	assert.False(t, ok)
}

func TestNewRouterDefaultsPath(t *testing.T) {
	r, err := NewRouter("?photo=1", &recordingHistory{})
	require.NoError(t, err)
	assert.Equal(t, "/gallery?photo=1", r.URL())
}
