package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectNavigationType(t *testing.T) {
	two, one, seven := 2, 1, 7
	tests := []struct {
		name   string
		timing NavigationTiming
		want   NavigationType
	}{
		{"entry back_forward", NavigationTiming{EntryType: "back_forward"}, NavBackForward},
		{"entry reload", NavigationTiming{EntryType: "reload"}, NavReload},
		{"entry prerender", NavigationTiming{EntryType: "prerender"}, NavPrerender},
		{"entry wins over legacy", NavigationTiming{EntryType: "navigate", LegacyCode: &two}, NavNavigate},
		{"legacy back", NavigationTiming{LegacyCode: &two}, NavBackForward},
		{"legacy reload", NavigationTiming{LegacyCode: &one}, NavReload},
		{"legacy unknown", NavigationTiming{LegacyCode: &seven}, NavNavigate},
		{"nothing", NavigationTiming{}, NavNavigate},
		{"garbage", NavigationTiming{EntryType: "teleport"}, NavNavigate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectNavigationType(tt.timing))
		})
	}
}

func TestTimingFromStrings(t *testing.T) {
	assert.True(t, IsBackNavigation(TimingFromStrings("", "2")))
	assert.True(t, IsBackNavigation(TimingFromStrings("BACK_FORWARD", "")))
	assert.False(t, IsBackNavigation(TimingFromStrings("", "x")))
	assert.Nil(t, TimingFromStrings("navigate", "abc").LegacyCode)
}
