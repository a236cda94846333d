package gallery

import (
	"strconv"
	"strings"
)

type NavigationType string

const (
	NavNavigate    NavigationType = "navigate"
	NavReload      NavigationType = "reload"
	NavBackForward NavigationType = "back_forward"
	NavPrerender   NavigationType = "prerender"
)

// Legacy navigation codes.
const (
	legacyNavigate    = 0
	legacyReload      = 1
	legacyBackForward = 2
)

// NavigationTiming is what the client reports about how the page was reached.
// EntryType comes from the navigation timing entry; LegacyCode is the older
// numeric type and is only consulted when EntryType is missing.
type NavigationTiming struct {
	EntryType  string
	LegacyCode *int
}

func parseNavigationType(s string) (NavigationType, bool) {
	switch t := NavigationType(strings.TrimSpace(strings.ToLower(s))); t {
	case NavNavigate, NavReload, NavBackForward, NavPrerender:
		return t, true
	}
	return "", false
}

// DetectNavigationType classifies the navigation. Unknown input means navigate.
func DetectNavigationType(t NavigationTiming) NavigationType {
	if nt, ok := parseNavigationType(t.EntryType); ok {
		return nt
	}
	if t.LegacyCode != nil {
		switch *t.LegacyCode {
		case legacyBackForward:
			return NavBackForward
		case legacyReload:
			return NavReload
		}
	}
	return NavNavigate
}

// IsBackNavigation is true for browser back/forward, where entrance animations are skipped.
func IsBackNavigation(t NavigationTiming) bool {
	return DetectNavigationType(t) == NavBackForward
}

// TimingFromStrings builds a NavigationTiming from raw request values. A legacy
// value that is not an integer is ignored.
func TimingFromStrings(entryType, legacy string) NavigationTiming {
	t := NavigationTiming{EntryType: entryType}
	if legacy != "" {
		if code, err := strconv.Atoi(legacy); err == nil {
			t.LegacyCode = &code
		}
	}
	return t
}
