package gallery

import (
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
)

type MediaFilter string

const (
	MediaAll   MediaFilter = "all"
	MediaImage MediaFilter = "image"
	MediaVideo MediaFilter = "video"
)

// ParseMediaFilter maps a query value to a filter; anything unknown means all.
func ParseMediaFilter(s string) MediaFilter {
	switch MediaFilter(strings.ToLower(strings.TrimSpace(s))) {
	case MediaImage:
		return MediaImage
	case MediaVideo:
		return MediaVideo
	}
	return MediaAll
}

type FilterState struct {
	Search    string      `json:"search"`
	Tags      []string    `json:"tags"`
	MediaType MediaFilter `json:"type"`
}

// HasActiveFilters reports whether any filter narrows the collection.
func (f FilterState) HasActiveFilters() bool {
	return f.Search != "" || len(f.Tags) > 0 || (f.MediaType != "" && f.MediaType != MediaAll)
}

// ToggleTag adds tag, or removes it when an equivalent tag is already selected.
func (f FilterState) ToggleTag(tag string) FilterState {
	norm := NormalizeTag(tag)
	out := make([]string, 0, len(f.Tags)+1)
	found := false
	for _, t := range f.Tags {
		if NormalizeTag(t) == norm {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	f.Tags = out
	return f
}

// IsTagSelected reports whether an equivalent tag is selected.
func (f FilterState) IsTagSelected(tag string) bool {
	norm := NormalizeTag(tag)
	for _, t := range f.Tags {
		if NormalizeTag(t) == norm {
			return true
		}
	}
	return false
}

func (f FilterState) Clear() FilterState {
	return FilterState{MediaType: MediaAll}
}

func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// FormatTagForDisplay capitalises the first letter of each word.
func FormatTagForDisplay(tag string) string {
	words := strings.Split(tag, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// Apply filters assets by type, tags and search. The three filters compose with
// AND; selected tags match with OR; search matches any text field. Order is kept
// and the result is always a new slice.
func Apply(assets []Asset, f FilterState) []Asset {
	wanted := make(map[string]struct{}, len(f.Tags))
	for _, t := range f.Tags {
		wanted[NormalizeTag(t)] = struct{}{}
	}
	search := strings.ToLower(f.Search)

	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if !matchesType(a, f.MediaType) {
			continue
		}
		if len(wanted) > 0 && !matchesTags(a, wanted) {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesType(a Asset, mt MediaFilter) bool {
	switch mt {
	case MediaImage:
		return a.Type == domain.MediaImage
	case MediaVideo:
		return a.Type == domain.MediaVideo
	}
	return true
}

func matchesTags(a Asset, wanted map[string]struct{}) bool {
	for _, t := range a.Tags {
		if _, ok := wanted[NormalizeTag(t)]; ok {
			return true
		}
	}
	return false
}

func matchesSearch(a Asset, needle string) bool {
	for _, field := range []*string{a.Title, a.Description, a.AltText, a.ProjectTitle} {
		if field != nil && strings.Contains(strings.ToLower(*field), needle) {
			return true
		}
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// AvailableTags orders the tag bar: predefined tags that occur in available, in
// predefined order, followed by the remaining available tags.
func AvailableTags(available, predefined []string) []string {
	present := make(map[string]struct{}, len(available))
	for _, t := range available {
		present[NormalizeTag(t)] = struct{}{}
	}
	known := make(map[string]struct{}, len(predefined))
	out := make([]string, 0, len(available))
	for _, t := range predefined {
		n := NormalizeTag(t)
		known[n] = struct{}{}
		if _, ok := present[n]; ok {
			out = append(out, t)
		}
	}
	for _, t := range available {
		if _, ok := known[NormalizeTag(t)]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// PredefinedTags is the studio's fixed category list.
var PredefinedTags = []string{
	"Branding",
	"Logos",
	"Animation",
	"Merchandise",
	"AI",
	"Social Media",
	"Character Design",
	"Web Design",
	"Print",
	"Photography",
	"Illustration",
	"Motion Graphics",
	"Packaging",
	"Typography",
}
