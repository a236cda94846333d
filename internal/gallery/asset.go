package gallery

import (
	"fmt"

	"github.com/moraleja/portfolio/internal/domain"
)

// Asset is the record the grid and the viewer walk over.
type Asset = domain.GalleryAsset

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AltText picks the accessible label for an asset: alt text, then title, then a fallback.
func AltText(a Asset) string {
	if v := deref(a.AltText); v != "" {
		return v
	}
	if v := deref(a.Title); v != "" {
		return v
	}
	return "Gallery image"
}

// ProjectLink returns /project/{slug} when the asset is attached to a titled project.
func ProjectLink(a Asset) (string, bool) {
	if deref(a.ProjectTitle) == "" || deref(a.ProjectSlug) == "" {
		return "", false
	}
	return fmt.Sprintf("/project/%s", *a.ProjectSlug), true
}

// Position locates an asset inside an ordered collection.
type Position struct {
	Index int
	Total int
	Prev  *Asset
	Next  *Asset
}

func (p Position) Found() bool   { return p.Index >= 0 }
func (p Position) HasPrev() bool { return p.Prev != nil }
func (p Position) HasNext() bool { return p.Next != nil }

// Counter renders the "n / total" indicator.
func (p Position) Counter() string {
	return fmt.Sprintf("%d / %d", p.Index+1, p.Total)
}

// Locate finds id in assets. Navigation never wraps: the first item has no
// previous and the last has no next. An id that is not in the collection gets
// neither.
func Locate(assets []Asset, id int) Position {
	pos := Position{Index: -1, Total: len(assets)}
	for i := range assets {
		if assets[i].ID == id {
			pos.Index = i
			break
		}
	}
	if pos.Index < 0 {
		return pos
	}
	if pos.Index > 0 {
		pos.Prev = &assets[pos.Index-1]
	}
	if pos.Index < len(assets)-1 {
		pos.Next = &assets[pos.Index+1]
	}
	return pos
}

// Find returns the asset with id, if present.
func Find(assets []Asset, id int) (Asset, bool) {
	for _, a := range assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}
