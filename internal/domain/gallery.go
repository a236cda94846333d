package domain

import (
	"context"
	"time"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Valid reports whether t is one of the stored media kinds.
func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

// Asset is an uploaded image or video as stored by the CMS.
type Asset struct {
	ID            int       `json:"id"`
	URL           string    `json:"url"`
	Type          MediaType `json:"type"`
	Filename      string    `json:"filename,omitempty"`
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	AltText       *string   `json:"altText"`
	Tags          []string  `json:"tags"`
	Keywords      *string   `json:"keywords,omitempty"`
	ProjectID     *int      `json:"projectId"`
	ShowInGallery bool      `json:"showInGallery"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GalleryAsset is an asset joined with the project it belongs to, if any.
// This is the record the public gallery and the lightbox walk over.
type GalleryAsset struct {
	ID           int       `json:"id"`
	URL          string    `json:"url"`
	Type         MediaType `json:"type"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	AltText      *string   `json:"altText"`
	Tags         []string  `json:"tags"`
	ProjectID    *int      `json:"projectId"`
	ProjectTitle *string   `json:"projectTitle"`
	ProjectSlug  *string   `json:"projectSlug"`
}

// AssetQuery narrows AssetRepository.List. Zero values mean "no condition".
type AssetQuery struct {
	URL       string
	Type      MediaType
	ProjectID *int
	Search    string
	Tags      []string
}

// AssetPatch carries the editable metadata fields of an asset. Nil fields are
// left untouched; a ProjectID of 0 detaches the asset from its project.
type AssetPatch struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	AltText       *string  `json:"altText"`
	Tags          []string `json:"tags"`
	Keywords      *string  `json:"keywords"`
	ProjectID     *int     `json:"projectId"`
	ShowInGallery *bool    `json:"showInGallery"`
}

type AssetRepository interface {
	List(ctx context.Context, q AssetQuery) ([]Asset, error)
	GetByID(ctx context.Context, id int) (*Asset, error)
	Create(ctx context.Context, asset *Asset) error
	Update(ctx context.Context, id int, patch AssetPatch) (*Asset, error)
	Delete(ctx context.Context, id int) error
	// ListGallery returns assets joined with their project, newest first.
	ListGallery(ctx context.Context, onlyVisible bool) ([]GalleryAsset, error)
	GetGalleryAsset(ctx context.Context, id int) (*GalleryAsset, error)
	DistinctTags(ctx context.Context, onlyVisible bool) ([]string, error)
}
