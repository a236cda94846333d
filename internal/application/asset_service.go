package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
)

type AssetService struct {
	repo      domain.AssetRepository
	cache     *ListingCache
	validator Validator
}

func NewAssetService(repo domain.AssetRepository, cache *ListingCache) *AssetService {
	return &AssetService{repo: repo, cache: cache}
}

// AssetInput is the payload for registering an uploaded file.
type AssetInput struct {
	URL           string           `json:"url"`
	Type          domain.MediaType `json:"type"`
	Filename      string           `json:"filename"`
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	AltText       *string          `json:"altText"`
	Tags          []string         `json:"tags"`
	Keywords      *string          `json:"keywords"`
	ProjectID     *int             `json:"projectId"`
	ShowInGallery *bool            `json:"showInGallery"`
}

func (s *AssetService) List(ctx context.Context, q domain.AssetQuery) ([]domain.Asset, error) {
	return s.repo.List(ctx, q)
}

func (s *AssetService) Get(ctx context.Context, id int) (*domain.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AssetService) Create(ctx context.Context, in AssetInput) (*domain.Asset, error) {
	var errs []error
	in.URL = strings.TrimSpace(in.URL)
	if in.URL == "" {
		errs = append(errs, fmt.Errorf("url is required"))
	}
	if in.Type == "" {
		in.Type = AssetTypeFromURL(in.URL)
	}
	if !in.Type.Valid() {
		errs = append(errs, fmt.Errorf("type must be image or video"))
	}
	if err := s.validator.FormatValidationErrors(errs); err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		URL:           in.URL,
		Type:          in.Type,
		Filename:      in.Filename,
		Title:         in.Title,
		Description:   in.Description,
		AltText:       in.AltText,
		Tags:          cleanTags(in.Tags),
		Keywords:      in.Keywords,
		ProjectID:     in.ProjectID,
		ShowInGallery: true,
	}
	if asset.Filename == "" {
		asset.Filename = FilenameFromURL(in.URL)
	}
	if in.ShowInGallery != nil {
		asset.ShowInGallery = *in.ShowInGallery
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, err
	}
	s.cache.Clear()
	return asset, nil
}

func (s *AssetService) Update(ctx context.Context, id int, patch domain.AssetPatch) (*domain.Asset, error) {
	if patch.Tags != nil {
		patch.Tags = cleanTags(patch.Tags)
	}
	asset, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Clear()
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Clear()
	return nil
}

// cleanTags trims tags and drops blanks and case-insensitive duplicates,
// keeping the first spelling.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
