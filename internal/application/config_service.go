package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/moraleja/portfolio/internal/gallery"
)

// SiteDefaults are used when a setting has not been stored yet.
type SiteDefaults struct {
	PredefinedTags  []string
	GalleryPageSize int
}

type ConfigService struct {
	repo     domain.SettingsRepository
	defaults SiteDefaults
}

func NewConfigService(repo domain.SettingsRepository, defaults SiteDefaults) *ConfigService {
	if len(defaults.PredefinedTags) == 0 {
		defaults.PredefinedTags = gallery.PredefinedTags
	}
	if defaults.GalleryPageSize == 0 {
		defaults.GalleryPageSize = gallery.DefaultGalleryPageSize
	}
	return &ConfigService{repo: repo, defaults: defaults}
}

func (s *ConfigService) GetConfig(ctx context.Context, key string) (*domain.SiteSetting, error) {
	return s.repo.GetByKey(ctx, key)
}

func (s *ConfigService) GetAllConfigs(ctx context.Context) ([]domain.SiteSetting, error) {
	return s.repo.GetAll(ctx)
}

// UpdateConfig stores a known setting after checking its JSON value.
func (s *ConfigService) UpdateConfig(ctx context.Context, key, value string) error {
	switch key {
	case domain.SettingPredefinedTags:
		var tags []string
		if err := json.Unmarshal([]byte(value), &tags); err != nil {
			return fmt.Errorf("%w: %s must be a JSON array of strings", domain.ErrInvalidInput, key)
		}
	case domain.SettingGalleryPageSize:
		var n int
		if err := json.Unmarshal([]byte(value), &n); err != nil || n < 0 || n > 100 {
			return fmt.Errorf("%w: %s must be an integer between 0 and 100", domain.ErrInvalidInput, key)
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.repo.Upsert(ctx, key, value)
}

// PredefinedTags returns the stored category list or the configured default.
func (s *ConfigService) PredefinedTags(ctx context.Context) ([]string, error) {
	var tags []string
	ok, err := s.lookup(ctx, domain.SettingPredefinedTags, &tags)
	if err != nil || !ok {
		return s.defaults.PredefinedTags, err
	}
	return tags, nil
}

// GalleryPageSize returns the page size for the public gallery; 0 disables paging.
func (s *ConfigService) GalleryPageSize(ctx context.Context) (int, error) {
	var n int
	ok, err := s.lookup(ctx, domain.SettingGalleryPageSize, &n)
	if err != nil || !ok {
		return s.defaults.GalleryPageSize, err
	}
	return n, nil
}

func (s *ConfigService) lookup(ctx context.Context, key string, dst any) (bool, error) {
	setting, err := s.repo.GetByKey(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(setting.Value), dst); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}
