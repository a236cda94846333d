package domain

import (
	"context"
	"time"
)

// Site setting keys.
const (
	SettingPredefinedTags  = "predefined_tags"
	SettingGalleryPageSize = "gallery_page_size"
)

// SiteSetting is an admin-editable key/value pair. Values are JSON encoded.
type SiteSetting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SettingsRepository interface {
	GetByKey(ctx context.Context, key string) (*SiteSetting, error)
	// Upsert creates the key or overwrites its value.
	Upsert(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) ([]SiteSetting, error)
}
