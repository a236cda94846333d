package application

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/zap"
)

// ObjectStore is where uploaded media ends up. Put returns the public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

var (
	unsafeKeyChars  = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)
	videoExtensions = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".avi": true, ".mkv": true}
)

// AssetTypeFromURL guesses the media kind from the file extension.
func AssetTypeFromURL(raw string) domain.MediaType {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	if videoExtensions[strings.ToLower(path.Ext(p))] {
		return domain.MediaVideo
	}
	return domain.MediaImage
}

// FilenameFromURL returns the last path segment of raw.
func FilenameFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// UploadResult is what the admin UI needs after an upload.
type UploadResult struct {
	URL   string        `json:"url"`
	Key   string        `json:"key"`
	Asset *domain.Asset `json:"asset,omitempty"`
}

type UploadService struct {
	store  ObjectStore
	assets *AssetService
	logger *zap.Logger
	now    func() time.Time
}

func NewUploadService(store ObjectStore, assets *AssetService, logger *zap.Logger) *UploadService {
	return &UploadService{store: store, assets: assets, logger: logger, now: time.Now}
}

// ObjectKey builds the storage key for an uploaded file.
func (s *UploadService) ObjectKey(filename string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(filename), "_")
	return fmt.Sprintf("projects/%d-%s", s.now().UnixMilli(), name)
}

// Upload stores the file and, when register is set, records it as an asset so
// it shows up in the gallery.
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, body io.Reader, register bool) (*UploadResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("upload storage is not configured")
	}
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	key := s.ObjectKey(filename)
	publicURL, err := s.store.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", key, err)
	}
	s.logger.Info("file uploaded", zap.String("key", key), zap.String("content_type", contentType))

	res := &UploadResult{URL: publicURL, Key: key}
	if !register {
		return res, nil
	}
	typ := domain.MediaImage
	if strings.HasPrefix(contentType, "video/") {
		typ = domain.MediaVideo
	} else if !strings.HasPrefix(contentType, "image/") {
		typ = AssetTypeFromURL(filename)
	}
	asset, err := s.assets.Create(ctx, AssetInput{URL: publicURL, Type: typ, Filename: filename})
	if err != nil {
		return nil, err
	}
	res.Asset = asset
	return res, nil
}
