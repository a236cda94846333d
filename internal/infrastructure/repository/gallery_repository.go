package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
)

// GalleryRepository stores uploaded assets and serves the joined gallery view.
type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

var _ domain.AssetRepository = (*GalleryRepository)(nil)

const assetColumns = `id, url, type, filename, title, description, alt_text, tags, keywords, project_id, show_in_gallery, created_at, updated_at`

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		a                          domain.Asset
		title, desc, alt, keywords sql.NullString
		projectID                  sql.NullInt64
		tags                       string
	)
	if err := row.Scan(&a.ID, &a.URL, &a.Type, &a.Filename, &title, &desc, &alt, &tags, &keywords,
		&projectID, &a.ShowInGallery, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if a.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	a.Title, a.Description, a.AltText, a.Keywords = stringPtr(title), stringPtr(desc), stringPtr(alt), stringPtr(keywords)
	a.ProjectID = intPtr(projectID)
	return &a, nil
}

// List returns assets newest first. URL, type and project narrow the query in
// SQL; search and tags are matched here since tags are stored as JSON text.
func (r *GalleryRepository) List(ctx context.Context, q domain.AssetQuery) ([]domain.Asset, error) {
	var (
		conds []string
		args  []any
	)
	if q.URL != "" {
		args = append(args, q.URL)
		conds = append(conds, fmt.Sprintf("url = $%d", len(args)))
	}
	if q.Type != "" {
		args = append(args, string(q.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if q.ProjectID != nil {
		args = append(args, *q.ProjectID)
		conds = append(conds, fmt.Sprintf("project_id = $%d", len(args)))
	}
	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		if matchesAssetQuery(a, q) {
			assets = append(assets, *a)
		}
	}
	return assets, rows.Err()
}

func matchesAssetQuery(a *domain.Asset, q domain.AssetQuery) bool {
	if len(q.Tags) > 0 {
		want := make(map[string]bool, len(q.Tags))
		for _, t := range q.Tags {
			want[normalizeTag(t)] = true
		}
		hit := false
		for _, t := range a.Tags {
			if want[normalizeTag(t)] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	for _, s := range []*string{a.Title, a.Description, a.Keywords, a.AltText} {
		if s != nil && strings.Contains(strings.ToLower(*s), needle) {
			return true
		}
	}
	return false
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func (r *GalleryRepository) GetByID(ctx context.Context, id int) (*domain.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying asset: %w", err)
	}
	return a, nil
}

func (r *GalleryRepository) Create(ctx context.Context, a *domain.Asset) error {
	if a.Tags == nil {
		a.Tags = []string{}
	}
	tags, err := encodeJSON(a.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	ts := now()
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO assets (url, type, filename, title, description, alt_text, tags, keywords, project_id, show_in_gallery, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, a.URL, string(a.Type), a.Filename, nullString(a.Title), nullString(a.Description), nullString(a.AltText),
		tags, nullString(a.Keywords), nullInt(a.ProjectID), a.ShowInGallery, ts, ts).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("asset url %q: %w", a.URL, domain.ErrConflict)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	a.CreatedAt = ts
	a.UpdatedAt = ts
	return nil
}

func (r *GalleryRepository) Update(ctx context.Context, id int, patch domain.AssetPatch) (*domain.Asset, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		a.Title = patch.Title
	}
	if patch.Description != nil {
		a.Description = patch.Description
	}
	if patch.AltText != nil {
		a.AltText = patch.AltText
	}
	if patch.Tags != nil {
		a.Tags = patch.Tags
	}
	if patch.Keywords != nil {
		a.Keywords = patch.Keywords
	}
	if patch.ProjectID != nil {
		if *patch.ProjectID == 0 {
			a.ProjectID = nil
		} else {
			a.ProjectID = patch.ProjectID
		}
	}
	if patch.ShowInGallery != nil {
		a.ShowInGallery = *patch.ShowInGallery
	}

	tags, err := encodeJSON(a.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	a.UpdatedAt = now()
	_, err = r.db.ExecContext(ctx, `
		UPDATE assets
		SET title = $1, description = $2, alt_text = $3, tags = $4, keywords = $5, project_id = $6, show_in_gallery = $7, updated_at = $8
		WHERE id = $9
	`, nullString(a.Title), nullString(a.Description), nullString(a.AltText), tags, nullString(a.Keywords),
		nullInt(a.ProjectID), a.ShowInGallery, a.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return a, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

const galleryQuery = `
	SELECT a.id, a.url, a.type, a.title, a.description, a.alt_text, a.tags, a.project_id, p.title, p.slug
	FROM assets a
	LEFT JOIN projects p ON p.id = a.project_id`

func scanGalleryAsset(row rowScanner) (*domain.GalleryAsset, error) {
	var (
		g                               domain.GalleryAsset
		title, desc, alt, pTitle, pSlug sql.NullString
		projectID                       sql.NullInt64
		tags                            string
	)
	if err := row.Scan(&g.ID, &g.URL, &g.Type, &title, &desc, &alt, &tags, &projectID, &pTitle, &pSlug); err != nil {
		return nil, err
	}
	var err error
	if g.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	g.Title, g.Description, g.AltText = stringPtr(title), stringPtr(desc), stringPtr(alt)
	g.ProjectID = intPtr(projectID)
	g.ProjectTitle, g.ProjectSlug = stringPtr(pTitle), stringPtr(pSlug)
	return &g, nil
}

func (r *GalleryRepository) ListGallery(ctx context.Context, onlyVisible bool) ([]domain.GalleryAsset, error) {
	query := galleryQuery
	var args []any
	if onlyVisible {
		query += ` WHERE a.show_in_gallery = $1`
		args = append(args, true)
	}
	query += ` ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying gallery: %w", err)
	}
	defer rows.Close()

	assets := []domain.GalleryAsset{}
	for rows.Next() {
		g, err := scanGalleryAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *g)
	}
	return assets, rows.Err()
}

func (r *GalleryRepository) GetGalleryAsset(ctx context.Context, id int) (*domain.GalleryAsset, error) {
	g, err := scanGalleryAsset(r.db.QueryRowContext(ctx, galleryQuery+` WHERE a.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying asset: %w", err)
	}
	return g, nil
}

// DistinctTags returns every tag once, compared case-insensitively, sorted.
// The first spelling seen wins.
func (r *GalleryRepository) DistinctTags(ctx context.Context, onlyVisible bool) ([]string, error) {
	query := `SELECT tags FROM assets`
	var args []any
	if onlyVisible {
		query += ` WHERE show_in_gallery = $1`
		args = append(args, true)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	out := []string{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		tags, err := decodeTags(raw)
		if err != nil {
			return nil, err
		}
		for _, t := range tags {
			n := normalizeTag(t)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, strings.TrimSpace(t))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out, nil
}
