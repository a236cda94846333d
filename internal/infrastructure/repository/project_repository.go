package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moraleja/portfolio/internal/domain"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, slug, title, thumbnail, height_ratio, text_contrast, blocks, position, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p      domain.Project
		blocks string
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Thumbnail, &p.HeightRatio, &p.TextContrast,
		&blocks, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Blocks = []domain.Block{}
	if blocks != "" {
		if err := json.Unmarshal([]byte(blocks), &p.Blocks); err != nil {
			return nil, fmt.Errorf("decode blocks of project %d: %w", p.ID, err)
		}
	}
	return &p, nil
}

func (r *projectRepository) GetAll(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) GetByID(ctx context.Context, id int) (*domain.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
}

func (r *projectRepository) getOne(ctx context.Context, query string, arg any) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %v: %w", arg, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	blocks, err := encodeJSON(nonNilBlocks(p.Blocks))
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var position int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM projects`).Scan(&position); err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	ts := now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO projects (slug, title, thumbnail, height_ratio, text_contrast, blocks, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.Slug, p.Title, p.Thumbnail, p.HeightRatio, p.TextContrast, blocks, position, ts, ts).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q: %w", p.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("insert project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	p.Position = position
	p.CreatedAt = ts
	p.UpdatedAt = ts
	return nil
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	blocks, err := encodeJSON(nonNilBlocks(p.Blocks))
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	ts := now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET slug = $1, title = $2, thumbnail = $3, height_ratio = $4, text_contrast = $5, blocks = $6, updated_at = $7
		WHERE id = $8
	`, p.Slug, p.Title, p.Thumbnail, p.HeightRatio, p.TextContrast, blocks, ts, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q: %w", p.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("update project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("project %d: %w", p.ID, domain.ErrNotFound)
	}
	p.UpdatedAt = ts
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *projectRepository) Reorder(ctx context.Context, orderedIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	for position, id := range orderedIDs {
		result, err := tx.ExecContext(ctx, `UPDATE projects SET position = $1, updated_at = $2 WHERE id = $3`, position, ts, id)
		if err != nil {
			return fmt.Errorf("reorder project %d: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
	}
	return tx.Commit()
}

func nonNilBlocks(b []domain.Block) []domain.Block {
	if b == nil {
		return []domain.Block{}
	}
	return b
}
