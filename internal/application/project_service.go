package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
)

type ProjectService struct {
	repo      domain.ProjectRepository
	validator Validator
	onChange  func()
}

func NewProjectService(repo domain.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// OnChange registers a hook run after every successful write. Project titles
// and slugs appear in the gallery, so the listing cache hangs off this.
func (s *ProjectService) OnChange(fn func()) {
	s.onChange = fn
}

func (s *ProjectService) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ProjectInput is the writable part of a project.
type ProjectInput struct {
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	Thumbnail    string         `json:"thumbnail"`
	HeightRatio  *float64       `json:"heightRatio"`
	TextContrast string         `json:"textContrast"`
	Blocks       []domain.Block `json:"blocks"`
}

func (s *ProjectService) GetAll(ctx context.Context) ([]domain.Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *ProjectService) GetByID(ctx context.Context, id int) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	p := &domain.Project{}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.changed()
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id int, in ProjectInput) (*domain.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.changed()
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Reorder sets positions from a complete list of ids.
func (s *ProjectService) Reorder(ctx context.Context, orderedIDs []int) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: orderedIds must not be empty", domain.ErrInvalidInput)
	}
	seen := make(map[int]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return fmt.Errorf("%w: project %d listed twice", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return s.repo.Reorder(ctx, orderedIDs)
}

func (s *ProjectService) apply(p *domain.Project, in ProjectInput) error {
	var errs []error
	in.Slug = strings.TrimSpace(in.Slug)
	if err := s.validator.ValidateSlug(in.Slug); err != nil {
		errs = append(errs, err)
	}
	if err := s.validator.ValidateName(in.Title, "title", 1, 200); err != nil {
		errs = append(errs, err)
	}

	ratio := domain.DefaultHeightRatio
	if in.HeightRatio != nil {
		ratio = *in.HeightRatio
	}
	if ratio < 0.1 || ratio > 3 {
		errs = append(errs, fmt.Errorf("heightRatio must be between 0.1 and 3"))
	}

	contrast := in.TextContrast
	if contrast == "" {
		contrast = domain.DefaultTextContrast
	}
	if contrast != "light" && contrast != "dark" {
		errs = append(errs, fmt.Errorf("textContrast must be light or dark"))
	}

	for i, b := range in.Blocks {
		if err := b.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("block %d: %v", i, err))
		}
	}
	if err := s.validator.FormatValidationErrors(errs); err != nil {
		return err
	}

	p.Slug = in.Slug
	p.Title = strings.TrimSpace(in.Title)
	p.Thumbnail = in.Thumbnail
	p.HeightRatio = ratio
	p.TextContrast = contrast
	p.Blocks = in.Blocks
	if p.Blocks == nil {
		p.Blocks = []domain.Block{}
	}
	return nil
}
