package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/zap"
)

// LegacyProject is the shape of the old static projects.json.
type LegacyProject struct {
	ID           int      `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Thumbnail    string   `json:"thumbnail"`
	HeightRatio  float64  `json:"heightRatio"`
	Images       []string `json:"images"`
	TextContrast string   `json:"textContrast"`
	Content      struct {
		Description string `json:"description"`
		Text        string `json:"text"`
	} `json:"content"`
}

type ImportReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
}

type BackfillReport struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}

// ImportService moves content from the legacy static site into the database.
type ImportService struct {
	projects domain.ProjectRepository
	assets   *AssetService
	baseURL  string
	logger   *zap.Logger
}

// NewImportService builds the importer. baseURL prefixes legacy paths that
// start with a slash.
func NewImportService(projects domain.ProjectRepository, assets *AssetService, baseURL string, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{projects: projects, assets: assets, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

func (s *ImportService) resolve(p string) string {
	if strings.HasPrefix(p, "/") {
		return s.baseURL + p
	}
	return p
}

// ConvertLegacy turns a legacy project into content blocks: the description,
// one full-image block per image, then the body text.
func (s *ImportService) ConvertLegacy(lp LegacyProject) []domain.Block {
	blocks := make([]domain.Block, 0, len(lp.Images)+2)
	if lp.Content.Description != "" {
		blocks = append(blocks, domain.Block{Type: domain.BlockText, Content: lp.Content.Description})
	}
	for _, img := range lp.Images {
		blocks = append(blocks, domain.Block{
			Type: domain.BlockFullImage,
			URL:  s.resolve(img),
			Alt:  lp.Title + " image",
		})
	}
	if lp.Content.Text != "" {
		blocks = append(blocks, domain.Block{Type: domain.BlockText, Content: lp.Content.Text})
	}
	return blocks
}

// ImportProjects reads a legacy projects.json array and inserts each project
// in file order. Slugs seen earlier in the file or already stored are skipped;
// a failing project is reported and the rest still go in.
func (s *ImportService) ImportProjects(ctx context.Context, r io.Reader) (*ImportReport, error) {
	var legacy []LegacyProject
	if err := json.NewDecoder(r).Decode(&legacy); err != nil {
		return nil, fmt.Errorf("%w: decoding projects file: %v", domain.ErrInvalidInput, err)
	}

	report := &ImportReport{Imported: []string{}, Skipped: []string{}, Failed: []string{}}
	seen := make(map[string]bool, len(legacy))
	for _, lp := range legacy {
		if seen[lp.Slug] {
			s.logger.Info("skipping duplicate slug", zap.String("slug", lp.Slug))
			report.Skipped = append(report.Skipped, lp.Slug)
			continue
		}
		seen[lp.Slug] = true

		contrast := lp.TextContrast
		if contrast == "" {
			contrast = domain.DefaultTextContrast
		}
		ratio := lp.HeightRatio
		if ratio == 0 {
			ratio = domain.DefaultHeightRatio
		}
		p := &domain.Project{
			Slug:         lp.Slug,
			Title:        lp.Title,
			Thumbnail:    s.resolve(lp.Thumbnail),
			HeightRatio:  ratio,
			TextContrast: contrast,
			Blocks:       s.ConvertLegacy(lp),
		}
		err := s.projects.Create(ctx, p)
		switch {
		case errors.Is(err, domain.ErrConflict):
			s.logger.Info("project already stored", zap.String("slug", lp.Slug))
			report.Skipped = append(report.Skipped, lp.Slug)
		case err != nil:
			s.logger.Error("project import failed", zap.String("slug", lp.Slug), zap.Error(err))
			report.Failed = append(report.Failed, lp.Slug)
		default:
			report.Imported = append(report.Imported, lp.Slug)
		}
	}
	return report, nil
}

type blockMedia struct {
	url string
	typ domain.MediaType
}

func mediaFromBlocks(blocks []domain.Block) []blockMedia {
	var out []blockMedia
	for _, b := range blocks {
		switch b.Type {
		case domain.BlockFullImage:
			out = append(out, blockMedia{b.URL, domain.MediaImage})
		case domain.BlockTwoColumn:
			out = append(out, blockMedia{b.Left, domain.MediaImage}, blockMedia{b.Right, domain.MediaImage})
		case domain.BlockImageText:
			out = append(out, blockMedia{b.Image, domain.MediaImage})
		case domain.BlockVideo:
			out = append(out, blockMedia{b.URL, domain.MediaVideo})
		}
	}
	return out
}

// BackfillAssets registers every media URL referenced by project blocks as an
// asset of that project. URLs that already have an asset are left alone, so
// running it again is harmless.
func (s *ImportService) BackfillAssets(ctx context.Context) (*BackfillReport, error) {
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	report := &BackfillReport{}
	for _, p := range projects {
		projectID := p.ID
		for _, m := range mediaFromBlocks(p.Blocks) {
			if m.url == "" {
				continue
			}
			existing, err := s.assets.List(ctx, domain.AssetQuery{URL: m.url})
			if err != nil {
				return report, err
			}
			if len(existing) > 0 {
				report.Existing++
				continue
			}
			_, err = s.assets.Create(ctx, AssetInput{URL: m.url, Type: m.typ, ProjectID: &projectID})
			if errors.Is(err, domain.ErrConflict) {
				report.Existing++
				continue
			}
			if err != nil {
				return report, fmt.Errorf("backfilling %s: %w", m.url, err)
			}
			report.Created++
		}
	}
	s.logger.Info("asset backfill done", zap.Int("created", report.Created), zap.Int("existing", report.Existing))
	return report, nil
}
