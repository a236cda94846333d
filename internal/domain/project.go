package domain

import (
	"context"
	"fmt"
	"time"
)

type BlockType string

const (
	BlockFullImage BlockType = "full-image"
	BlockTwoColumn BlockType = "two-column"
	BlockImageText BlockType = "image-text"
	BlockVideo     BlockType = "video"
	BlockText      BlockType = "text"
	BlockHeading   BlockType = "heading"
	BlockQuote     BlockType = "quote"
)

// Block is one entry of a project's content. Which fields are used depends on Type.
type Block struct {
	Type          BlockType `json:"type"`
	URL           string    `json:"url,omitempty"`
	Alt           string    `json:"alt,omitempty"`
	Left          string    `json:"left,omitempty"`
	Right         string    `json:"right,omitempty"`
	Image         string    `json:"image,omitempty"`
	Text          string    `json:"text,omitempty"`
	ImagePosition string    `json:"imagePosition,omitempty"` // left | right
	Ratio         string    `json:"ratio,omitempty"`         // 50-50, 60-40, 40-60, 70-30, 30-70
	Autoplay      bool      `json:"autoplay,omitempty"`
	Content       string    `json:"content,omitempty"`
	Level         int       `json:"level,omitempty"`
	Author        string    `json:"author,omitempty"`
}

var blockRatios = map[string]bool{"50-50": true, "60-40": true, "40-60": true, "70-30": true, "30-70": true}

func (b Block) Validate() error {
	switch b.Type {
	case BlockFullImage, BlockVideo:
		if b.URL == "" {
			return fmt.Errorf("%w: %s block requires url", ErrInvalidInput, b.Type)
		}
	case BlockTwoColumn:
		if b.Left == "" || b.Right == "" {
			return fmt.Errorf("%w: two-column block requires left and right", ErrInvalidInput)
		}
	case BlockImageText:
		if b.Image == "" {
			return fmt.Errorf("%w: image-text block requires image", ErrInvalidInput)
		}
		if b.ImagePosition != "left" && b.ImagePosition != "right" {
			return fmt.Errorf("%w: image-text imagePosition must be left or right", ErrInvalidInput)
		}
		if !blockRatios[b.Ratio] {
			return fmt.Errorf("%w: unsupported image-text ratio %q", ErrInvalidInput, b.Ratio)
		}
	case BlockText, BlockQuote:
		if b.Content == "" {
			return fmt.Errorf("%w: %s block requires content", ErrInvalidInput, b.Type)
		}
	case BlockHeading:
		if b.Content == "" {
			return fmt.Errorf("%w: heading block requires content", ErrInvalidInput)
		}
		if b.Level < 1 || b.Level > 3 {
			return fmt.Errorf("%w: heading level must be 1-3", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown block type %q", ErrInvalidInput, b.Type)
	}
	return nil
}

const (
	DefaultHeightRatio  = 1.5
	DefaultTextContrast = "light"
)

type Project struct {
	ID           int       `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Thumbnail    string    `json:"thumbnail"`
	HeightRatio  float64   `json:"heightRatio"`
	TextContrast string    `json:"textContrast"`
	Blocks       []Block   `json:"blocks"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ProjectRepository interface {
	GetAll(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id int) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	// Create appends the project after the current last position.
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int) error
	// Reorder sets each project's position to its index in orderedIDs.
	Reorder(ctx context.Context, orderedIDs []int) error
}
