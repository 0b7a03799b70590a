// Package site assembles the public portfolio sections shown on the home page.
//
// Every section fetches the whole document on its own. A failed fetch is
// logged and the section renders empty; it never fails the page.
package site

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vbonduro/paani/internal/domain"
)

// Source is anything that can load the current portfolio document.
type Source interface {
	Read(ctx context.Context) (*domain.PortfolioDocument, error)
}

type Renderer struct {
	source Source
	logger *slog.Logger
}

func NewRenderer(source Source, logger *slog.Logger) *Renderer {
	return &Renderer{source: source, logger: logger}
}

// HomePage holds the sections of the public home page.
type HomePage struct {
	Store   []domain.Project
	Website []domain.Project
	Photos  []domain.Photo
	Videos  []domain.Video
}

func (r *Renderer) load(ctx context.Context, section string) *domain.PortfolioDocument {
	doc, err := r.source.Read(ctx)
	if err != nil {
		r.logger.Error("failed to load portfolio section", "section", section, "error", err)
		return nil
	}
	return doc
}

func (r *Renderer) Photos(ctx context.Context) []domain.Photo {
	doc := r.load(ctx, "photos")
	if doc == nil {
		return []domain.Photo{}
	}
	return nonNil(doc.Photos)
}

func (r *Renderer) Videos(ctx context.Context) []domain.Video {
	doc := r.load(ctx, "videos")
	if doc == nil {
		return []domain.Video{}
	}
	return nonNil(doc.Videos)
}

// CaseStudies returns the projects of one category. An unknown category
// renders empty.
func (r *Renderer) CaseStudies(ctx context.Context, category domain.CaseStudyCategory) []domain.Project {
	doc := r.load(ctx, "case_studies_"+string(category))
	if doc == nil {
		return []domain.Project{}
	}
	projects, ok := doc.Projects(category)
	if !ok {
		r.logger.Warn("unknown case study category", "category", category)
		return []domain.Project{}
	}
	return nonNil(projects)
}

// Home fetches all sections concurrently.
func (r *Renderer) Home(ctx context.Context) HomePage {
	var (
		page HomePage
		g    errgroup.Group
	)
	g.Go(func() error {
		page.Store = r.CaseStudies(ctx, domain.CaseStudyStore)
		return nil
	})
	g.Go(func() error {
		page.Website = r.CaseStudies(ctx, domain.CaseStudyWebsite)
		return nil
	})
	g.Go(func() error {
		page.Photos = r.Photos(ctx)
		return nil
	})
	g.Go(func() error {
		page.Videos = r.Videos(ctx)
		return nil
	})
	_ = g.Wait()
	return page
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
