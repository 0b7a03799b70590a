// Package editor implements the admin editing workflow over a working copy
// of the portfolio document.
//
// The functions in this file never modify their input. Each returns a fresh
// snapshot with exactly one list changed.
package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vbonduro/paani/internal/domain"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownCategory = errors.New("unknown case study category")
	ErrUnknownField    = errors.New("unknown field")
)

type ProjectField string

const (
	ProjectTitle   ProjectField = "title"
	ProjectImage   ProjectField = "image"
	ProjectSummary ProjectField = "summary"
	ProjectDetails ProjectField = "details"
	ProjectLink    ProjectField = "link"
)

type PhotoField string

const (
	PhotoSrc      PhotoField = "src"
	PhotoAlt      PhotoField = "alt"
	PhotoCategory PhotoField = "category"
)

type VideoField string

const (
	VideoTitle    VideoField = "title"
	VideoCategory VideoField = "category"
	VideoURL      VideoField = "url"
)

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, n)
	}
	return nil
}

func projects(doc *domain.PortfolioDocument, category domain.CaseStudyCategory) ([]domain.Project, error) {
	list, ok := doc.Projects(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return list, nil
}

// NewProject is the template prepended by AddProject.
func NewProject() domain.Project {
	return domain.Project{}
}

// NewPhoto is the template prepended by AddPhoto.
func NewPhoto(id int64) domain.Photo {
	return domain.Photo{ID: id, Category: domain.PhotoCategoryModel}
}

// NewVideo is the template prepended by AddVideo.
func NewVideo(id int64) domain.Video {
	return domain.Video{ID: id, Category: domain.VideoCategoryCommercial}
}

func UpdateProject(doc *domain.PortfolioDocument, category domain.CaseStudyCategory, index int, field ProjectField, value string) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	list, err := projects(out, category)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(index, len(list)); err != nil {
		return nil, err
	}
	p := &list[index]
	switch field {
	case ProjectTitle:
		p.Title = value
	case ProjectImage:
		p.Image = value
	case ProjectSummary:
		p.Summary = value
	case ProjectDetails:
		p.Details = value
	case ProjectLink:
		p.Link = value
	default:
		return nil, fmt.Errorf("%w: project %q", ErrUnknownField, field)
	}
	return out, nil
}

// AddProject prepends an empty project to the category's list.
func AddProject(doc *domain.PortfolioDocument, category domain.CaseStudyCategory) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	list, err := projects(out, category)
	if err != nil {
		return nil, err
	}
	out.SetProjects(category, slices.Insert(list, 0, NewProject()))
	return out, nil
}

func RemoveProject(doc *domain.PortfolioDocument, category domain.CaseStudyCategory, index int) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	list, err := projects(out, category)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(index, len(list)); err != nil {
		return nil, err
	}
	out.SetProjects(category, slices.Delete(list, index, index+1))
	return out, nil
}

func UpdatePhoto(doc *domain.PortfolioDocument, index int, field PhotoField, value string) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	if err := checkIndex(index, len(out.Photos)); err != nil {
		return nil, err
	}
	p := &out.Photos[index]
	switch field {
	case PhotoSrc:
		p.Src = value
	case PhotoAlt:
		p.Alt = value
	case PhotoCategory:
		p.Category = value
	default:
		return nil, fmt.Errorf("%w: photo %q", ErrUnknownField, field)
	}
	return out, nil
}

func AddPhoto(doc *domain.PortfolioDocument, id int64) *domain.PortfolioDocument {
	out := snapshot(doc)
	out.Photos = slices.Insert(out.Photos, 0, NewPhoto(id))
	return out
}

func RemovePhoto(doc *domain.PortfolioDocument, index int) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	if err := checkIndex(index, len(out.Photos)); err != nil {
		return nil, err
	}
	out.Photos = slices.Delete(out.Photos, index, index+1)
	return out, nil
}

func UpdateVideo(doc *domain.PortfolioDocument, index int, field VideoField, value string) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	if err := checkIndex(index, len(out.Videos)); err != nil {
		return nil, err
	}
	v := &out.Videos[index]
	switch field {
	case VideoTitle:
		v.Title = value
	case VideoCategory:
		v.Category = value
	case VideoURL:
		v.URL = value
	default:
		return nil, fmt.Errorf("%w: video %q", ErrUnknownField, field)
	}
	return out, nil
}

func AddVideo(doc *domain.PortfolioDocument, id int64) *domain.PortfolioDocument {
	out := snapshot(doc)
	out.Videos = slices.Insert(out.Videos, 0, NewVideo(id))
	return out
}

func RemoveVideo(doc *domain.PortfolioDocument, index int) (*domain.PortfolioDocument, error) {
	out := snapshot(doc)
	if err := checkIndex(index, len(out.Videos)); err != nil {
		return nil, err
	}
	out.Videos = slices.Delete(out.Videos, index, index+1)
	return out, nil
}

func snapshot(doc *domain.PortfolioDocument) *domain.PortfolioDocument {
	if doc == nil {
		return domain.NewPortfolioDocument()
	}
	return doc.Clone()
}
