package domain

import (
	"maps"
	"slices"
)

// CaseStudyCategory names one of the two case-study lists.
type CaseStudyCategory string

const (
	CaseStudyStore   CaseStudyCategory = "store"
	CaseStudyWebsite CaseStudyCategory = "website"
)

// Labels used by the admin editor templates. Nothing enforces them.
const (
	PhotoCategoryModel      = "Model"
	PhotoCategoryCommercial = "Commercial"
	PhotoCategoryEvent      = "Event"

	VideoCategoryCommercial = "Commercial"
	VideoCategoryMusic      = "Music"
	VideoCategoryEvent      = "Event"
)

// PortfolioDocument is the single persisted record holding all editable site
// content. It is always read and written whole. Members no type models are
// kept in Extra on each level so they survive a read-modify-write cycle.
type PortfolioDocument struct {
	CaseStudies CaseStudies `json:"caseStudies"`
	Photos      []Photo     `json:"photos"`
	Videos      []Video     `json:"videos"`
	Extra       Extra       `json:"-"`
}

type CaseStudies struct {
	Store   []Project `json:"store"`
	Website []Project `json:"website"`
	Extra   Extra     `json:"-"`
}

// Project has no id; its identity is its index within its list.
type Project struct {
	Title   string `json:"title"`
	Image   string `json:"image"`
	Summary string `json:"summary"`
	Details string `json:"details"`
	Link    string `json:"link,omitempty"`
	Extra   Extra  `json:"-"`
}

type Photo struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
	Extra    Extra  `json:"-"`
}

type Video struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	URL      string `json:"url,omitempty"`
	Extra    Extra  `json:"-"`
}

// NewPortfolioDocument returns the seed document: every list present and empty.
func NewPortfolioDocument() *PortfolioDocument {
	d := &PortfolioDocument{}
	d.Normalize()
	return d
}

// Normalize replaces nil lists with empty ones so the document always
// serializes with arrays.
func (d *PortfolioDocument) Normalize() {
	if d.CaseStudies.Store == nil {
		d.CaseStudies.Store = []Project{}
	}
	if d.CaseStudies.Website == nil {
		d.CaseStudies.Website = []Project{}
	}
	if d.Photos == nil {
		d.Photos = []Photo{}
	}
	if d.Videos == nil {
		d.Videos = []Video{}
	}
}

// Clone returns a deep copy of d.
func (d *PortfolioDocument) Clone() *PortfolioDocument {
	if d == nil {
		return nil
	}
	c := &PortfolioDocument{
		CaseStudies: CaseStudies{
			Store:   cloneItems(d.CaseStudies.Store, func(p *Project) { p.Extra = maps.Clone(p.Extra) }),
			Website: cloneItems(d.CaseStudies.Website, func(p *Project) { p.Extra = maps.Clone(p.Extra) }),
			Extra:   maps.Clone(d.CaseStudies.Extra),
		},
		Photos: cloneItems(d.Photos, func(p *Photo) { p.Extra = maps.Clone(p.Extra) }),
		Videos: cloneItems(d.Videos, func(v *Video) { v.Extra = maps.Clone(v.Extra) }),
		Extra:  maps.Clone(d.Extra),
	}
	c.Normalize()
	return c
}

// cloneItems copies s and lets detach give each element its own maps.
func cloneItems[T any](s []T, detach func(*T)) []T {
	c := slices.Clone(s)
	for i := range c {
		detach(&c[i])
	}
	return c
}

// Projects returns the case-study list for category, or nil and false for an
// unknown category.
func (d *PortfolioDocument) Projects(category CaseStudyCategory) ([]Project, bool) {
	switch category {
	case CaseStudyStore:
		return d.CaseStudies.Store, true
	case CaseStudyWebsite:
		return d.CaseStudies.Website, true
	default:
		return nil, false
	}
}

// SetProjects replaces the case-study list for category. Unknown categories are
// ignored.
func (d *PortfolioDocument) SetProjects(category CaseStudyCategory, projects []Project) {
	switch category {
	case CaseStudyStore:
		d.CaseStudies.Store = projects
	case CaseStudyWebsite:
		d.CaseStudies.Website = projects
	}
}
