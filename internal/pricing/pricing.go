package pricing

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var plansYAML []byte

type Plan struct {
	Name     string   `yaml:"name" json:"name"`
	Price    string   `yaml:"price" json:"price"`
	Period   string   `yaml:"period" json:"period"`
	Features []string `yaml:"features" json:"features"`
	Popular  bool     `yaml:"popular" json:"isPopular"`
	Slug     string   `yaml:"slug" json:"slug"`
}

type CustomPackage struct {
	Service string `yaml:"service" json:"service"`
	Price   string `yaml:"price" json:"price"`
}

type ProductionService struct {
	Title   string `yaml:"title" json:"title"`
	Price   string `yaml:"price" json:"price"`
	Popular bool   `yaml:"popular" json:"isPopular,omitempty"`
	Slug    string `yaml:"slug" json:"slug"`
}

type Category struct {
	Title              string              `yaml:"title" json:"title"`
	Slug               string              `yaml:"slug" json:"slug"`
	Description        string              `yaml:"description" json:"description"`
	Plans              []Plan              `yaml:"plans" json:"plans"`
	CustomPackages     []CustomPackage     `yaml:"custom_packages" json:"customPackages,omitempty"`
	ProductionServices []ProductionService `yaml:"production_services" json:"productionServices,omitempty"`
}

// Catalogue is the agency's fixed price list.
type Catalogue struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Load parses the embedded price list.
func Load() (*Catalogue, error) {
	return Parse(plansYAML)
}

func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse pricing data: %w", err)
	}
	for i := range c.Categories {
		if c.Categories[i].Plans == nil {
			c.Categories[i].Plans = []Plan{}
		}
	}
	return &c, nil
}

func (c *Catalogue) Category(slug string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].Slug == slug {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// Plan looks up a plan by category and plan slug.
func (c *Catalogue) Plan(category, slug string) (*Plan, bool) {
	cat, ok := c.Category(category)
	if !ok {
		return nil, false
	}
	for i := range cat.Plans {
		if cat.Plans[i].Slug == slug {
			return &cat.Plans[i], true
		}
	}
	return nil, false
}

// CustomPackages returns the à la carte services listed with the first
// category.
func (c *Catalogue) CustomPackages() []CustomPackage {
	if len(c.Categories) == 0 {
		return nil
	}
	return c.Categories[0].CustomPackages
}
