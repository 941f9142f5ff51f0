package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a seller catalog as published at the seller's URL.
type Document struct {
	Seller     string             `yaml:"seller"`
	Categories []DocumentCategory `yaml:"categories"`
	Goods      []DocumentGood     `yaml:"goods"`
}

// DocumentCategory describes one category entry of the document.
type DocumentCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// DocumentGood describes one stock position of the document. Its ID becomes
// the article (SKU) of the resulting listing, Model its display name.
type DocumentGood struct {
	ID         int64                 `yaml:"id"`
	Category   int64                 `yaml:"category"`
	Name       string                `yaml:"name"`
	Model      string                `yaml:"model"`
	Quantity   int64                 `yaml:"quantity"`
	Price      int64                 `yaml:"price"`
	PriceRRC   int64                 `yaml:"price_rrc"`
	Parameters map[string]ParamValue `yaml:"parameters"`
}

// ParamValue is a parameter value coerced to a string, so documents may use
// bare numbers ("Weight: 450") as well as quoted strings.
type ParamValue string

func (v *ParamValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("parameter value must be a scalar, got %v", node.Kind)
	}
	*v = ParamValue(node.Value)
	return nil
}

// ParseDocument decodes and validates a YAML catalog document.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse catalog document: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	return doc, nil
}

func (d *Document) validate() error {
	if d.Seller == "" {
		return fmt.Errorf("seller name is missing")
	}
	known := make(map[int64]bool, len(d.Categories))
	for i, c := range d.Categories {
		if c.ID <= 0 {
			return fmt.Errorf("category %d: id must be positive", i)
		}
		if c.Name == "" {
			return fmt.Errorf("category %d: name is missing", c.ID)
		}
		known[c.ID] = true
	}
	for i, g := range d.Goods {
		switch {
		case g.Name == "":
			return fmt.Errorf("good %d: name is missing", i)
		case !known[g.Category]:
			return fmt.Errorf("good %q: unknown category %d", g.Name, g.Category)
		case g.ID < 0 || g.Quantity < 0 || g.Price < 0 || g.PriceRRC < 0:
			return fmt.Errorf("good %q: id, quantity and prices must be non-negative", g.Name)
		}
	}
	return nil
}
