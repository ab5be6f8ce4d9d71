// Package catalog holds the fixed menu and credit packs offered by the kiosk.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/junaidrashid-git/cybereatdiri/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is read-only after construction.
type Catalog struct {
	menu    []models.MenuItem
	credits []models.CreditItem
}

type file struct {
	Menu    []models.MenuItem   `yaml:"menu"`
	Credits []models.CreditItem `yaml:"credits"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file in the same YAML layout as the embedded one.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	seen := make(map[string]bool)
	for _, m := range f.Menu {
		if err := check(seen, "menu", m.ID, m.Name, m.Price); err != nil {
			return nil, err
		}
	}
	seen = make(map[string]bool)
	for _, cr := range f.Credits {
		if err := check(seen, "credit", cr.ID, cr.Hours, cr.Price); err != nil {
			return nil, err
		}
	}
	return &Catalog{menu: f.Menu, credits: f.Credits}, nil
}

func check(seen map[string]bool, kind, id, name string, price int) error {
	switch {
	case id == "":
		return fmt.Errorf("catalog: %s item %q has no id", kind, name)
	case name == "":
		return fmt.Errorf("catalog: %s item %q has no name", kind, id)
	case price < 0:
		return fmt.Errorf("catalog: %s item %q has negative price", kind, id)
	case seen[id]:
		return fmt.Errorf("catalog: duplicate %s id %q", kind, id)
	}
	seen[id] = true
	return nil
}

func (c *Catalog) Menu() []models.MenuItem {
	return append([]models.MenuItem(nil), c.menu...)
}

func (c *Catalog) Credits() []models.CreditItem {
	return append([]models.CreditItem(nil), c.credits...)
}

func (c *Catalog) MenuItem(id string) (models.MenuItem, bool) {
	for _, m := range c.menu {
		if m.ID == id {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

func (c *Catalog) CreditItem(id string) (models.CreditItem, bool) {
	for _, cr := range c.credits {
		if cr.ID == id {
			return cr, true
		}
	}
	return models.CreditItem{}, false
}
