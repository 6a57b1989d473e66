package config

import (
	"fmt"
	"os"

	"southern-spoon-api/models"

	"gopkg.in/yaml.v3"
)

type menuFile struct {
	Items []models.MenuItem `yaml:"items"`
}

// LoadMenu returns the catalog from path, or the built-in one when path is empty.
//
//	items:
//	  - id: pappu
//	    name: Tomato Pappu/Dal (200g)
//	    price: 50
func LoadMenu(path string) ([]models.MenuItem, error) {
	if path == "" {
		return models.DefaultMenu(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	var f menuFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse menu %s: %w", path, err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("menu %s has no items", path)
	}
	seen := map[string]bool{}
	for _, it := range f.Items {
		switch {
		case it.ID == "" || it.Name == "":
			return nil, fmt.Errorf("menu %s: every item needs an id and a name", path)
		case it.Price < 0:
			return nil, fmt.Errorf("menu %s: item %q has a negative price", path, it.ID)
		case seen[it.ID]:
			return nil, fmt.Errorf("menu %s: duplicate item id %q", path, it.ID)
		}
		seen[it.ID] = true
	}
	return f.Items, nil
}
