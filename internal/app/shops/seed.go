package shops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Shops []seedShop `yaml:"shops"`
}

type seedShop struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Address     string   `yaml:"address"`
	Category    string   `yaml:"category"`
	Rating      *float64 `yaml:"rating"`
	Phone       *string  `yaml:"phone"`
}

// LoadSeedFile reads the starter shops listed in a YAML file of the form
//
//	shops:
//	  - name: Silk House
//	    category: Textiles
func LoadSeedFile(path string) ([]Draft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes YAML seed data into drafts.
func ParseSeed(raw []byte) ([]Draft, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	drafts := make([]Draft, 0, len(file.Shops))
	for _, s := range file.Shops {
		drafts = append(drafts, Draft{
			Name:        ptr(s.Name),
			Description: ptr(s.Description),
			Address:     ptr(s.Address),
			Category:    ptr(s.Category),
			Rating:      s.Rating,
			Phone:       s.Phone,
		})
	}
	return drafts, nil
}
