package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedConfig is the structure of the development seed file: couples with
// their published dashboard and planning records.
type SeedConfig struct {
	Couples []CoupleSeed `yaml:"couples"`
}

// CoupleSeed describes one couple's data.
type CoupleSeed struct {
	OwnerID     string           `yaml:"owner_id"`
	VanityURL   string           `yaml:"vanity_url"`
	ShareCode   string           `yaml:"share_code,omitempty"` // generated when empty
	Guests      []GuestSeed      `yaml:"guests"`
	BudgetItems []BudgetItemSeed `yaml:"budget_items"`
	Vendors     []VendorSeed     `yaml:"vendors"`
}

// GuestSeed is a seeded guest.
type GuestSeed struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status,omitempty"`
	Group  string `yaml:"group,omitempty"`
}

// BudgetItemSeed is a seeded budget line.
type BudgetItemSeed struct {
	Name   string  `yaml:"name"`
	Budget float64 `yaml:"budget"`
	Spent  float64 `yaml:"spent"`
	Notes  string  `yaml:"notes,omitempty"`
}

// VendorSeed is a seeded saved vendor.
type VendorSeed struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	ImageID  string `yaml:"image_id,omitempty"`
}

// LoadSeedFile loads the YAML seed file at path.
// Returns nil without error if path is empty or the file doesn't exist.
func LoadSeedFile(path string) (*SeedConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Seed file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg SeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetCoupleByVanity finds the first seeded couple with the vanity URL,
// ignoring case and surrounding spaces.
func (c *SeedConfig) GetCoupleByVanity(vanity string) *CoupleSeed {
	if c == nil {
		return nil
	}
	vanity = strings.TrimSpace(vanity)
	for i := range c.Couples {
		if strings.EqualFold(strings.TrimSpace(c.Couples[i].VanityURL), vanity) {
			return &c.Couples[i]
		}
	}
	return nil
}
