package repository

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

//go:embed universe.yaml
var universeYAML []byte

type universeFile struct {
	Users []struct {
		Username string `yaml:"username"`
	} `yaml:"users"`
	Ships []struct {
		Name          string `yaml:"name"`
		CargoCapacity int    `yaml:"cargo_capacity"`
		MaxFuel       int    `yaml:"max_fuel"`
		Cost          int    `yaml:"cost"`
		Description   string `yaml:"description"`
	} `yaml:"ships"`
	Commodities []struct {
		Name      string `yaml:"name"`
		BasePrice int    `yaml:"base_price"`
	} `yaml:"commodities"`
	Planets []struct {
		Name        string `yaml:"name"`
		X           int    `yaml:"x"`
		Y           int    `yaml:"y"`
		Type        string `yaml:"type"`
		Distant     bool   `yaml:"distant"`
		Description string `yaml:"description"`
		Market      []struct {
			Commodity string `yaml:"commodity"`
			BuyPrice  int    `yaml:"buy_price"`
			SellPrice int    `yaml:"sell_price"`
			Stock     int    `yaml:"stock"`
		} `yaml:"market"`
	} `yaml:"planets"`
}

func loadUniverse() (*universeFile, error) {
	var universe universeFile
	if err := yaml.Unmarshal(universeYAML, &universe); err != nil {
		return nil, fmt.Errorf("parsing universe definition: %w", err)
	}
	return &universe, nil
}

// Seed loads the embedded universe definition into an empty database. A
// database that already has planets is left alone.
func (r *Repository) Seed() error {
	var planetCount int64
	if err := r.db.Model(&models.Planet{}).Count(&planetCount).Error; err != nil {
		return translate(err)
	}
	if planetCount > 0 {
		r.logger.Info("Seed data already exists, skipping")
		return nil
	}

	universe, err := loadUniverse()
	if err != nil {
		return err
	}
	r.logger.Info("Seeding database", "planets", len(universe.Planets), "commodities", len(universe.Commodities))

	for _, u := range universe.Users {
		if err := r.db.Create(&models.User{Username: u.Username}).Error; err != nil {
			return fmt.Errorf("seeding user %q: %w", u.Username, translate(err))
		}
	}

	for _, s := range universe.Ships {
		ship := models.Ship{
			Name:          s.Name,
			CargoCapacity: s.CargoCapacity,
			MaxFuel:       s.MaxFuel,
			Cost:          s.Cost,
			Description:   s.Description,
		}
		if err := r.db.Create(&ship).Error; err != nil {
			return fmt.Errorf("seeding ship %q: %w", s.Name, translate(err))
		}
	}

	commodityIDs := make(map[string]uint, len(universe.Commodities))
	for _, c := range universe.Commodities {
		commodity := models.Commodity{Name: c.Name, BasePrice: c.BasePrice}
		if err := r.db.Create(&commodity).Error; err != nil {
			return fmt.Errorf("seeding commodity %q: %w", c.Name, translate(err))
		}
		commodityIDs[c.Name] = commodity.ID
	}

	for _, p := range universe.Planets {
		planet := models.Planet{
			Name:        p.Name,
			X:           p.X,
			Y:           p.Y,
			Type:        p.Type,
			Distant:     p.Distant,
			Description: p.Description,
		}
		if err := r.db.Create(&planet).Error; err != nil {
			return fmt.Errorf("seeding planet %q: %w", p.Name, translate(err))
		}
		for _, m := range p.Market {
			commodityID, ok := commodityIDs[m.Commodity]
			if !ok {
				return fmt.Errorf("planet %q lists unknown commodity %q", p.Name, m.Commodity)
			}
			entry := models.Market{
				PlanetID:    planet.ID,
				CommodityID: commodityID,
				BuyPrice:    m.BuyPrice,
				SellPrice:   m.SellPrice,
				Stock:       m.Stock,
			}
			if err := r.db.Create(&entry).Error; err != nil {
				return fmt.Errorf("seeding market %q/%q: %w", p.Name, m.Commodity, translate(err))
			}
		}
	}

	r.logger.Info("Database seeding completed")
	return nil
}
