package database

import (
	"fmt"

	"github.com/googlehubs/helix-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.CreditPackage{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedCreditPackages(db); err != nil {
		return nil, fmt.Errorf("failed to seed credit packages: %w", err)
	}

	return db, nil
}

// seedCreditPackages inserts the default catalog for local development.
// Production rows are managed by an external admin process; existing ids are
// never touched.
func seedCreditPackages(db *gorm.DB) error {
	packages := []models.CreditPackage{
		{
			ID:          "pkg_100",
			Name:        "Starter",
			Description: "100 platform credits for HELIX tools",
			Credits:     100,
			SalePrice:   4.99,
			Active:      true,
		},
		{
			ID:          "pkg_500",
			Name:        "Creator",
			Description: "500 platform credits for HELIX tools",
			Credits:     500,
			SalePrice:   19.99,
			Active:      true,
		},
		{
			ID:          "pkg_1500",
			Name:        "Studio",
			Description: "1500 platform credits for HELIX tools",
			Credits:     1500,
			SalePrice:   49.99,
			Active:      true,
		},
		{
			ID:          "pkg_5000",
			Name:        "Agency",
			Description: "5000 platform credits for HELIX tools, priority support",
			Credits:     5000,
			SalePrice:   149.99,
			Active:      true,
		},
	}

	for _, pkg := range packages {
		var count int64
		db.Model(&models.CreditPackage{}).Where("id = ?", pkg.ID).Count(&count)
		if count == 0 {
			if err := db.Create(&pkg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
