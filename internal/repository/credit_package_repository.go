package repository

import (
	"github.com/googlehubs/helix-backend/internal/models"
	"gorm.io/gorm"
)

type CreditPackageRepository struct {
	db *gorm.DB
}

func NewCreditPackageRepository(db *gorm.DB) *CreditPackageRepository {
	return &CreditPackageRepository{
		db: db,
	}
}

// GetActiveByID fetches a single purchasable package. Inactive packages are
// treated the same as unknown ids: gorm.ErrRecordNotFound.
func (r *CreditPackageRepository) GetActiveByID(id string) (*models.CreditPackage, error) {
	var creditPackage models.CreditPackage
	err := r.db.Where("id = ? AND active = ?", id, true).First(&creditPackage).Error
	if err != nil {
		return nil, err
	}
	return &creditPackage, nil
}

func (r *CreditPackageRepository) GetAllActive() ([]models.CreditPackage, error) {
	var packages []models.CreditPackage
	err := r.db.Where("active = ?", true).Order("credits ASC").Find(&packages).Error
	return packages, err
}
