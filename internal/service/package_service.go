package service

import "github.com/googlehubs/helix-backend/internal/models"

type PackageService struct {
	packages PackageStore
}

func NewPackageService(packages PackageStore) *PackageService {
	return &PackageService{
		packages: packages,
	}
}

func (s *PackageService) GetAllPackages() ([]models.CreditPackage, error) {
	return s.packages.GetAllActive()
}

func (s *PackageService) GetPackageByID(id string) (*models.CreditPackage, error) {
	return s.packages.GetActiveByID(id)
}
