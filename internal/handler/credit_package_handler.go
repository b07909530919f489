package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/googlehubs/helix-backend/internal/models"
	"github.com/googlehubs/helix-backend/internal/service"
)

type CreditPackageHandler struct {
	packageService *service.PackageService
}

func NewCreditPackageHandler(packageService *service.PackageService) *CreditPackageHandler {
	return &CreditPackageHandler{
		packageService: packageService,
	}
}

func (h *CreditPackageHandler) GetAllPackages(c *fiber.Ctx) error {
	packages, err := h.packageService.GetAllPackages()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(packages, "Packages retrieved successfully"))
}

func (h *CreditPackageHandler) GetPackageByID(c *fiber.Ctx) error {
	pkg, err := h.packageService.GetPackageByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Package not found"))
	}

	return c.JSON(models.SuccessResponse(pkg, "Package retrieved successfully"))
}
