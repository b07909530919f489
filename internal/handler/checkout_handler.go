package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/googlehubs/helix-backend/internal/models"
	"github.com/googlehubs/helix-backend/internal/service"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// PurchaseCredits handles POST /api/payments/purchase-credits. Every
// invocation creates exactly one provider session; duplicate submissions
// create duplicate sessions, which the provider resolves independently.
func (h *CheckoutHandler) PurchaseCredits(c *fiber.Ctx) error {
	var req models.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.checkoutService.CreateCheckoutSession(req, c.Get("Origin"))
	if err != nil {
		return h.checkoutError(c, err)
	}

	h.logger.Info("checkout session created",
		zap.String("session_id", resp.SessionID),
		zap.String("package_id", req.PackageID),
	)

	return c.JSON(resp)
}

func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error) error {
	var checkoutErr *service.CheckoutError
	if !errors.As(err, &checkoutErr) {
		h.logger.Error("unclassified checkout failure", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if checkoutErr.HTTPStatus() >= fiber.StatusInternalServerError {
		h.logger.Error("checkout failed", zap.Error(checkoutErr))
	}

	body := fiber.Map{"error": checkoutErr.Message}
	if checkoutErr.Details != "" {
		body["details"] = checkoutErr.Details
	}
	return c.Status(checkoutErr.HTTPStatus()).JSON(body)
}
