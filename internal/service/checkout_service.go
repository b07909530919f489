package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/googlehubs/helix-backend/internal/config"
	"github.com/googlehubs/helix-backend/internal/models"
	"github.com/googlehubs/helix-backend/pkg/payment"
	"github.com/googlehubs/helix-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"
)

// PackageStore is the read-only view of the credit_packages table.
type PackageStore interface {
	GetActiveByID(id string) (*models.CreditPackage, error)
	GetAllActive() ([]models.CreditPackage, error)
}

// CheckoutCreator creates one hosted checkout session per call.
type CheckoutCreator interface {
	CreateCheckoutSession(p payment.CheckoutParams) (*payment.CheckoutSession, error)
}

// CheckoutService turns a purchase request into a hosted checkout session.
// It is stateless: nothing is persisted locally, so a retried request simply
// creates another session and the provider remains the system of record.
type CheckoutService struct {
	packages  PackageStore
	payments  CheckoutCreator
	cfg       *config.Config
	validator *utils.Validator
}

func NewCheckoutService(packages PackageStore, payments CheckoutCreator, cfg *config.Config, validator *utils.Validator) *CheckoutService {
	return &CheckoutService{
		packages:  packages,
		payments:  payments,
		cfg:       cfg,
		validator: validator,
	}
}

// CreateCheckoutSession validates the request, loads the priced package and
// asks the provider for a one-time-payment session. origin is the caller's
// declared Origin header; when empty the configured fallback domain is used
// for the redirect URLs.
func (s *CheckoutService) CreateCheckoutSession(req models.PurchaseRequest, origin string) (*models.CheckoutResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidRequest("Missing required fields: packageId, userId, userEmail")
	}

	if missing := s.cfg.MissingKeys(); len(missing) > 0 {
		return nil, misconfigured("Service is not configured: missing " + strings.Join(missing, ", "))
	}

	creditPackage, err := s.packages.GetActiveByID(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packageUnavailable("Credit package not found or inactive")
		}
		return nil, upstreamFailure("Failed to load credit package", err.Error())
	}

	description := creditPackage.Description
	if description == "" {
		description = fmt.Sprintf("%d platform credits", creditPackage.Credits)
	}

	if origin == "" {
		origin = s.cfg.FallbackOrigin
	}

	// Duplicated onto both the session and its payment intent so fulfillment
	// can credit the account from whichever object its webhook event carries.
	metadata := map[string]string{
		"userId":    req.UserID,
		"packageId": req.PackageID,
		"credits":   strconv.Itoa(creditPackage.Credits),
		"type":      "credit_purchase",
	}

	session, err := s.payments.CreateCheckoutSession(payment.CheckoutParams{
		CustomerEmail:      req.UserEmail,
		ProductName:        creditPackage.Name,
		ProductDescription: description,
		UnitAmount:         toCents(creditPackage.SalePrice),
		SuccessURL:         origin + "/dashboard?credits_purchase=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          origin + "/dashboard?credits_purchase=cancelled",
		Metadata:           metadata,
	})
	if err != nil {
		return nil, upstreamFailure("Failed to create checkout session", providerErrorMessage(err))
	}

	return &models.CheckoutResponse{
		Success:     true,
		CheckoutURL: session.URL,
		SessionID:   session.ID,
		Package: models.PurchasedPackage{
			Name:    creditPackage.Name,
			Credits: creditPackage.Credits,
			Price:   creditPackage.SalePrice,
		},
	}, nil
}

// toCents converts a USD price to integer cents with standard
// half-away-from-zero rounding on the float64 product.
func toCents(salePrice float64) int64 {
	return int64(math.Round(salePrice * 100))
}

// providerErrorMessage forwards only the provider's own message, never
// request parameters or credentials.
func providerErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
