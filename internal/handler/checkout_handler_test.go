package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/googlehubs/helix-backend/internal/config"
	"github.com/googlehubs/helix-backend/internal/models"
	"github.com/googlehubs/helix-backend/internal/service"
	"github.com/googlehubs/helix-backend/pkg/payment"
	"github.com/googlehubs/helix-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePackageStore struct {
	pkg *models.CreditPackage
}

func (f *fakePackageStore) GetActiveByID(id string) (*models.CreditPackage, error) {
	if f.pkg == nil || f.pkg.ID != id || !f.pkg.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return f.pkg, nil
}

func (f *fakePackageStore) GetAllActive() ([]models.CreditPackage, error) {
	if f.pkg == nil {
		return nil, nil
	}
	return []models.CreditPackage{*f.pkg}, nil
}

type fakeCheckoutCreator struct {
	calls int
}

func (f *fakeCheckoutCreator) CreateCheckoutSession(p payment.CheckoutParams) (*payment.CheckoutSession, error) {
	f.calls++
	id := fmt.Sprintf("cs_test_%d", f.calls)
	return &payment.CheckoutSession{
		ID:  id,
		URL: "https://checkout.stripe.com/c/pay/" + id,
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		StripeSecretKey: "sk_test_123",
		DatabaseURL:     "postgres://localhost/helix_test",
		ServiceRoleKey:  "service_role_test",
		FallbackOrigin:  "https://helix.googlehubs.com",
	}
}

func activePackage() *models.CreditPackage {
	return &models.CreditPackage{
		ID:          "pkg_500",
		Name:        "Creator",
		Description: "500 platform credits for HELIX tools",
		Credits:     500,
		SalePrice:   19.99,
		Active:      true,
	}
}

func newTestApp(store *fakePackageStore, payments *fakeCheckoutCreator, cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization, X-Client-Info, Apikey",
	}))

	checkoutService := service.NewCheckoutService(store, payments, cfg, utils.NewValidator())
	checkoutHandler := NewCheckoutHandler(checkoutService, zap.NewNop())
	packageHandler := NewCreditPackageHandler(service.NewPackageService(store))

	api := app.Group("/api")
	api.Post("/payments/purchase-credits", checkoutHandler.PurchaseCredits)
	api.Get("/payments/packages", packageHandler.GetAllPackages)
	api.Get("/packages/:id", packageHandler.GetPackageByID)
	return app
}

func postPurchase(t *testing.T, app *fiber.App, body, origin string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/api/payments/purchase-credits", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestPurchaseCreditsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing userId and userEmail", body: `{"packageId":"pkg_500"}`},
		{name: "missing userEmail", body: `{"packageId":"pkg_500","userId":"user_1"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := &fakeCheckoutCreator{}
			app := newTestApp(&fakePackageStore{pkg: activePackage()}, payments, testConfig())

			resp := postPurchase(t, app, tt.body, "https://app.example.com")
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}

			var body map[string]interface{}
			decodeBody(t, resp, &body)
			if body["error"] == "" || body["error"] == nil {
				t.Fatal("expected an error message in the body")
			}
			if payments.calls != 0 {
				t.Fatalf("expected no provider calls, got %d", payments.calls)
			}
		})
	}
}

func TestPurchaseCreditsMalformedBody(t *testing.T) {
	payments := &fakeCheckoutCreator{}
	app := newTestApp(&fakePackageStore{pkg: activePackage()}, payments, testConfig())

	resp := postPurchase(t, app, `{"packageId":`, "https://app.example.com")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if payments.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", payments.calls)
	}
}

func TestPurchaseCreditsUnknownPackage(t *testing.T) {
	payments := &fakeCheckoutCreator{}
	app := newTestApp(&fakePackageStore{pkg: activePackage()}, payments, testConfig())

	resp := postPurchase(t, app, `{"packageId":"pkg_999","userId":"user_1","userEmail":"a@b.com"}`, "https://app.example.com")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "not found") {
		t.Fatalf("expected a package-unavailable message, got %q", msg)
	}
	if payments.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", payments.calls)
	}
}

func TestPurchaseCreditsSuccess(t *testing.T) {
	payments := &fakeCheckoutCreator{}
	app := newTestApp(&fakePackageStore{pkg: activePackage()}, payments, testConfig())

	resp := postPurchase(t, app, `{"packageId":"pkg_500","userId":"user_1","userEmail":"buyer@example.com"}`, "https://app.example.com")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS header, got %q", got)
	}

	var body models.CheckoutResponse
	decodeBody(t, resp, &body)

	if !body.Success {
		t.Fatal("expected success true")
	}
	if !strings.HasPrefix(body.CheckoutURL, "https://checkout.stripe.com") {
		t.Fatalf("expected hosted checkout URL, got %q", body.CheckoutURL)
	}
	if body.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if body.Package.Credits != 500 {
		t.Fatalf("expected 500 credits, got %d", body.Package.Credits)
	}
	if body.Package.Price != 19.99 {
		t.Fatalf("expected price 19.99, got %v", body.Package.Price)
	}
}

func TestPurchaseCreditsMisconfigured(t *testing.T) {
	cfg := testConfig()
	cfg.StripeSecretKey = ""

	payments := &fakeCheckoutCreator{}
	app := newTestApp(&fakePackageStore{pkg: activePackage()}, payments, cfg)

	resp := postPurchase(t, app, `{"packageId":"pkg_500","userId":"user_1","userEmail":"a@b.com"}`, "https://app.example.com")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header on failure responses, got %q", got)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["error"] == "" || body["error"] == nil {
		t.Fatal("expected an error message in the body")
	}
	if payments.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", payments.calls)
	}
}

func TestPurchaseCreditsPreflight(t *testing.T) {
	app := newTestApp(&fakePackageStore{pkg: activePackage()}, &fakeCheckoutCreator{}, testConfig())

	req, err := http.NewRequest(http.MethodOptions, "/api/payments/purchase-credits", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if methods := resp.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "OPTIONS") {
		t.Fatalf("expected OPTIONS in allowed methods, got %q", methods)
	}
}
