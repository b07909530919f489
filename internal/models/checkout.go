package models

// PurchaseRequest is the body of POST /api/payments/purchase-credits. The
// userId may be a temporary pre-registration identifier; userEmail is required
// but its syntax is not validated server-side.
type PurchaseRequest struct {
	PackageID string `json:"packageId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required"`
}

// PurchasedPackage is the package summary echoed back on a successful checkout.
type PurchasedPackage struct {
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Price   float64 `json:"price"`
}

// CheckoutResponse is the success body. CheckoutURL points at the provider's
// hosted checkout page; the client redirects the browser to it.
type CheckoutResponse struct {
	Success     bool             `json:"success"`
	CheckoutURL string           `json:"checkoutUrl"`
	SessionID   string           `json:"sessionId"`
	Package     PurchasedPackage `json:"package"`
}
