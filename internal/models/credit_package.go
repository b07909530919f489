package models

import "time"

// CreditPackage is a priced bundle of platform credits. Rows are managed by an
// external admin process; this service only reads them.
type CreditPackage struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Credits     int       `json:"credits" gorm:"not null"`
	SalePrice   float64   `json:"sale_price" gorm:"not null"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CreditPackage) TableName() string {
	return "credit_packages"
}
