package models

import "time"

type Payment struct {
	ID            string  `json:"payment_id"`
	UserID        string  `json:"user_id"`
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"payment_status"`

	// Joined user display fields on reads.
	UserName  string `json:"name,omitempty"`
	UserEmail string `json:"email,omitempty"`
}

type PremiumPackage struct {
	ID           string  `json:"package_id"`
	Name         string  `json:"package_name"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
}

type UserPremiumPackage struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PackageID    string    `json:"package_id"`
	PurchaseDate time.Time `json:"purchase_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
}
