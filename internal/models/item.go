package models

import "time"

type ItemStatus = string

const (
	ItemStatusAvailable ItemStatus = "Available"
	ItemStatusSold      ItemStatus = "Sold"
)

type Item struct {
	ID          string     `json:"item_id"`
	SellerID    string     `json:"seller_id"`
	Name        string     `json:"item_name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	CategoryID  *string    `json:"category_id"`
	Quantity    int        `json:"quantity"`
	PostedDate  time.Time  `json:"posted_date"`
	Address     string     `json:"address"`
	Status      ItemStatus `json:"item_status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Denormalized read-side fields.
	SellerName   string   `json:"user_name,omitempty"`
	SellerImage  string   `json:"image_user,omitempty"`
	CategoryName *string  `json:"category_name,omitempty"`
	Images       []string `json:"item_images"`
}

type ItemImage struct {
	ID       string `json:"image_id"`
	ItemID   string `json:"item_id"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
}

type Category struct {
	ID   string `json:"category_id"`
	Name string `json:"category_name"`
}
