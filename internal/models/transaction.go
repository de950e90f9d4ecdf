package models

import "time"

type TransactionStatus = string

const (
	TransactionStatusPending      TransactionStatus = "Pending"
	TransactionStatusCompleted    TransactionStatus = "Completed"
	TransactionStatusNotCompleted TransactionStatus = "Not Completed"
)

type Transaction struct {
	ID           string            `json:"transaction_id"`
	BuyerID      string            `json:"buyer_id"`
	SellerID     string            `json:"seller_id"`
	BuyerItemID  string            `json:"item_buyer_id"`
	SellerItemID string            `json:"item_seller_id"`
	Date         time.Time         `json:"transaction_date"`
	Status       TransactionStatus `json:"transaction_status"`
	TotalAmount  *float64          `json:"total_amount"`

	// Read-side enrichment: current state of both referenced items.
	BuyerItem  *Item `json:"buyer_item,omitempty"`
	SellerItem *Item `json:"seller_item,omitempty"`
}
