package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/service"
)

type transactionRequest struct {
	BuyerID      string   `json:"buyer_id" binding:"required"`
	SellerID     string   `json:"seller_id" binding:"required"`
	BuyerItemID  string   `json:"item_buyer_id" binding:"required"`
	SellerItemID string   `json:"item_seller_id" binding:"required"`
	Date         string   `json:"transaction_date" binding:"required"`
	Status       string   `json:"transaction_status"`
	TotalAmount  *float64 `json:"total_amount"`
}

func (req transactionRequest) toInput() service.TransactionInput {
	return service.TransactionInput{
		BuyerID:      req.BuyerID,
		SellerID:     req.SellerID,
		BuyerItemID:  req.BuyerItemID,
		SellerItemID: req.SellerItemID,
		Date:         req.Date,
		Status:       req.Status,
		TotalAmount:  req.TotalAmount,
	}
}

func (h HandlerSet) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	txn, err := h.trades.Create(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transaction created successfully", txn)
}

func (h HandlerSet) ListTransactions(c *gin.Context) {
	txns, err := h.trades.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transactions retrieved successfully", txns)
}

func (h HandlerSet) ListTransactionsByBuyer(c *gin.Context) {
	txns, err := h.trades.ListByBuyer(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transactions retrieved successfully", txns)
}

func (h HandlerSet) ListTransactionsBySeller(c *gin.Context) {
	txns, err := h.trades.ListBySeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transactions retrieved successfully", txns)
}

func (h HandlerSet) GetTransaction(c *gin.Context) {
	txn, err := h.trades.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transaction retrieved successfully", txn)
}

func (h HandlerSet) AcceptTransaction(c *gin.Context) {
	txn, err := h.trades.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transaction accepted successfully", txn)
}

func (h HandlerSet) UpdateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	txn, err := h.trades.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Updated transaction successfully", txn)
}

func (h HandlerSet) DeleteTransaction(c *gin.Context) {
	if err := h.trades.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Transaction deleted successfully", nil)
}
