package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/ids"
	"giftfall/api/internal/models"
)

type paymentRequest struct {
	UserID        string  `json:"user_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Status        string  `json:"payment_status"`
}

func (req paymentRequest) toModel(id string) models.Payment {
	return models.Payment{
		ID:            id,
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		Status:        req.Status,
	}
}

func (h HandlerSet) CreatePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	payment := req.toModel(ids.New())
	if err := h.payments.Create(c.Request.Context(), payment); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment created successfully", payment)
}

func (h HandlerSet) ListPayments(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payments retrieved successfully", payments)
}

func (h HandlerSet) GetPayment(c *gin.Context) {
	payment, err := h.payments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment retrieved successfully", payment)
}

func (h HandlerSet) UpdatePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	payment := req.toModel(c.Param("id"))
	if err := h.payments.Update(c.Request.Context(), payment.ID, payment); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Updated payment successfully", payment)
}

func (h HandlerSet) DeletePayment(c *gin.Context) {
	if err := h.payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment deleted successfully", nil)
}
