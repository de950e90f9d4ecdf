package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/payos"
)

type paymentLinkRequest struct {
	OrderCode   int64             `json:"orderCode" binding:"required"`
	Amount      int64             `json:"amount" binding:"required"`
	Description string            `json:"description" binding:"required"`
	BuyerName   string            `json:"buyerName"`
	BuyerEmail  string            `json:"buyerEmail"`
	BuyerPhone  string            `json:"buyerPhone"`
	Items       []payos.OrderItem `json:"items"`
	CancelURL   string            `json:"cancelUrl" binding:"required"`
	ReturnURL   string            `json:"returnUrl" binding:"required"`
}

func (h HandlerSet) CreatePaymentLink(c *gin.Context) {
	var req paymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	link, err := h.gateway.CreatePaymentLink(c.Request.Context(), payos.OrderDetails{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: req.Description,
		BuyerName:   req.BuyerName,
		BuyerEmail:  req.BuyerEmail,
		BuyerPhone:  req.BuyerPhone,
		Items:       req.Items,
		CancelURL:   req.CancelURL,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment link created successfully", link)
}

func (h HandlerSet) GetPaymentLink(c *gin.Context) {
	link, err := h.gateway.GetPaymentLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment link retrieved successfully", link)
}

func (h HandlerSet) CancelPaymentLink(c *gin.Context) {
	link, err := h.gateway.CancelPaymentLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment link cancelled successfully", link)
}
