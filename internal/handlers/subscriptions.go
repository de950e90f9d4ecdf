package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/ids"
	"giftfall/api/internal/models"
	"giftfall/api/internal/service"
)

type userPremiumPackageRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	PackageID    string `json:"package_id" binding:"required"`
	PurchaseDate string `json:"purchase_date" binding:"required"`
	ExpiryDate   string `json:"expiry_date" binding:"required"`
}

func (req userPremiumPackageRequest) toModel(id string) (models.UserPremiumPackage, error) {
	purchased, err := time.Parse(time.RFC3339, req.PurchaseDate)
	if err != nil {
		return models.UserPremiumPackage{}, service.ErrInvalidDate
	}
	expires, err := time.Parse(time.RFC3339, req.ExpiryDate)
	if err != nil {
		return models.UserPremiumPackage{}, service.ErrInvalidDate
	}

	return models.UserPremiumPackage{
		ID:           id,
		UserID:       req.UserID,
		PackageID:    req.PackageID,
		PurchaseDate: purchased,
		ExpiryDate:   expires,
	}, nil
}

func (h HandlerSet) CreateSubscription(c *gin.Context) {
	var req userPremiumPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	sub, err := req.toModel(ids.New())
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.subscriptions.Create(c.Request.Context(), sub); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Premium subscription created successfully", sub)
}

func (h HandlerSet) ListSubscriptions(c *gin.Context) {
	subs, err := h.subscriptions.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Premium subscriptions retrieved successfully", subs)
}

func (h HandlerSet) GetSubscription(c *gin.Context) {
	sub, err := h.subscriptions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Premium subscription retrieved successfully", sub)
}

func (h HandlerSet) UpdateSubscription(c *gin.Context) {
	var req userPremiumPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	sub, err := req.toModel(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.subscriptions.Update(c.Request.Context(), sub.ID, sub); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Updated premium subscription successfully", sub)
}

func (h HandlerSet) DeleteSubscription(c *gin.Context) {
	if err := h.subscriptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Premium subscription deleted successfully", nil)
}
