package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/ids"
	"giftfall/api/internal/models"
)

const (
	premiumPackagesCacheKey = "premium_packages"
	premiumPackagesCacheTTL = 5 * time.Minute
)

type premiumPackageRequest struct {
	Name         string  `json:"package_name" binding:"required"`
	DurationDays int     `json:"duration_days" binding:"required"`
	Price        float64 `json:"price"`
}

func (req premiumPackageRequest) toModel(id string) models.PremiumPackage {
	return models.PremiumPackage{
		ID:           id,
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Price:        req.Price,
	}
}

func (h HandlerSet) CreatePremiumPackage(c *gin.Context) {
	var req premiumPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	pkg := req.toModel(ids.New())
	if err := h.packages.Create(c.Request.Context(), pkg); err != nil {
		fail(c, err)
		return
	}
	h.invalidatePackageCache(c.Request.Context())

	respond(c, http.StatusOK, "Premium package created successfully", pkg)
}

// ListPremiumPackages serves from the redis cache when possible; the catalog
// is small and rarely changes.
func (h HandlerSet) ListPremiumPackages(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.Get(ctx, premiumPackagesCacheKey).Bytes(); err == nil {
		var pkgs []models.PremiumPackage
		if err := json.Unmarshal(cached, &pkgs); err == nil {
			respond(c, http.StatusOK, "Premium packages retrieved successfully", pkgs)
			return
		}
	}

	pkgs, err := h.packages.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	if encoded, err := json.Marshal(pkgs); err == nil {
		if err := h.cache.Set(ctx, premiumPackagesCacheKey, encoded, premiumPackagesCacheTTL).Err(); err != nil {
			h.log.Warn().Err(err).Msg("premium package cache set failed")
		}
	}

	respond(c, http.StatusOK, "Premium packages retrieved successfully", pkgs)
}

func (h HandlerSet) GetPremiumPackage(c *gin.Context) {
	pkg, err := h.packages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Premium package retrieved successfully", pkg)
}

func (h HandlerSet) UpdatePremiumPackage(c *gin.Context) {
	var req premiumPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	pkg := req.toModel(c.Param("id"))
	if err := h.packages.Update(c.Request.Context(), pkg.ID, pkg); err != nil {
		fail(c, err)
		return
	}
	h.invalidatePackageCache(c.Request.Context())

	respond(c, http.StatusOK, "Updated premium package successfully", pkg)
}

func (h HandlerSet) DeletePremiumPackage(c *gin.Context) {
	if err := h.packages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	h.invalidatePackageCache(c.Request.Context())

	respond(c, http.StatusOK, "Premium package deleted successfully", nil)
}

func (h HandlerSet) invalidatePackageCache(ctx context.Context) {
	if err := h.cache.Del(ctx, premiumPackagesCacheKey).Err(); err != nil {
		h.log.Warn().Err(err).Msg("premium package cache invalidation failed")
	}
}
