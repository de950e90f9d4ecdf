package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/media/sniffer"
	"giftfall/api/internal/service"
)

type itemRequest struct {
	SellerID    string  `json:"seller_id" binding:"required"`
	Name        string  `json:"item_name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  *string `json:"category_id"`
	Quantity    int     `json:"quantity"`
	PostedDate  string  `json:"posted_date" binding:"required"`
	Address     string  `json:"address"`
	Status      string  `json:"item_status"`
}

func (req itemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		SellerID:    req.SellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Quantity:    req.Quantity,
		PostedDate:  req.PostedDate,
		Address:     req.Address,
		Status:      req.Status,
	}
}

func (h HandlerSet) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	item, err := h.catalog.Create(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Item created successfully", item)
}

func (h HandlerSet) ListItems(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Items retrieved successfully", items)
}

func (h HandlerSet) GetItem(c *gin.Context) {
	item, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Item retrieved successfully", item)
}

func (h HandlerSet) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	item, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Updated item successfully", item)
}

func (h HandlerSet) DeleteItem(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Item deleted successfully", nil)
}

func (h HandlerSet) SearchItems(c *gin.Context) {
	items, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Items retrieved successfully", items)
}

func (h HandlerSet) ListItemsBySeller(c *gin.Context) {
	items, err := h.catalog.ListBySeller(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Items retrieved successfully", items)
}

func (h HandlerSet) PreviewExchange(c *gin.Context) {
	preview, err := h.catalog.PreviewExchange(c.Request.Context(), c.Param("userId"), c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Exchange preview retrieved successfully", preview)
}

func (h HandlerSet) UploadItemImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		failBind(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(c, err)
		return
	}

	declared := sniffer.MimeTypeFromHTTP(header.Header)
	image, err := h.catalog.UploadImage(c.Request.Context(), c.Param("id"), declared, data)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Image uploaded successfully", image)
}
