package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/ids"
	"giftfall/api/internal/models"
)

type messageRequest struct {
	SenderID   string     `json:"user_id" binding:"required"`
	ReceiverID string     `json:"receiver_id" binding:"required"`
	Body       string     `json:"message" binding:"required"`
	SentAt     *time.Time `json:"timestamp"`
}

func (req messageRequest) toModel(id string) models.Message {
	sentAt := time.Now().UTC()
	if req.SentAt != nil {
		sentAt = *req.SentAt
	}
	return models.Message{
		ID:         id,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Body:       req.Body,
		SentAt:     sentAt,
	}
}

func (h HandlerSet) CreateMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	msg := req.toModel(ids.New())
	if err := h.messages.Create(c.Request.Context(), msg); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Message created successfully", msg)
}

func (h HandlerSet) ListMessages(c *gin.Context) {
	msgs, err := h.messages.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Messages retrieved successfully", msgs)
}

func (h HandlerSet) GetMessage(c *gin.Context) {
	msg, err := h.messages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Message retrieved successfully", msg)
}

func (h HandlerSet) UpdateMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	msg := req.toModel(c.Param("id"))
	if err := h.messages.Update(c.Request.Context(), msg.ID, msg); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Updated message successfully", msg)
}

func (h HandlerSet) DeleteMessage(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Message deleted successfully", nil)
}
