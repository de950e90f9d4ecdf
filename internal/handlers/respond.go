package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/payos"
	"giftfall/api/internal/repository"
	"giftfall/api/internal/service"
)

var errUnauthenticated = errors.New("unauthorized")

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success int    `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: 1,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, Envelope{
		Success: 0,
		Message: "Error: " + err.Error(),
	})
}

var notFoundErrors = []error{
	repository.ErrUserNotFound,
	repository.ErrItemNotFound,
	repository.ErrTransactionNotFound,
	repository.ErrMessageNotFound,
	repository.ErrPaymentNotFound,
	repository.ErrPackageNotFound,
	repository.ErrSubscriptionNotFound,
}

var badRequestErrors = []error{
	service.ErrInvalidCredentials,
	service.ErrPasswordMismatch,
	service.ErrInvalidPayload,
	service.ErrInvalidDate,
	service.ErrInvalidImage,
	service.ErrEmptyPatch,
	service.ErrAlreadyCompleted,
	repository.ErrEmailTaken,
	repository.ErrInvalidReference,
	payos.ErrGatewaySuspended,
}

/// fail maps the error taxonomy onto HTTP: validation and credential failures
// are 400, a dead refresh token is 403, missing rows are 404, anything else
// is 500.
func fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidRefreshToken) {
		respondError(c, http.StatusForbidden, err)
		return
	}
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			respondError(c, http.StatusNotFound, err)
			return
		}
	}
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	respondError(c, http.StatusInternalServerError, err)
}

func failBind(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, err)
}
