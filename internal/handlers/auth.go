package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/middleware"
	"giftfall/api/internal/models"
	"giftfall/api/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Login Successfully", gin.H{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

type registerRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", user)
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h HandlerSet) RefreshToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"accessToken": accessToken,
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.Token); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Logged out successfully", nil)
}

type updateUserRequest struct {
	Name      *string `json:"name"`
	IsPremium *bool   `json:"is_premium"`
	ImageUser *string `json:"image_user"`
	Password  *string `json:"password"`
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), c.Param("id"), models.UserPatch{
		Name:      req.Name,
		IsPremium: req.IsPremium,
		ImageUser: req.ImageUser,
		Password:  req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "User updated successfully", user)
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h HandlerSet) Me(c *gin.Context) {
	userVal, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, errUnauthenticated)
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	respond(c, http.StatusOK, "User retrieved successfully", user)
}
