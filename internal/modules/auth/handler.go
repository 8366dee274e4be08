package auth

import (
	"fmt"
	"net/http"
	"sort"

	"coworkly/internal/pkg/response"
	"coworkly/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.SignUp)
	rg.POST("/auth/signin", h.SignIn)
	rg.POST("/auth/refresh", h.Refresh)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/me", h.Me)
	rg.GET("/profile", h.Me)
	rg.PUT("/profile", h.UpdateProfile)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(&req); fieldErrs != nil {
		msgs := make([]string, 0, len(fieldErrs))
		for field, tag := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, tag))
		}
		sort.Strings(msgs)
		response.Errors(c, http.StatusBadRequest, msgs...)
		return
	}

	res, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrPasswordMismatch:
			response.Error(c, http.StatusBadRequest, "Passwords do not match")
		case ErrEmailTaken:
			response.Error(c, http.StatusConflict, "Email already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case ErrInvalidRefresh:
			response.Error(c, http.StatusUnauthorized, "Invalid refresh token")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to refresh session")
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to log out")
		return
	}
	response.Message(c, http.StatusOK, "Logged out")
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.Profile(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	c.JSON(http.StatusOK, u)
}
