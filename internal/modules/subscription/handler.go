package subscription

import (
	"net/http"
	"strconv"

	"coworkly/internal/domain"
	"coworkly/internal/pkg/response"
	"coworkly/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscriptions", h.Subscribe)
	rg.GET("/subscriptions/my", h.ListMine)
	rg.GET("/subscriptions/usage", h.GetUsage)
	rg.GET("/subscriptions/:id", h.GetByID)
	rg.PATCH("/subscriptions/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions", h.ListAll)
	rg.PATCH("/subscriptions/:id/approve", h.Approve)
	rg.PATCH("/subscriptions/:id/suspend", h.Suspend)
	rg.DELETE("/subscriptions/:id", h.Delete)
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrInvalidPlan:
			response.Error(c, http.StatusBadRequest, "plan is invalid")
		case ErrAlreadyRequested:
			response.Error(c, http.StatusConflict, "An active or pending subscription already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create subscription request")
		}
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) GetUsage(c *gin.Context) {
	usage, err := h.service.GetUsage(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute usage")
		return
	}
	c.JSON(http.StatusOK, usage)
}

func (h *Handler) ListMine(c *gin.Context) {
	subs, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handler) ListAll(c *gin.Context) {
	var filter repository.SubscriptionFilter
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "userId is invalid")
			return
		}
		filter.UserID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.SubscriptionStatus(raw)
		switch status {
		case domain.SubscriptionPending, domain.SubscriptionActive,
			domain.SubscriptionSuspended, domain.SubscriptionCancelled:
			filter.Status = &status
		default:
			response.Error(c, http.StatusBadRequest, "status is invalid")
			return
		}
	}

	subs, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.service.GetByID(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		id,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.service.Approve(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Suspend(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.service.Suspend(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.service.Cancel(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		id,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "Subscription not found")
	case ErrNotPending:
		response.Error(c, http.StatusBadRequest, "Only pending subscriptions can be approved")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "You cannot access this subscription")
	default:
		response.Error(c, http.StatusInternalServerError, "Subscription operation failed")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return 0, false
	}
	return id, true
}
