package admin

import (
	"net/http"
	"strconv"

	"coworkly/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin surface; the group carries the ADMIN role
// gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/:id", h.GetUser)
	rg.PATCH("/users/:id/role", h.UpdateRole)
	rg.DELETE("/users/:id", h.DeleteUser)
	rg.GET("/users/reservations", h.ListReservations)
	rg.PATCH("/users/reservations/:id/cancel", h.CancelReservation)
	rg.GET("/stats/dashboard", h.Dashboard)
	rg.GET("/stats/weekly", h.WeeklyStats)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	details, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to load user")
		}
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		switch err {
		case ErrInvalidRole:
			response.Error(c, http.StatusBadRequest, "role is invalid")
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update role")
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		switch err {
		case ErrSelfDelete:
			response.Error(c, http.StatusBadRequest, "You cannot delete your own account")
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListReservations(c *gin.Context) {
	rows, err := h.service.ListReservations(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.CancelReservation(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrReservationNotFound:
			response.Error(c, http.StatusNotFound, "Reservation not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to cancel reservation")
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) WeeklyStats(c *gin.Context) {
	weekly, err := h.service.WeeklyStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute weekly stats")
		return
	}
	c.JSON(http.StatusOK, weekly)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return 0, false
	}
	return id, true
}
