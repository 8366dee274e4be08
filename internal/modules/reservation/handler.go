package reservation

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
	rg.GET("/reservations", h.List)
	rg.POST("/reservations", h.Create)
	rg.PATCH("/reservations/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/reservations/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrInvalidSeat:
			response.Error(c, http.StatusBadRequest, "seatId is invalid")
		case ErrInvalidInterval:
			response.Error(c, http.StatusBadRequest, "Invalid time range")
		case ErrInvalidType:
			response.Error(c, http.StatusBadRequest, "type is invalid")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "Seat is already reserved for this time range")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create reservation")
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) List(c *gin.Context) {
	var filter repository.ReservationFilter
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "userId is invalid")
			return
		}
		filter.UserID = &id
	}
	if raw := c.Query("seatId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "seatId is invalid")
			return
		}
		filter.SeatID = &id
	}

	rows, err := h.service.List(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		filter,
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return
	}

	res, err := h.service.Cancel(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		id,
	)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "Reservation not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "You cannot cancel this reservation")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to cancel reservation")
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "Reservation not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to delete reservation")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
