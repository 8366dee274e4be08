package catalog

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

// RegisterPublicRoutes mounts the read endpoints; the catalog is browsable
// without an account.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.GET("/seats", h.ListSeats)
	rg.GET("/seats/:id", h.GetSeat)
}

// RegisterAdminRoutes mounts the mutating endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms", h.CreateRoom)
	rg.PATCH("/rooms/:id", h.UpdateRoom)
	rg.DELETE("/rooms/:id", h.DeleteRoom)
	rg.POST("/seats", h.CreateSeat)
	rg.PATCH("/seats/:id", h.UpdateSeat)
	rg.DELETE("/seats/:id", h.DeleteSeat)
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create room")
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrRoomNotFound:
			response.Error(c, http.StatusNotFound, "Room not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to load room")
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrRoomNotFound:
			response.Error(c, http.StatusNotFound, "Room not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update room")
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		switch err {
		case ErrRoomNotFound:
			response.Error(c, http.StatusNotFound, "Room not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to delete room")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateSeat(c *gin.Context) {
	var req CreateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	seat, err := h.service.CreateSeat(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrRoomNotFound:
			response.Error(c, http.StatusNotFound, "Room not found")
		case ErrDuplicateSeat:
			response.Error(c, http.StatusConflict, "Seat number already used in this room")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create seat")
		}
		return
	}
	c.JSON(http.StatusCreated, seat)
}

func (h *Handler) ListSeats(c *gin.Context) {
	var roomID *int64
	if raw := c.Query("roomId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "roomId is invalid")
			return
		}
		roomID = &id
	}

	seats, err := h.service.ListSeats(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list seats")
		return
	}
	c.JSON(http.StatusOK, seats)
}

func (h *Handler) GetSeat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	seat, err := h.service.GetSeat(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrSeatNotFound:
			response.Error(c, http.StatusNotFound, "Seat not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to load seat")
		}
		return
	}
	c.JSON(http.StatusOK, seat)
}

func (h *Handler) UpdateSeat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	seat, err := h.service.UpdateSeat(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrSeatNotFound:
			response.Error(c, http.StatusNotFound, "Seat not found")
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "status is invalid")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update seat")
		}
		return
	}
	c.JSON(http.StatusOK, seat)
}

func (h *Handler) DeleteSeat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSeat(c.Request.Context(), id); err != nil {
		switch err {
		case ErrSeatNotFound:
			response.Error(c, http.StatusNotFound, "Seat not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to delete seat")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return 0, false
	}
	return id, true
}
