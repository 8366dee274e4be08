package notification

import (
	"net/http"
	"strconv"

	"coworkly/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are vetted by the CORS middleware already.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/stream", h.Stream)
	rg.PATCH("/notifications/read-all", h.MarkAllRead)
	rg.PATCH("/notifications/:id/read", h.MarkRead)
	rg.DELETE("/notifications", h.DeleteAll)
	rg.DELETE("/notifications/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	unreadOnly := c.Query("unreadOnly") == "true"

	rows, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), unreadOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Notification marked as read")
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "id is invalid")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Notification deleted")
}

func (h *Handler) DeleteAll(c *gin.Context) {
	count, err := h.service.DeleteAll(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// Stream upgrades to a websocket and keeps it registered until the client
// disconnects. The server only pushes; inbound messages are drained and
// dropped.
func (h *Handler) Stream(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "Notification not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "You cannot access this notification")
	default:
		response.Error(c, http.StatusInternalServerError, "Notification operation failed")
	}
}
