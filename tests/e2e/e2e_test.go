package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coworkly/internal/database"
	"coworkly/internal/middleware"
	"coworkly/internal/modules/admin"
	"coworkly/internal/modules/auth"
	"coworkly/internal/modules/catalog"
	"coworkly/internal/modules/notification"
	"coworkly/internal/modules/reservation"
	"coworkly/internal/modules/subscription"
	jwtsvc "coworkly/internal/pkg/jwt"
	"coworkly/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestSuite(t *testing.T) *testSuite {
	gin.SetMode(gin.TestMode)

	// Named shared-cache memory DB: every pooled connection sees the same
	// schema, and each test gets its own database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	hub := notification.NewHub()
	t.Cleanup(hub.Close)

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, seatRepo, reservationRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(reservationRepo, seatRepo, roomRepo, notificationService)
	reservationHandler := reservation.NewHandler(reservationService)

	subscriptionService := subscription.NewService(subscriptionRepo, reservationRepo, notificationService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	adminService := admin.NewService(userRepo, reservationRepo, subscriptionRepo, roomRepo, statsRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			subscriptionHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}

		elevated := api.Group("/")
		elevated.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(elevated)
			reservationHandler.RegisterAdminRoutes(elevated)
			subscriptionHandler.RegisterAdminRoutes(elevated)
		}
	}

	return &testSuite{router: r, db: db}
}

func (s *testSuite) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *testSuite) signUp(t *testing.T, name, email string) string {
	w := s.request(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":            name,
		"email":           email,
		"password":        "secret123",
		"retypedPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["accessToken"].(string)
}

// promote flips a user to ADMIN directly in the DB, then signs in again so
// the token carries the new role.
func (s *testSuite) adminToken(t *testing.T) string {
	email := fmt.Sprintf("admin-%d@coworkly.fr", time.Now().UnixNano())
	s.signUp(t, "Admin", email)
	require.NoError(t, s.db.Exec("UPDATE users SET role = 'ADMIN' WHERE email = ?", email).Error)

	w := s.request(t, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["accessToken"].(string)
}

func (s *testSuite) createRoomWithSeat(t *testing.T, admin string) (roomID, seatID float64) {
	w := s.request(t, http.MethodPost, "/api/rooms", admin, map[string]any{
		"name":     "Open Space",
		"capacity": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID = decode(t, w)["id"].(float64)

	w = s.request(t, http.MethodPost, "/api/seats", admin, map[string]any{
		"roomId": roomID,
		"number": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	seatID = decode(t, w)["id"].(float64)
	return roomID, seatID
}

func TestReservationLifecycle(t *testing.T) {
	s := setupTestSuite(t)
	adminTok := s.adminToken(t)
	userTok := s.signUp(t, "Claire", "claire@example.fr")

	_, seatID := s.createRoomWithSeat(t, adminTok)

	// book 09:00-11:00
	w := s.request(t, http.MethodPost, "/api/reservations", userTok, map[string]any{
		"seatId":    seatID,
		"startTime": "2030-04-01T09:00:00Z",
		"endTime":   "2030-04-01T11:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservationID := decode(t, w)["id"].(float64)

	// the seat's stored status flips to RESERVED
	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/seats/%.0f", seatID), userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RESERVED", decode(t, w)["status"])

	// overlapping attempt loses with 409
	w = s.request(t, http.MethodPost, "/api/reservations", userTok, map[string]any{
		"seatId":    seatID,
		"startTime": "2030-04-01T10:00:00Z",
		"endTime":   "2030-04-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "already reserved")

	// back-to-back is fine (half-open intervals)
	w = s.request(t, http.MethodPost, "/api/reservations", userTok, map[string]any{
		"seatId":    seatID,
		"startTime": "2030-04-01T11:00:00Z",
		"endTime":   "2030-04-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	secondID := decode(t, w)["id"].(float64)

	// a confirmation notification landed in the inbox, titled and unread
	w = s.request(t, http.MethodGet, "/api/notifications", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIRMATION_RESERVATION")
	assert.Contains(t, w.Body.String(), "Réservation confirmée")
	assert.Contains(t, w.Body.String(), `"isRead":false`)

	// cancel both; seat goes back to AVAILABLE
	w = s.request(t, http.MethodPatch, fmt.Sprintf("/api/reservations/%.0f/cancel", reservationID), userTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.request(t, http.MethodPatch, fmt.Sprintf("/api/reservations/%.0f/cancel", secondID), userTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/seats/%.0f", seatID), userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AVAILABLE", decode(t, w)["status"])

	// cancelled slot can be rebooked
	w = s.request(t, http.MethodPost, "/api/reservations", userTok, map[string]any{
		"seatId":    seatID,
		"startTime": "2030-04-01T09:00:00Z",
		"endTime":   "2030-04-01T11:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCatalogBrowsableWithoutAccount(t *testing.T) {
	s := setupTestSuite(t)
	adminTok := s.adminToken(t)
	roomID, seatID := s.createRoomWithSeat(t, adminTok)

	// reads need no token
	for _, path := range []string{
		"/api/rooms",
		fmt.Sprintf("/api/rooms/%.0f", roomID),
		"/api/seats",
		fmt.Sprintf("/api/seats/%.0f", seatID),
	} {
		w := s.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// mutations stay gated
	w := s.request(t, http.MethodPost, "/api/rooms", "", map[string]any{
		"name":     "Annexe",
		"capacity": 4,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservationListScoping(t *testing.T) {
	s := setupTestSuite(t)
	adminTok := s.adminToken(t)
	aliceTok := s.signUp(t, "Alice", "alice@example.fr")
	bobTok := s.signUp(t, "Bob", "bob@example.fr")

	_, seatID := s.createRoomWithSeat(t, adminTok)

	w := s.request(t, http.MethodPost, "/api/reservations", aliceTok, map[string]any{
		"seatId":    seatID,
		"startTime": "2030-04-01T09:00:00Z",
		"endTime":   "2030-04-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Bob sees nothing even when asking for everyone's rows
	w = s.request(t, http.MethodGet, "/api/reservations?userId=1", bobTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Empty(t, rows)

	// Alice sees her own
	w = s.request(t, http.MethodGet, "/api/reservations", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "Open Space", rows[0]["roomName"])
}

func TestSubscriptionFlow(t *testing.T) {
	s := setupTestSuite(t)
	adminTok := s.adminToken(t)
	userTok := s.signUp(t, "Karim", "karim@example.fr")

	// no subscription yet: sentinel usage
	w := s.request(t, http.MethodGet, "/api/subscriptions/usage", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	usage := decode(t, w)
	assert.Equal(t, "NONE", usage["plan"])
	assert.Equal(t, "INACTIVE", usage["status"])
	assert.Equal(t, float64(0), usage["totalHours"])

	// request MONTHLY
	w = s.request(t, http.MethodPost, "/api/subscriptions", userTok, map[string]any{"plan": "MONTHLY"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sub := decode(t, w)
	assert.Equal(t, "PENDING", sub["status"])
	subID := sub["id"].(float64)

	// duplicate request rejected while one is pending
	w = s.request(t, http.MethodPost, "/api/subscriptions", userTok, map[string]any{"plan": "QUARTERLY"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// unknown plan rejected
	w = s.request(t, http.MethodPost, "/api/subscriptions", userTok, map[string]any{"plan": "YEARLY"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// user cannot approve
	w = s.request(t, http.MethodPatch, fmt.Sprintf("/api/subscriptions/%.0f/approve", subID), userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin approves; window opens
	w = s.request(t, http.MethodPatch, fmt.Sprintf("/api/subscriptions/%.0f/approve", subID), adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decode(t, w)
	assert.Equal(t, "ACTIVE", approved["status"])
	assert.NotNil(t, approved["startDate"])
	assert.NotNil(t, approved["endDate"])

	// book 90 minutes inside the window and check the quota math
	_, seatID := s.createRoomWithSeat(t, adminTok)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Minute)
	w = s.request(t, http.MethodPost, "/api/reservations", userTok, map[string]any{
		"seatId":    seatID,
		"startTime": start.Format(time.RFC3339),
		"endTime":   start.Add(90 * time.Minute).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, http.MethodGet, "/api/subscriptions/usage", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	usage = decode(t, w)
	assert.Equal(t, "MONTHLY", usage["plan"])
	assert.Equal(t, float64(2), usage["usedHours"]) // 90min rounds up
	assert.Equal(t, float64(40), usage["totalHours"])
	assert.Equal(t, float64(38), usage["remainingHours"])

	// subscription update notifications arrived
	w = s.request(t, http.MethodGet, "/api/notifications", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUBSCRIPTION_UPDATE")
}

func TestAdminSurface(t *testing.T) {
	s := setupTestSuite(t)
	adminTok := s.adminToken(t)
	userTok := s.signUp(t, "Lea", "lea@example.fr")

	_, seatID := s.createRoomWithSeat(t, adminTok)
	w := s.request(t, http.MethodPost, "/api/reservations", userTok, map[string]any{
		"seatId":    seatID,
		"startTime": "2030-04-01T09:00:00Z",
		"endTime":   "2030-04-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservationID := decode(t, w)["id"].(float64)

	// plain users are kept out
	w = s.request(t, http.MethodGet, "/api/admin/users", userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// user list with counts
	w = s.request(t, http.MethodGet, "/api/admin/users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lea@example.fr")
	assert.Contains(t, w.Body.String(), "reservationCount")

	// dashboard aggregates
	w = s.request(t, http.MethodGet, "/api/admin/stats/dashboard", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode(t, w)
	counts := dash["counts"].(map[string]any)
	assert.Equal(t, float64(2), counts["users"])
	assert.Equal(t, float64(1), counts["reservations"])
	assert.Len(t, dash["weeklyActivity"], 7)

	// hard delete answers 204 with an empty body
	w = s.request(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%.0f", reservationID), adminTok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
