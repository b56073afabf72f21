package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	"github.com/BruksfildServices01/court-scheduler/internal/config"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/routes"
	"github.com/BruksfildServices01/court-scheduler/internal/testutil"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type server struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newServer(t *testing.T, mode string) *server {
	t.Helper()
	return newServerWithCache(t, mode, nil)
}

func newServerWithCache(t *testing.T, mode string, availability cache.Availability) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:           "test-secret",
		AppEnv:              "test",
		ClubName:            "Clube Teste",
		ClubTimezone:        "UTC",
		OpeningTime:         "06:00",
		ClosingTime:         "22:00",
		SlotMinutes:         60,
		MinBookingMinutes:   60,
		SchedulingMode:      mode,
		ReservationCapacity: 2,
		ReservationMinutes:  60,
	}

	gdb := testutil.NewDB(t)
	r := gin.New()
	require.NoError(t, routes.RegisterRoutes(r, routes.Deps{
		DB:     gdb,
		Config: cfg,
		Cache:  availability,
		Now:    timezone.Fixed(testNow),
	}))

	return &server{t: t, router: r, db: gdb, cfg: cfg}
}

func (s *server) token(u *models.User) string {
	s.t.Helper()
	tok, err := middleware.IssueToken(s.cfg.JWTSecret, u.ID, u.Role, time.Now())
	require.NoError(s.t, err)
	return tok
}

func (s *server) admin() *models.User {
	s.t.Helper()
	u := testutil.CreateUser(s.t, s.db, "Admin", "admin@example.com")
	require.NoError(s.t, s.db.Model(u).Update("role", models.RoleAdmin).Error)
	u.Role = models.RoleAdmin
	return u
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
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
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error_code"].(string)
	return code
}

// ======================================================
// AUTH
// ======================================================

func TestAuth_RegisterLogin(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	body := map[string]any{
		"name":     "Carla",
		"email":    "Carla@Example.com",
		"password": "secret1",
	}

	w := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	out := decode(t, w)
	assert.NotEmpty(t, out["token"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "carla@example.com", user["email"])
	assert.Equal(t, models.RoleClient, user["role"])

	w = s.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_in_use", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "carla@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "carla@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	tok := decode(t, w)["token"].(string)

	w = s.do(http.MethodGet, "/api/me", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Carla", decode(t, w)["name"])
}

func TestAuth_InvalidPayload(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "X", "email": "not-an-email", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	out := decode(t, w)
	assert.Equal(t, "invalid_request", out["error_code"])
	fields := out["fields"].(map[string]any)
	assert.Equal(t, "email", fields["Email"])
	assert.Equal(t, "min", fields["Password"])
}

func TestSecured_RequiresToken(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	w := s.do(http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/bookings", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// BOOKINGS
// ======================================================

func TestBookings_CreateConflictAndLookup(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	bia := testutil.CreateUser(t, s.db, "Bia", "bia@example.com")

	req := map[string]any{
		"court_id":     court.ID,
		"booking_date": "2026-03-11",
		"start_time":   "10:00",
		"end_time":     "11:30",
	}

	w := s.do(http.MethodPost, "/api/bookings", s.token(ana), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, 50.0, created["total_price"])
	assert.Equal(t, "Central", created["court_name"])
	assert.Equal(t, float64(ana.ID), created["user_id"])
	id := uint(created["id"].(float64))

	w = s.do(http.MethodPost, "/api/bookings", s.token(bia), map[string]any{
		"court_id":     court.ID,
		"booking_date": "2026-03-11",
		"start_time":   "11:00",
		"end_time":     "12:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "scheduling_conflict", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/bookings", s.token(bia), map[string]any{
		"court_id":     court.ID,
		"booking_date": "2026-03-11",
		"start_time":   "11:30",
		"end_time":     "12:30",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	path := fmt.Sprintf("/api/bookings/%d", id)

	w = s.do(http.MethodGet, path, s.token(ana), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path, s.token(bia), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/bookings/999", s.token(ana), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking_not_found", errorCode(t, w))

	w = s.do(http.MethodGet, "/api/bookings", s.token(ana), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["total"])
}

func TestBookings_ValidationErrors(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	tok := s.token(ana)

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			"bad clock format",
			map[string]any{"court_id": court.ID, "booking_date": "2026-03-11", "start_time": "9:00", "end_time": "10:00"},
			http.StatusBadRequest, "invalid_request",
		},
		{
			"past date",
			map[string]any{"court_id": court.ID, "booking_date": "2026-03-09", "start_time": "09:00", "end_time": "10:00"},
			http.StatusBadRequest, "invalid_time",
		},
		{
			"outside hours",
			map[string]any{"court_id": court.ID, "booking_date": "2026-03-11", "start_time": "21:30", "end_time": "22:30"},
			http.StatusBadRequest, "invalid_time",
		},
		{
			"too short",
			map[string]any{"court_id": court.ID, "booking_date": "2026-03-11", "start_time": "09:00", "end_time": "09:30"},
			http.StatusBadRequest, "invalid_time",
		},
		{
			"unknown court",
			map[string]any{"court_id": 999, "booking_date": "2026-03-11", "start_time": "09:00", "end_time": "10:00"},
			http.StatusNotFound, "court_not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/bookings", tok, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}

func TestBookings_AdminStatusAndDelete(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	admin := s.admin()

	b := testutil.CreateBooking(t, s.db, court.ID, ana.ID, "2026-03-10", "09:00", "10:00", "PENDING")
	path := fmt.Sprintf("/api/bookings/%d", b.ID)

	w := s.do(http.MethodPatch, path+"/status", s.token(ana), map[string]any{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, path+"/status", s.token(admin), map[string]any{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", errorCode(t, w))

	w = s.do(http.MethodPatch, path+"/status", s.token(admin), map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CONFIRMED", decode(t, w)["status"])

	w = s.do(http.MethodGet, "/api/bookings/today", s.token(admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["total"])

	w = s.do(http.MethodGet, "/api/bookings/count?status=CONFIRMED", s.token(admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["count"])

	w = s.do(http.MethodPost, path+"/cancel", s.token(ana), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CANCELED", decode(t, w)["status"])

	w = s.do(http.MethodDelete, path, s.token(admin), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, path, s.token(admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// COURTS / PUBLIC
// ======================================================

func TestCourts_AdminCRUD(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	admin := s.admin()

	body := map[string]any{"name": "Quadra Azul", "price_per_hour": 90}

	w := s.do(http.MethodPost, "/api/courts", s.token(ana), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/courts", s.token(admin), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(decode(t, w)["id"].(float64))

	testutil.CreateCourt(t, s.db, "Quadra Barata", 40)

	w = s.do(http.MethodGet, "/api/courts/cheapest", s.token(ana), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Quadra Barata", decode(t, w)["name"])

	w = s.do(http.MethodGet, "/api/courts?sort=price&min_price=50", s.token(ana), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["total"])

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/courts/%d/toggle", id), s.token(admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["active"])

	w = s.do(http.MethodGet, "/api/courts/count", s.token(ana), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["count"])

	w = s.do(http.MethodPut, fmt.Sprintf("/api/courts/%d", id), s.token(admin), map[string]any{"price_per_hour": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_price", errorCode(t, w))

	w = s.do(http.MethodGet, "/api/courts/999", s.token(ana), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublic_ClubAndAvailability(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	testutil.CreateBooking(t, s.db, court.ID, ana.ID, "2026-03-11", "10:30", "11:30", "CONFIRMED")

	w := s.do(http.MethodGet, "/api/public/club", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	club := decode(t, w)
	assert.Equal(t, "Clube Teste", club["name"])
	assert.Equal(t, "06:00", club["opening_time"])
	assert.Equal(t, "2026-03-10", club["today"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/public/courts/%d/availability?date=2026-03-11", court.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	slots := decode(t, w)["slots"].([]any)
	require.Len(t, slots, 16)

	busy := map[string]bool{}
	for _, raw := range slots {
		slot := raw.(map[string]any)
		if !slot["available"].(bool) {
			busy[slot["start"].(string)] = true
		}
	}
	assert.Equal(t, map[string]bool{"10:00": true, "11:00": true}, busy)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/public/courts/%d/availability", court.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// SCHEDULING (SHARED MODE)
// ======================================================

func TestSchedule_SharedCapacity(t *testing.T) {
	s := newServer(t, config.ModeShared)

	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	bia := testutil.CreateUser(t, s.db, "Bia", "bia@example.com")
	caio := testutil.CreateUser(t, s.db, "Caio", "caio@example.com")

	req := map[string]any{
		"court_id":   court.ID,
		"date":       "2026-03-11",
		"start_time": "18:00",
	}

	w := s.do(http.MethodPost, "/api/schedule/book", s.token(ana), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode(t, w)
	assert.Equal(t, "shared", first["mode"])
	assert.Equal(t, 1.0, first["participants"])
	assert.Equal(t, "19:00", first["end_time"])

	w = s.do(http.MethodPost, "/api/schedule/book", s.token(ana), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already_reserved", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/schedule/book", s.token(bia), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, first["id"], decode(t, w)["id"])

	w = s.do(http.MethodPost, "/api/schedule/check", s.token(caio), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["available"])

	w = s.do(http.MethodPost, "/api/schedule/book", s.token(caio), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "capacity_exceeded", errorCode(t, w))

	w = s.do(http.MethodGet,
		fmt.Sprintf("/api/courts/%d/occupancy?date=2026-03-11&time=18:00", court.ID), s.token(caio), nil)
	require.Equal(t, http.StatusOK, w.Code)
	occ := decode(t, w)
	assert.Equal(t, 2.0, occ["players"])
	assert.Equal(t, true, occ["full"])

	id := uint(first["id"].(float64))
	w = s.do(http.MethodGet, fmt.Sprintf("/api/reservations/%d", id), s.token(caio), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Bia sai, Ana continua e a vaga fica para Caio
	w = s.do(http.MethodPost, fmt.Sprintf("/api/reservations/%d/cancel", id), s.token(bia), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	left := decode(t, w)
	assert.Equal(t, "CONFIRMADA", left["status"])
	require.Len(t, left["players"], 1)
	assert.Equal(t, float64(ana.ID), left["players"].([]any)[0].(map[string]any)["id"])

	w = s.do(http.MethodPost, "/api/schedule/book", s.token(caio), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, first["id"], decode(t, w)["id"])

	w = s.do(http.MethodPost, fmt.Sprintf("/api/reservations/%d/cancel", id), s.token(s.admin()), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CANCELADA", decode(t, w)["status"])

	w = s.do(http.MethodPost, "/api/schedule/book", s.token(bia), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEqual(t, first["id"], decode(t, w)["id"])
}

func TestUsers_DeleteFreesCachedSlots(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := newServerWithCache(t, config.ModeExclusive, cache.NewRedisAvailabilityFromClient(client, 5*time.Minute))
	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
	admin := s.admin()

	w := s.do(http.MethodPost, "/api/bookings", s.token(ana), map[string]any{
		"court_id": court.ID, "booking_date": "2026-03-11", "start_time": "10:00", "end_time": "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	slotFree := func() bool {
		w := s.do(http.MethodGet,
			fmt.Sprintf("/api/public/courts/%d/availability?date=2026-03-11", court.ID), "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		for _, raw := range decode(t, w)["slots"].([]any) {
			slot := raw.(map[string]any)
			if slot["start"] == "10:00" {
				return slot["available"].(bool)
			}
		}
		t.Fatal("10:00 slot missing")
		return false
	}

	// a primeira leitura popula o cache
	require.False(t, slotFree())

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", ana.ID), s.token(admin), nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	assert.True(t, slotFree())

	var left int64
	require.NoError(t, s.db.Model(&models.Booking{}).Where("user_id = ?", ana.ID).Count(&left).Error)
	assert.Zero(t, left)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", ana.ID), s.token(admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user_not_found", errorCode(t, w))
}

// Um horário nunca pode ser ocupado pelos dois modelos ao mesmo tempo.
func TestSchedulingMode_OnlyActiveModelTakesSlots(t *testing.T) {
	booking := map[string]any{
		"court_id": 0, "booking_date": "2026-03-11", "start_time": "10:00", "end_time": "11:00",
	}
	reservation := map[string]any{
		"court_id": 0, "date": "2026-03-11", "start_time": "10:00",
	}

	t.Run("exclusive", func(t *testing.T) {
		s := newServer(t, config.ModeExclusive)
		court := testutil.CreateCourt(t, s.db, "Central", 50)
		ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
		booking["court_id"], reservation["court_id"] = court.ID, court.ID

		w := s.do(http.MethodPost, "/api/bookings", s.token(ana), booking)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = s.do(http.MethodPost, "/api/reservations", s.token(ana), reservation)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "scheduling_mode_disabled", errorCode(t, w))
	})

	t.Run("shared", func(t *testing.T) {
		s := newServer(t, config.ModeShared)
		court := testutil.CreateCourt(t, s.db, "Central", 50)
		ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")
		booking["court_id"], reservation["court_id"] = court.ID, court.ID

		w := s.do(http.MethodPost, "/api/reservations", s.token(ana), reservation)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = s.do(http.MethodPost, "/api/bookings", s.token(ana), booking)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "scheduling_mode_disabled", errorCode(t, w))

		admin := s.admin()
		w = s.do(http.MethodPatch, "/api/bookings/1/status", s.token(admin), map[string]any{"status": "CONFIRMED"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "scheduling_mode_disabled", errorCode(t, w))
	})
}

func TestSchedule_ExclusiveRequiresEnd(t *testing.T) {
	s := newServer(t, config.ModeExclusive)

	court := testutil.CreateCourt(t, s.db, "Central", 50)
	ana := testutil.CreateUser(t, s.db, "Ana", "ana@example.com")

	w := s.do(http.MethodPost, "/api/schedule/book", s.token(ana), map[string]any{
		"court_id": court.ID, "date": "2026-03-11", "start_time": "18:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/schedule/book", s.token(ana), map[string]any{
		"court_id": court.ID, "date": "2026-03-11", "start_time": "18:00", "end_time": "20:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "exclusive", out["mode"])
	assert.Equal(t, 100.0, out["total_price"])
}
