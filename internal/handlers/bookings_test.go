package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripai-backend/internal/config"
	"tripai-backend/internal/dto"
	"tripai-backend/internal/middleware"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/services"
)

func testCfg() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
			ResetTokenTTL:  10 * time.Minute,
		},
		Admin: config.AdminConfig{Email: "admin@tripai.com", Password: "admin123", Name: "Super Admin"},
		Wallet: config.WalletConfig{
			SignupBonus:    500,
			RewardRate:     0.05,
			ResetCodeTTL:   3 * time.Minute,
			CurrencySymbol: "₹",
		},
	}
}

func newBookingsEnv(t *testing.T) (repository.Store, *BookingsHandler, *models.User) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := services.NewBookingService(store, nil, testCfg())
	handler := NewBookingsHandler(svc)

	now := time.Now()
	user := &models.User{
		ID:            uuid.New(),
		Name:          "Demo User",
		Email:         "user@demo.com",
		Role:          models.RoleUser,
		WalletBalance: 2500,
		JoinedAt:      now.Format("2006-01-02"),
		Status:        models.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return store, handler, user
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestBookingsHandler_Create(t *testing.T) {
	_, handler, user := newBookingsEnv(t)

	rec := postJSON(t, handler.Collection, "/api/bookings", dto.CreateBookingRequest{
		UserID:          user.ID.String(),
		CustomerName:    "Demo User",
		Email:           "user@demo.com",
		DestinationName: "Goa Beach Paradise",
		Date:            "2026-12-10",
		TotalPrice:      10000,
		PointsUsed:      500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, 2500, resp.UpdatedBalance)
	assert.Equal(t, 500, resp.Booking.PointsEarned)
	assert.Equal(t, models.BookingConfirmed, resp.Booking.Status)
}

func TestBookingsHandler_CreateInsufficientBalance(t *testing.T) {
	_, handler, user := newBookingsEnv(t)

	rec := postJSON(t, handler.Collection, "/api/bookings", dto.CreateBookingRequest{
		UserID:          user.ID.String(),
		CustomerName:    "Demo User",
		Email:           "user@demo.com",
		DestinationName: "Goa Beach Paradise",
		Date:            "2026-12-10",
		TotalPrice:      10000,
		PointsUsed:      99999,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingsHandler_CreateMissingFields(t *testing.T) {
	_, handler, _ := newBookingsEnv(t)

	rec := postJSON(t, handler.Collection, "/api/bookings", dto.CreateBookingRequest{
		CustomerName: "No Destination",
		Email:        "x@y.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"])
}

func TestBookingsHandler_ListFilterByUser(t *testing.T) {
	_, handler, user := newBookingsEnv(t)

	for _, userID := range []string{user.ID.String(), ""} {
		rec := postJSON(t, handler.Collection, "/api/bookings", dto.CreateBookingRequest{
			UserID:          userID,
			CustomerName:    "Someone",
			Email:           "someone@example.com",
			DestinationName: "Manali Snow Peaks",
			Date:            "2026-11-01",
			TotalPrice:      5000,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	cfg := testCfg()
	getAs := func(role string, id uuid.UUID, target string) *httptest.ResponseRecorder {
		token, err := middleware.GenerateToken(id, "who@example.com", role, cfg.JWT)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		middleware.AuthMiddleware(cfg.JWT, handler.Collection)(rec, req)
		return rec
	}

	// Admins can filter by any userId.
	rec := getAs(models.RoleAdmin, uuid.New(), "/api/bookings?userId="+user.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	// Non-admins only ever see their own, whatever they ask for.
	rec = getAs(models.RoleUser, user.ID, "/api/bookings?userId="+uuid.New().String())
	require.Equal(t, http.StatusOK, rec.Code)
	resp = dto.BookingListResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, user.ID, *resp.Data[0].UserID)
}

func TestBookingsHandler_ItemLifecycle(t *testing.T) {
	_, handler, _ := newBookingsEnv(t)

	rec := postJSON(t, handler.Collection, "/api/bookings", dto.CreateBookingRequest{
		CustomerName:    "Guest",
		Email:           "guest@example.com",
		DestinationName: "Royal Jaipur",
		Date:            "2026-10-01",
		TotalPrice:      9500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Booking.ID.String()

	// Update status.
	payload := []byte(`{"status":"Cancelled"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+id, bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	handler.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.BookingCancelled, updated.Data.Status)

	// Delete, then delete again: the second must 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/bookings/"+id, nil)
	rec = httptest.NewRecorder()
	handler.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/bookings/"+id, nil)
	rec = httptest.NewRecorder()
	handler.Item(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingsHandler_GetScopedToOwner(t *testing.T) {
	_, handler, owner := newBookingsEnv(t)

	rec := postJSON(t, handler.Collection, "/api/bookings", dto.CreateBookingRequest{
		UserID:          owner.ID.String(),
		CustomerName:    "Owner",
		Email:           "owner@example.com",
		Phone:           "1112223333",
		DestinationName: "Goa Beach Paradise",
		Date:            "2026-12-10",
		TotalPrice:      18500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	target := "/api/bookings/" + created.Booking.ID.String()

	cfg := testCfg()
	getAs := func(role string, id uuid.UUID) *httptest.ResponseRecorder {
		token, err := middleware.GenerateToken(id, "who@example.com", role, cfg.JWT)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		middleware.AuthMiddleware(cfg.JWT, handler.Item)(rec, req)
		return rec
	}

	// Another signed-in user reads it as absent, with no details leaked.
	rec = getAs(models.RoleUser, uuid.New())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "owner@example.com")

	// The owner and admins can read it.
	rec = getAs(models.RoleUser, owner.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = getAs(models.RoleAdmin, uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBookingsHandler_InvalidID(t *testing.T) {
	_, handler, _ := newBookingsEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.Item(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingsHandler_MethodNotAllowed(t *testing.T) {
	_, handler, _ := newBookingsEnv(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	handler.Collection(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
