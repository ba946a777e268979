package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/services"
)

func newDestinationsHandler() *DestinationsHandler {
	store := repository.NewMemoryStore()
	catalog := services.NewCatalogService(store, testCfg())
	return NewDestinationsHandler(catalog, services.NewPDFService())
}

func createDestination(t *testing.T, handler *DestinationsHandler, req dto.CreateDestinationRequest) *models.Destination {
	t.Helper()
	rec := postJSON(t, handler.Collection, "/api/destinations", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.DestinationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	return resp.Data
}

func TestDestinationsHandler_CreateWithDefaults(t *testing.T) {
	handler := newDestinationsHandler()

	d := createDestination(t, handler, dto.CreateDestinationRequest{
		Name:    "Coorg Coffee Trails",
		Country: "India",
		Price:   11000,
	})
	assert.Equal(t, "₹11,000", d.PriceDisplay)
	assert.Equal(t, models.TypeAdventure, d.Type)
	assert.Len(t, d.Itinerary, 3)
}

func TestDestinationsHandler_ListAndGet(t *testing.T) {
	handler := newDestinationsHandler()
	d := createDestination(t, handler, dto.CreateDestinationRequest{Name: "Goa Beach Paradise", Country: "India", Price: 18500})

	req := httptest.NewRequest(http.MethodGet, "/api/destinations", nil)
	rec := httptest.NewRecorder()
	handler.Collection(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.DestinationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/destinations/"+d.ID.String(), nil)
	rec = httptest.NewRecorder()
	handler.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var single dto.DestinationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &single))
	assert.Equal(t, d.ID, single.Data.ID)
}

func TestDestinationsHandler_Update(t *testing.T) {
	handler := newDestinationsHandler()
	d := createDestination(t, handler, dto.CreateDestinationRequest{Name: "Manali Snow Peaks", Country: "India", Price: 12999})

	payload := []byte(`{"isFeatured":true,"rating":4.6}`)
	req := httptest.NewRequest(http.MethodPut, "/api/destinations/"+d.ID.String(), bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.DestinationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsFeatured)
	assert.Equal(t, 4.6, resp.Data.Rating)
	assert.Equal(t, "Manali Snow Peaks", resp.Data.Name)
}

func TestDestinationsHandler_DeleteTwice(t *testing.T) {
	handler := newDestinationsHandler()
	d := createDestination(t, handler, dto.CreateDestinationRequest{Name: "Kerala Backwaters", Country: "India", Price: 22000})

	req := httptest.NewRequest(http.MethodDelete, "/api/destinations/"+d.ID.String(), nil)
	rec := httptest.NewRecorder()
	handler.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/destinations/"+d.ID.String(), nil)
	rec = httptest.NewRecorder()
	handler.Item(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDestinationsHandler_PDF(t *testing.T) {
	handler := newDestinationsHandler()
	d := createDestination(t, handler, dto.CreateDestinationRequest{Name: "Bali Tropical Escape", Country: "Indonesia", Price: 45000})

	req := httptest.NewRequest(http.MethodGet, "/api/destinations/"+d.ID.String()+"/pdf", nil)
	rec := httptest.NewRecorder()
	handler.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bali-tropical-escape.pdf")
	// A real PDF document starts with the magic header.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestDestinationsHandler_CreateValidation(t *testing.T) {
	handler := newDestinationsHandler()

	rec := postJSON(t, handler.Collection, "/api/destinations", dto.CreateDestinationRequest{Country: "India", Price: 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler.Collection, "/api/destinations", dto.CreateDestinationRequest{Name: "X", Country: "India", Price: -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler.Collection, "/api/destinations", dto.CreateDestinationRequest{Name: "No Country Given", Price: 9999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
