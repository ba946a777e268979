package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/middleware"
	"tripai-backend/internal/models"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// BookingsHandler serves booking creation and management.
type BookingsHandler struct {
	bookings *services.BookingService
}

func NewBookingsHandler(bookings *services.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

// Collection dispatches /api/bookings by method.
func (h *BookingsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET or POST")
	}
}

// Item dispatches /api/bookings/{id} by method.
func (h *BookingsHandler) Item(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_id", "booking ID must be a UUID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET, PUT or DELETE")
	}
}

// list godoc
// @Summary List bookings
// @Description Returns bookings newest-first. Admins may filter with ?userId=; everyone else only sees their own.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Filter by user ID (admin only)"
// @Success 200 {object} dto.BookingListResponse
// @Router /api/bookings [get]
func (h *BookingsHandler) list(w http.ResponseWriter, r *http.Request) {
	var userID *uuid.UUID
	if role, _ := middleware.GetRoleFromContext(r.Context()); role == models.RoleAdmin {
		if raw := r.URL.Query().Get("userId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_id", "userId must be a UUID")
				return
			}
			userID = &id
		}
	} else {
		own, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}
		userID = &own
	}

	bookings, err := h.bookings.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.BookingListResponse{Success: true, Data: bookings})
}

// get godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/bookings/{id} [get]
func (h *BookingsHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	booking, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Non-admins only see their own bookings. A foreign ID reads as absent
	// rather than forbidden so it does not confirm the booking exists.
	if role, _ := middleware.GetRoleFromContext(r.Context()); role != models.RoleAdmin {
		own, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || booking.UserID == nil || *booking.UserID != own {
			utils.WriteErrorResponse(w, http.StatusNotFound, "not_found", "booking not found")
			return
		}
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.BookingResponse{Success: true, Data: booking})
}

// create godoc
// @Summary Create a booking
// @Description Books a trip. Confirmed bookings by a known user debit pointsUsed and credit 5% of the price as reward points in one atomic wallet movement.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/bookings [post]
func (h *BookingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	booking, updatedBalance, err := h.bookings.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateBookingResponse{
		Success:        true,
		Message:        "Booking created successfully",
		Booking:        booking,
		UpdatedBalance: updatedBalance,
	})
}

// update godoc
// @Summary Update a booking
// @Description Changes status, date or guests. Cancelling a confirmed booking does not refund points.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/bookings/{id} [put]
func (h *BookingsHandler) update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req dto.UpdateBookingRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	booking, err := h.bookings.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.BookingResponse{
		Success: true,
		Message: "Booking updated",
		Data:    booking,
	})
}

// delete godoc
// @Summary Delete a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/bookings/{id} [delete]
func (h *BookingsHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.bookings.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Booking deleted"})
}
