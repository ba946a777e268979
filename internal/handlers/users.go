package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// UsersHandler serves the admin user-management endpoints and the seed
// endpoint.
type UsersHandler struct {
	users *services.UserService
	store repository.Store
}

func NewUsersHandler(users *services.UserService, store repository.Store) *UsersHandler {
	return &UsersHandler{users: users, store: store}
}

// Collection dispatches /api/users by method.
func (h *UsersHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	h.list(w, r)
}

// Item dispatches /api/users/{id} and /api/users/{id}/ban.
func (h *UsersHandler) Item(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	action := ""
	if rest, found := strings.CutSuffix(path, "/ban"); found {
		path = rest
		action = "ban"
	} else if rest, found := strings.CutSuffix(path, "/unban"); found {
		path = rest
		action = "unban"
	}
	id, err := uuid.Parse(path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_id", "user ID must be a UUID")
		return
	}

	if action != "" {
		if r.Method != http.MethodPost {
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
			return
		}
		h.setStatus(w, r, id, action)
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
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Router /api/users [get]
func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.UserListResponse{Success: true, Data: users})
}

// get godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.SingleUserResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/users/{id} [get]
func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SingleUserResponse{Success: true, Data: user})
}

// update godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.SingleUserResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/users/{id} [put]
func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req dto.UpdateUserRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.users.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SingleUserResponse{
		Success: true,
		Message: "User updated",
		Data:    user,
	})
}

func (h *UsersHandler) setStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID, action string) {
	status := models.UserStatusBanned
	message := "User banned"
	if action == "unban" {
		status = models.UserStatusActive
		message = "User reinstated"
	}

	user, err := h.users.SetStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SingleUserResponse{
		Success: true,
		Message: message,
		Data:    user,
	})
}

// delete godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/users/{id} [delete]
func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "User deleted"})
}

// Seed godoc
// @Summary Load the demo dataset
// @Description Populates empty collections with demo users, destinations and bookings. Safe to call repeatedly.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Router /api/admin/seed [post]
func (h *UsersHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}
	if err := h.seed(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Demo data loaded"})
}

func (h *UsersHandler) seed(ctx context.Context) error {
	return repository.Seed(ctx, h.store)
}
