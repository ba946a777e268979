package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"tripai-backend/internal/repository"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// writeServiceError maps service and repository errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, services.ErrResetCodeInvalid):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_reset_code", err.Error())
	case errors.Is(err, services.ErrResetCooldown):
		utils.WriteErrorResponse(w, http.StatusTooManyRequests, "reset_cooldown", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrDuplicateEmail):
		utils.WriteErrorResponse(w, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, repository.ErrInsufficientBalance):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "insufficient_balance", err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
