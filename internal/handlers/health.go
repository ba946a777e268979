package handlers

import (
	"net/http"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/utils"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store   repository.Store
	version string
}

func NewHealthHandler(store repository.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// Livez godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /livez [get]
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok", Version: h.version})
}

// Readyz godoc
// @Summary Readiness probe
// @Description Fails when the datastore is unreachable
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "degraded",
			Database: "unreachable",
			Version:  h.version,
		})
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: "connected",
		Version:  h.version,
	})
}
