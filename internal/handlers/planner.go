package handlers

import (
	"net/http"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// PlannerHandler serves AI itinerary generation.
type PlannerHandler struct {
	planner *services.PlannerService
}

func NewPlannerHandler(planner *services.PlannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// Generate godoc
// @Summary Generate a trip itinerary
// @Description Produces a day-by-day plan from destination, days, budget and interests. Falls back to a built-in generator when the AI model is unavailable.
// @Tags planner
// @Accept json
// @Produce json
// @Param request body dto.GeneratePlanRequest true "Trip parameters"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/planner/generate [post]
func (h *PlannerHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req dto.GeneratePlanRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plan, source, err := h.planner.Generate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.PlanResponse{
		Success: true,
		Source:  source,
		Data:    plan,
	})
}
