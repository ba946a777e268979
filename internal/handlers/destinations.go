package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// DestinationsHandler serves the destination catalog.
type DestinationsHandler struct {
	catalog *services.CatalogService
	pdf     *services.PDFService
}

func NewDestinationsHandler(catalog *services.CatalogService, pdf *services.PDFService) *DestinationsHandler {
	return &DestinationsHandler{catalog: catalog, pdf: pdf}
}

// Collection dispatches /api/destinations by method.
func (h *DestinationsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET or POST")
	}
}

// Item dispatches /api/destinations/{id} and /api/destinations/{id}/pdf.
func (h *DestinationsHandler) Item(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/destinations/")
	wantPDF := false
	if rest, found := strings.CutSuffix(path, "/pdf"); found {
		path = rest
		wantPDF = true
	}
	id, err := uuid.Parse(path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_id", "destination ID must be a UUID")
		return
	}

	if wantPDF {
		if r.Method != http.MethodGet {
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
			return
		}
		h.renderPDF(w, r, id)
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
// @Summary List destinations
// @Tags destinations
// @Produce json
// @Success 200 {object} dto.DestinationListResponse
// @Router /api/destinations [get]
func (h *DestinationsHandler) list(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.catalog.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.DestinationListResponse{Success: true, Data: destinations})
}

// get godoc
// @Summary Get a destination
// @Tags destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} dto.DestinationResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/destinations/{id} [get]
func (h *DestinationsHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	d, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.DestinationResponse{Success: true, Data: d})
}

// create godoc
// @Summary Create a destination
// @Description Adds a catalog entry; unset fields get sensible package defaults
// @Tags destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDestinationRequest true "Destination"
// @Success 201 {object} dto.DestinationResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/destinations [post]
func (h *DestinationsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDestinationRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	d, err := h.catalog.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.DestinationResponse{
		Success: true,
		Message: "Destination created",
		Data:    d,
	})
}

// update godoc
// @Summary Update a destination
// @Tags destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Param request body dto.UpdateDestinationRequest true "Fields to change"
// @Success 200 {object} dto.DestinationResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/destinations/{id} [put]
func (h *DestinationsHandler) update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req dto.UpdateDestinationRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	d, err := h.catalog.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.DestinationResponse{
		Success: true,
		Message: "Destination updated",
		Data:    d,
	})
}

// delete godoc
// @Summary Delete a destination
// @Tags destinations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/destinations/{id} [delete]
func (h *DestinationsHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Destination deleted"})
}

// renderPDF godoc
// @Summary Download a destination brochure
// @Tags destinations
// @Produce application/pdf
// @Param id path string true "Destination ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorBody
// @Router /api/destinations/{id}/pdf [get]
func (h *DestinationsHandler) renderPDF(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	d, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pdfBytes, err := h.pdf.RenderDestination(d)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(d.Name), " ", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		return
	}
}
