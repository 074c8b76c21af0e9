package handlers

import (
	"delivery-planner/internal/api/dto"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"delivery-planner/internal/ports"
	"errors"
	"net/http"
	"strings"
)

type PlanHandler struct {
	Planner   ports.DeliveryPlanner
	Manifests ports.ManifestSource
}

// Plan plans the depot and deliveries given in the request body.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if errs := dto.Validate(req); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	depot, err := req.Depot.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "depot: "+err.Error())
		return
	}
	stops, err := req.Stops()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Planner.GeneratePlan(r.Context(), depot, stops)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(res))
}

// PlanManifest plans a named manifest from the configured manifest source.
func (h *PlanHandler) PlanManifest(w http.ResponseWriter, r *http.Request) {
	if h.Manifests == nil {
		writeError(w, r, http.StatusNotImplemented, "manifests are not configured")
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "manifest name is required")
		return
	}

	m, err := h.Manifests.GetManifest(r.Context(), name)
	if errors.Is(err, domain.ErrManifestNotFound) {
		writeError(w, r, http.StatusNotFound, "manifest not found")
		return
	}
	if err != nil {
		obs.Logger(r.Context()).Error("get manifest failed", "manifest", name, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res, err := h.Planner.GeneratePlan(r.Context(), m.Depot, m.Deliveries)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(res))
}
