package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

// HealthHandler handles HTTP requests for physical and mental health logs.
type HealthHandler struct {
	service *service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(svc *service.HealthService) *HealthHandler {
	return &HealthHandler{service: svc}
}

// HandleLogPhysical handles POST /api/health/physical requests.
func (h *HealthHandler) HandleLogPhysical(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.PhysicalLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.service.LogPhysical(r.Context(), identity.ID, req)
	if err != nil {
		writeServiceError(w, r, action{"create", "physical health log"}, err)
		return
	}

	writeJSON(w, http.StatusCreated, dataResponse(l))
}

// HandleListPhysical handles GET /api/health/physical requests.
func (h *HealthHandler) HandleListPhysical(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	logs, err := h.service.ListPhysical(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, action{"list", "physical health logs"}, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(logs))
}

// HandleGetPhysical handles GET /api/health/physical/{id} requests.
func (h *HealthHandler) HandleGetPhysical(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	l, err := h.service.GetPhysical(r.Context(), identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, action{"access", "physical health log"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(l))
}

// HandleUpdatePhysical handles PUT /api/health/physical/{id} requests.
func (h *HealthHandler) HandleUpdatePhysical(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.PhysicalLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.service.UpdatePhysical(r.Context(), identity.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, action{"update", "physical health log"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(l))
}

// HandleDeletePhysical handles DELETE /api/health/physical/{id} requests.
func (h *HealthHandler) HandleDeletePhysical(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePhysical(r.Context(), identity.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, action{"delete", "physical health log"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(struct{}{}))
}

// HandleLogMental handles POST /api/health/mental requests.
func (h *HealthHandler) HandleLogMental(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.MentalLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.service.LogMental(r.Context(), identity.ID, req)
	if err != nil {
		writeServiceError(w, r, action{"create", "mental health log"}, err)
		return
	}

	writeJSON(w, http.StatusCreated, dataResponse(l))
}

// HandleListMental handles GET /api/health/mental requests.
func (h *HealthHandler) HandleListMental(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	logs, err := h.service.ListMental(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, action{"list", "mental health logs"}, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(logs))
}

// HandleGetMental handles GET /api/health/mental/{id} requests.
func (h *HealthHandler) HandleGetMental(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	l, err := h.service.GetMental(r.Context(), identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, action{"access", "mental health log"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(l))
}

// HandleUpdateMental handles PUT /api/health/mental/{id} requests.
func (h *HealthHandler) HandleUpdateMental(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.MentalLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.service.UpdateMental(r.Context(), identity.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, action{"update", "mental health log"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(l))
}

// HandleDeleteMental handles DELETE /api/health/mental/{id} requests.
func (h *HealthHandler) HandleDeleteMental(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMental(r.Context(), identity.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, action{"delete", "mental health log"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(struct{}{}))
}

// HandleDashboard handles GET /api/health/dashboard requests.
func (h *HealthHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, action{"access", "dashboard"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(d))
}
