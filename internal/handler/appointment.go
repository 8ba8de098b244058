package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	service *service.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: svc}
}

// HandleCreate handles POST /api/appointments requests.
func (h *AppointmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.AppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), identity.ID, req)
	if err != nil {
		writeServiceError(w, r, action{"create", "appointment"}, err)
		return
	}

	writeJSON(w, http.StatusCreated, dataResponse(a))
}

// HandleList handles GET /api/appointments requests. Optional from and to query
// parameters bound the appointment date; a bare date in to covers the whole day.
func (h *AppointmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var filter model.AppointmentFilter
	var msgs []string
	if v := r.URL.Query().Get("from"); v != "" {
		from, _, err := parseQueryDate(v)
		if err != nil {
			msgs = append(msgs, "from must be a valid date")
		} else {
			filter.From = &from
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, dateOnly, err := parseQueryDate(v)
		if err != nil {
			msgs = append(msgs, "to must be a valid date")
		} else {
			if dateOnly {
				to = to.Add(24*time.Hour - time.Nanosecond)
			}
			filter.To = &to
		}
	}
	if len(msgs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse(msgs))
		return
	}

	appointments, err := h.service.List(r.Context(), identity.ID, filter)
	if err != nil {
		writeServiceError(w, r, action{"list", "appointments"}, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(appointments))
}

// HandleGet handles GET /api/appointments/{id} requests.
func (h *AppointmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, action{"access", "appointment"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(a))
}

// HandleUpdate handles PUT /api/appointments/{id} requests.
func (h *AppointmentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.AppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.Update(r.Context(), identity.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, action{"update", "appointment"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(a))
}

// HandleDelete handles DELETE /api/appointments/{id} requests.
func (h *AppointmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, action{"delete", "appointment"}, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(struct{}{}))
}

// parseQueryDate accepts RFC 3339 or YYYY-MM-DD and reports which one it got.
func parseQueryDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}
