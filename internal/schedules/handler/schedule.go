package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"agenda/internal/schedules/service"
	httputil "agenda/pkg/http"
	"agenda/pkg/logger"
	"agenda/pkg/model"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

func (h *ScheduleHandler) ApplyRecurring(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RecurringScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ApplyRecurring", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.ApplyRecurring(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApplyRecurring", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "ApplyRecurring", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) CheckConflicts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ConflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckConflicts", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	report, err := h.service.CheckConflicts(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckConflicts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckConflicts", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) ApplyException(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ExceptionScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ApplyException", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	entry, err := h.service.ApplyException(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApplyException", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, entry); err != nil {
		h.log.Error("failed to write created response", "handler", "ApplyException", "operation", "WriteCreated", "error", err)
	}
}

func (h *ScheduleHandler) GetForResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	if resourceID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetForResource", "operation", "WriteJSON", "error", err)
		}
		return
	}

	query := r.URL.Query()
	startDate := strings.TrimSpace(query.Get("start_date"))
	endDate := strings.TrimSpace(query.Get("end_date"))

	if startDate != "" || endDate != "" {
		entries, err := h.service.GetForResourceInRange(r.Context(), resourceID, startDate, endDate)
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetForResource", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		if err := httputil.WriteSuccess(w, entries); err != nil {
			h.log.Error("failed to write success response", "handler", "GetForResource", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetForResource", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	entries, totalCount, err := h.service.GetForResource(r.Context(), resourceID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetForResource", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, entries, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetForResource", "operation", "WritePaginated", "error", err)
	}
}

func (h *ScheduleHandler) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	query := r.URL.Query()
	date := strings.TrimSpace(query.Get("date"))
	clock := strings.TrimSpace(query.Get("time"))

	if date == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'date' query parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetAvailability", "operation", "WriteJSON", "error", err)
		}
		return
	}

	entry, bookable, err := h.service.GetAvailability(r.Context(), resourceID, date, clock)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{
		ResourceID: resourceID,
		Date:       date,
		Bookable:   bookable,
		Entry:      entry,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

type availabilityResponse struct {
	ResourceID string               `json:"resource_id"`
	Date       string               `json:"date"`
	Bookable   bool                 `json:"bookable"`
	Entry      *model.ScheduleEntry `json:"entry"`
}

func (h *ScheduleHandler) DeleteForResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	if resourceID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "DeleteForResource", "operation", "WriteJSON", "error", err)
		}
		return
	}

	query := r.URL.Query()
	startDate := strings.TrimSpace(query.Get("start_date"))
	endDate := strings.TrimSpace(query.Get("end_date"))

	if _, err := h.service.DeleteForResource(r.Context(), resourceID, startDate, endDate); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteForResource", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteNoContent(w); err != nil {
		h.log.Error("failed to write no content response", "handler", "DeleteForResource", "operation", "WriteNoContent", "error", err)
	}
}

func (h *ScheduleHandler) GetEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetEntry", "operation", "WriteJSON", "error", err)
		}
		return
	}

	entry, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetEntry", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, entry); err != nil {
		h.log.Error("failed to write success response", "handler", "GetEntry", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) DeleteEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "DeleteEntry", "operation", "WriteJSON", "error", err)
		}
		return
	}

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteEntry", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteNoContent(w); err != nil {
		h.log.Error("failed to write no content response", "handler", "DeleteEntry", "operation", "WriteNoContent", "error", err)
	}
}

func (h *ScheduleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/schedules/recurring", h.ApplyRecurring)
	router.POST("/api/v1/schedules/conflicts", h.CheckConflicts)
	router.POST("/api/v1/schedules/exceptions", h.ApplyException)
	router.GET("/api/v1/schedules/id/:id", h.GetEntry)
	router.DELETE("/api/v1/schedules/id/:id", h.DeleteEntry)
	router.GET("/api/v1/schedules/resource/:id", h.GetForResource)
	router.GET("/api/v1/schedules/resource/:id/availability", h.GetAvailability)
	router.DELETE("/api/v1/schedules/resource/:id", h.DeleteForResource)
}
