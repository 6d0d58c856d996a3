package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prospectcrm/prospect/internal/rest"
	"github.com/prospectcrm/prospect/pkg/company"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

// EventDTO is the wire representation of a calendar event. Field names are
// part of the contract with the dashboard frontend.
type EventDTO struct {
	UID         string    `json:"uid,omitempty"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	EndDate     time.Time `json:"endDate,omitzero"`
	AllDay      bool      `json:"allDay"`
	CompanyId   int       `json:"companyId,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	TimeFormat  string    `json:"timeFormat,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

// GetEvents godoc
// @Summary List calendar events in a time range
// @Tags Event
// @Produce json
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/event [get]
// @Security XUserId
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	from, err := time.Parse(time.RFC3339, fromString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid from (date) format",
			Details: "'from' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}
	to, err := time.Parse(time.RFC3339, toString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid to (date) format",
			Details: "'to' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	events, err := h.service.GetEvents(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateEvent godoc
// @Summary Schedule an event for a company
// @Description Creates a calendar event. Without an explicit endDate the
// @Description event ends one hour after it starts.
// @Tags Event
// @Accept json
// @Produce json
// @Param companyId path int true "Company ID (0 for events without a company)"
// @Param event body EventDTO true "Event"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Company not found"
// @Router /api/companies/{companyId}/event [post]
// @Security XUserId
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	companyId, err := strconv.Atoi(vars["companyId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid company id",
			Details: "'companyId' must be an integer",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if dto.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Event title is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	if dto.Start.IsZero() {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Event start is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	event := dtoToEvent(dto)
	event.CompanyId = companyId

	created, err := h.service.AddEvent(r.Context(), event)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("Created event %s for company %d", created.UID, created.CompanyId)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path string true "Event UID"
// @Param event body EventDTO true "Event"
// @Success 200 {object} EventDTO
// @Failure 404 {string} string "Event not found"
// @Router /api/event/{eventId} [patch]
// @Security XUserId
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	eventUid := vars["eventId"]

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	event := dtoToEvent(dto)
	event.UID = eventUid

	updated, err := h.service.ModifyEvent(r.Context(), event)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrTitleRequired) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Event title is required",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletion is idempotent: deleting an event that no longer
// @Description exists also returns 204.
// @Tags Event
// @Param eventId path string true "Event UID"
// @Success 204
// @Router /api/event/{eventId} [delete]
// @Security XUserId
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	eventUid := vars["eventId"]
	err := h.service.DeleteEvent(r.Context(), eventUid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		UID:         e.UID,
		Title:       e.Title,
		Start:       e.StartTime,
		EndDate:     e.EndTime,
		AllDay:      e.AllDay,
		CompanyId:   e.CompanyId,
		CompanyName: e.CompanyName,
		CreatedAt:   e.CreatedAt,
	}
}

func dtoToEvent(dto EventDTO) Event {
	return Event{
		UID:         dto.UID,
		Title:       dto.Title,
		StartTime:   dto.Start,
		EndTime:     dto.EndDate,
		AllDay:      dto.AllDay,
		CompanyId:   dto.CompanyId,
		CompanyName: dto.CompanyName,
	}
}
