package activity

import (
	"encoding/json"
	"net/http"
	"time"
)

type EntryDTO struct {
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Handler struct {
	feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{feed}
}

// GetActivity godoc
// @Summary Recent activity feed
// @Tags Activity
// @Produce json
// @Success 200 {array} EntryDTO
// @Router /api/activity [get]
// @Security XUserId
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feed.RecentEntries(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EntryDTO{Message: e.Message, OccurredAt: e.OccurredAt})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
