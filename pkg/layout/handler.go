package layout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prospectcrm/prospect/internal/rest"
)

type Handler struct {
	engine *Engine
}

// LayoutDTO carries the user's arrangement together with the transient drag
// mode flag.
type LayoutDTO struct {
	Draggable   bool        `json:"draggable"`
	Arrangement Arrangement `json:"arrangement"`
}

type SwapRequestDTO struct {
	Slot Slot `json:"slot"`
	With Slot `json:"with"`
}

type ModeRequestDTO struct {
	Draggable bool `json:"draggable"`
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine}
}

// GetLayout godoc
// @Summary Get the current dashboard layout
// @Description Returns the persisted arrangement replayed over the default
// @Description layout, or the default layout when nothing was saved.
// @Tags Layout
// @Produce json
// @Success 200 {object} LayoutDTO
// @Router /api/dashboard/layout [get]
// @Security XUserId
func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	arrangement, err := h.engine.Restore(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	draggable, err := h.engine.Draggable(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeLayout(w, http.StatusOK, LayoutDTO{Draggable: draggable, Arrangement: arrangement})
}

// SaveLayout godoc
// @Summary Replace the dashboard arrangement
// @Description Stores the given placements. Placements naming unknown slots
// @Description or items are dropped. Requires drag mode.
// @Tags Layout
// @Accept json
// @Produce json
// @Param layout body Arrangement true "Placements"
// @Success 200 {object} LayoutDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request body"
// @Failure 409 {object} rest.ErrorResponse "Drag mode is disabled"
// @Router /api/dashboard/layout [put]
// @Security XUserId
func (h *Handler) SaveLayout(w http.ResponseWriter, r *http.Request) {
	var placements Arrangement
	if err := json.NewDecoder(r.Body).Decode(&placements); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	arrangement, err := h.engine.Save(r.Context(), placements)
	if err != nil {
		if errors.Is(err, ErrDraggingDisabled) {
			writeError(w, http.StatusConflict, rest.ErrorResponse{
				Error:   "Dragging is disabled",
				Details: "Enable drag mode before rearranging the dashboard",
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeLayout(w, http.StatusOK, LayoutDTO{Draggable: true, Arrangement: arrangement})
}

// SwapSlots godoc
// @Summary Swap the items of two slots
// @Tags Layout
// @Accept json
// @Produce json
// @Param swap body SwapRequestDTO true "Slots to swap"
// @Success 200 {object} LayoutDTO
// @Failure 400 {object} rest.ErrorResponse "Unknown slot"
// @Failure 409 {object} rest.ErrorResponse "Drag mode is disabled"
// @Router /api/dashboard/layout/swap [post]
// @Security XUserId
func (h *Handler) SwapSlots(w http.ResponseWriter, r *http.Request) {
	var req SwapRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	arrangement, err := h.engine.Swap(r.Context(), req.Slot, req.With)
	if err != nil {
		if errors.Is(err, ErrDraggingDisabled) {
			writeError(w, http.StatusConflict, rest.ErrorResponse{
				Error:   "Dragging is disabled",
				Details: "Enable drag mode before rearranging the dashboard",
			})
			return
		}
		if errors.Is(err, ErrUnknownSlot) {
			writeError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   "Unknown slot",
				Details: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeLayout(w, http.StatusOK, LayoutDTO{Draggable: true, Arrangement: arrangement})
}

// SetMode godoc
// @Summary Toggle drag mode
// @Description Drag mode is per user and in memory only; it resets to
// @Description disabled when the server restarts.
// @Tags Layout
// @Accept json
// @Produce json
// @Param mode body ModeRequestDTO true "Drag mode"
// @Success 200 {object} LayoutDTO
// @Router /api/dashboard/layout/mode [put]
// @Security XUserId
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	if err := h.engine.SetDraggable(r.Context(), req.Draggable); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	arrangement, err := h.engine.Restore(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeLayout(w, http.StatusOK, LayoutDTO{Draggable: req.Draggable, Arrangement: arrangement})
}

// RevertLayout godoc
// @Summary Revert to the default layout
// @Description Deletes the persisted arrangement. Reverting when nothing is
// @Description persisted also succeeds.
// @Tags Layout
// @Produce json
// @Success 200 {object} LayoutDTO
// @Router /api/dashboard/layout [delete]
// @Security XUserId
func (h *Handler) RevertLayout(w http.ResponseWriter, r *http.Request) {
	arrangement, err := h.engine.Revert(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	draggable, err := h.engine.Draggable(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeLayout(w, http.StatusOK, LayoutDTO{Draggable: draggable, Arrangement: arrangement})
}

func writeLayout(w http.ResponseWriter, status int, dto LayoutDTO) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, response rest.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
