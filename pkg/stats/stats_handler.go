package stats

import (
	"encoding/json"
	"net/http"
)

type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthCountDTO struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type DashboardStatsDTO struct {
	TotalCompanies  int              `json:"totalCompanies"`
	ActiveCompanies int              `json:"activeCompanies"`
	TotalContacts   int              `json:"totalContacts"`
	UpcomingEvents  int              `json:"upcomingEvents"`
	Pipeline        []StatusCountDTO `json:"pipeline"`
	MonthlyEvents   []MonthCountDTO  `json:"monthlyEvents"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetDashboardStats godoc
// @Summary Dashboard widget numbers
// @Description Returns company, contact, and upcoming event counts plus the
// @Description sales pipeline breakdown and a monthly event-count series for
// @Description the charts. Responds with CSV when the Accept header is text/csv.
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Success 200 {object} DashboardStatsDTO
// @Router /api/stats/dashboard [get]
// @Security XUserId
func (handler *StatsHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := handler.statsService.GetDashboardStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(convertToJsonResponse(stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func convertToJsonResponse(stats DashboardStats) DashboardStatsDTO {
	pipeline := make([]StatusCountDTO, 0, len(stats.Pipeline))
	for _, step := range stats.Pipeline {
		pipeline = append(pipeline, StatusCountDTO{
			Status: string(step.Status),
			Count:  step.Count,
		})
	}
	monthly := make([]MonthCountDTO, 0, len(stats.MonthlyEvents))
	for _, month := range stats.MonthlyEvents {
		monthly = append(monthly, MonthCountDTO{
			Month: month.Month,
			Count: month.Count,
		})
	}
	return DashboardStatsDTO{
		TotalCompanies:  stats.TotalCompanies,
		ActiveCompanies: stats.ActiveCompanies,
		TotalContacts:   stats.TotalContacts,
		UpcomingEvents:  stats.UpcomingEvents,
		Pipeline:        pipeline,
		MonthlyEvents:   monthly,
	}
}
