package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats DashboardStats) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderStats(stats DashboardStats) (string, error) {
	data := [][]string{
		{"Metric", "Value"},
		{"Total companies", strconv.Itoa(stats.TotalCompanies)},
		{"Active companies", strconv.Itoa(stats.ActiveCompanies)},
		{"Total contacts", strconv.Itoa(stats.TotalContacts)},
		{"Upcoming events", strconv.Itoa(stats.UpcomingEvents)},
	}
	for _, step := range stats.Pipeline {
		data = append(data, []string{"Pipeline: " + string(step.Status), strconv.Itoa(step.Count)})
	}
	for _, month := range stats.MonthlyEvents {
		data = append(data, []string{"Events: " + month.Month, strconv.Itoa(month.Count)})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
