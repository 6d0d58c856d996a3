package stats

import (
	"context"
	"testing"
	"time"

	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCompanies(companies []company.Company) CompaniesProviderFunc {
	return func(ctx context.Context) ([]company.Company, error) {
		return companies, nil
	}
}

func fixedContactCount(count int) ContactCountProviderFunc {
	return func(ctx context.Context) (int, error) {
		return count, nil
	}
}

func fixedEvents(events []event.Event) EventsProviderFunc {
	return func(ctx context.Context, from, to time.Time) ([]event.Event, error) {
		inRange := make([]event.Event, 0, len(events))
		for _, e := range events {
			if !e.StartTime.After(to) && !e.EndTime.Before(from) {
				inRange = append(inRange, e)
			}
		}
		return inRange, nil
	}
}

func TestStatsService_GetDashboardStats(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	companies := []company.Company{
		{Id: 1, Name: "Acme Minerals", Status: company.StatusActive},
		{Id: 2, Name: "Borealis Drilling", Status: company.StatusActive},
		{Id: 3, Name: "Cobalt Ridge", Status: company.StatusLead},
		{Id: 4, Name: "Dormant Holdings", Status: company.StatusDormant},
	}
	events := []event.Event{
		{UID: "e1", Title: "Next week", StartTime: now.AddDate(0, 0, 7), EndTime: now.AddDate(0, 0, 7).Add(time.Hour)},
		{UID: "e2", Title: "Too far out", StartTime: now.AddDate(0, 2, 0), EndTime: now.AddDate(0, 2, 0).Add(time.Hour)},
		{UID: "e3", Title: "In the past", StartTime: now.AddDate(0, 0, -3), EndTime: now.AddDate(0, 0, -3).Add(time.Hour)},
	}

	service := NewStatsServiceImpl(
		fixedCompanies(companies),
		fixedContactCount(12),
		fixedEvents(events),
		&utils.MockClock{FixedNow: now},
	)

	stats, err := service.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalCompanies)
	assert.Equal(t, 2, stats.ActiveCompanies)
	assert.Equal(t, 12, stats.TotalContacts)
	assert.Equal(t, 1, stats.UpcomingEvents, "only events within the next 30 days count")

	require.Len(t, stats.Pipeline, 3)
	assert.Equal(t, StatusCount{Status: company.StatusLead, Count: 1}, stats.Pipeline[0])
	assert.Equal(t, StatusCount{Status: company.StatusActive, Count: 2}, stats.Pipeline[1])
	assert.Equal(t, StatusCount{Status: company.StatusDormant, Count: 1}, stats.Pipeline[2])

	require.Len(t, stats.MonthlyEvents, 6)
	assert.Equal(t, MonthCount{Month: "2025-11", Count: 0}, stats.MonthlyEvents[0])
	assert.Equal(t, MonthCount{Month: "2026-03", Count: 1}, stats.MonthlyEvents[4])
	assert.Equal(t, MonthCount{Month: "2026-04", Count: 1}, stats.MonthlyEvents[5])
}

func TestStatsService_MonthlyEventSeries(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	events := []event.Event{
		{UID: "m1", Title: "Current month", StartTime: now.AddDate(0, 0, -10), EndTime: now.AddDate(0, 0, -10).Add(time.Hour)},
		{UID: "m2", Title: "Current month too", StartTime: now.AddDate(0, 0, 5), EndTime: now.AddDate(0, 0, 5).Add(time.Hour)},
		{UID: "m3", Title: "Three months back", StartTime: time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)},
		// Starts before the charted window and only spills into it; must not
		// be counted under any charted month.
		{UID: "m4", Title: "Spills into window", StartTime: time.Date(2025, 10, 31, 23, 0, 0, 0, time.UTC), EndTime: time.Date(2025, 11, 1, 1, 0, 0, 0, time.UTC)},
		{UID: "m5", Title: "Long gone", StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	service := NewStatsServiceImpl(
		fixedCompanies(nil),
		fixedContactCount(0),
		fixedEvents(events),
		&utils.MockClock{FixedNow: now},
	)

	stats, err := service.GetDashboardStats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.MonthlyEvents, 6)
	assert.Equal(t, []MonthCount{
		{Month: "2025-11", Count: 0},
		{Month: "2025-12", Count: 0},
		{Month: "2026-01", Count: 1},
		{Month: "2026-02", Count: 0},
		{Month: "2026-03", Count: 0},
		{Month: "2026-04", Count: 2},
	}, stats.MonthlyEvents)
}

func TestStatsService_EmptyAccount(t *testing.T) {
	service := NewStatsServiceImpl(
		fixedCompanies(nil),
		fixedContactCount(0),
		fixedEvents(nil),
		&utils.MockClock{FixedNow: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)},
	)

	stats, err := service.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCompanies)
	assert.Equal(t, 0, stats.UpcomingEvents)
	require.Len(t, stats.Pipeline, 3)
	for _, step := range stats.Pipeline {
		assert.Zero(t, step.Count)
	}
	require.Len(t, stats.MonthlyEvents, 6)
	for _, month := range stats.MonthlyEvents {
		assert.Zero(t, month.Count)
	}
}

func TestCsvStatsRenderer_RenderStats(t *testing.T) {
	renderer := NewCsvStatsRenderer()

	csv, err := renderer.RenderStats(DashboardStats{
		TotalCompanies:  4,
		ActiveCompanies: 2,
		TotalContacts:   12,
		UpcomingEvents:  1,
		Pipeline: []StatusCount{
			{Status: company.StatusLead, Count: 1},
			{Status: company.StatusActive, Count: 2},
			{Status: company.StatusDormant, Count: 1},
		},
		MonthlyEvents: []MonthCount{
			{Month: "2026-03", Count: 3},
			{Month: "2026-04", Count: 1},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, csv, "Metric,Value\n")
	assert.Contains(t, csv, "Total companies,4\n")
	assert.Contains(t, csv, "Pipeline: active,2\n")
	assert.Contains(t, csv, "Events: 2026-03,3\n")
}
