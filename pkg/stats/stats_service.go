package stats

import (
	"context"
	"time"

	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/event"
	log "github.com/sirupsen/logrus"
)

// upcomingWindow is how far ahead the "upcoming events" widget looks.
const upcomingWindow = 30 * 24 * time.Hour

// monthlySeriesMonths is how many months the event chart series spans,
// the current month included.
const monthlySeriesMonths = 6

type CompaniesProviderFunc func(ctx context.Context) ([]company.Company, error)
type ContactCountProviderFunc func(ctx context.Context) (int, error)
type EventsProviderFunc func(ctx context.Context, from, to time.Time) ([]event.Event, error)

type StatsService interface {
	GetDashboardStats(ctx context.Context) (DashboardStats, error)
}

type StatsServiceImpl struct {
	companiesProvider    CompaniesProviderFunc
	contactCountProvider ContactCountProviderFunc
	eventsProvider       EventsProviderFunc
	clock                utils.Clock
}

func NewStatsServiceImpl(
	companiesProvider CompaniesProviderFunc,
	contactCountProvider ContactCountProviderFunc,
	eventsProvider EventsProviderFunc,
	clock utils.Clock,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		companiesProvider:    companiesProvider,
		contactCountProvider: contactCountProvider,
		eventsProvider:       eventsProvider,
		clock:                clock,
	}
}

func (s *StatsServiceImpl) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	companies, err := s.companiesProvider(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	log.Tracef("Companies for stats: %d", len(companies))

	byStatus := make(map[company.Status]int, 3)
	for _, c := range companies {
		byStatus[c.Status]++
	}
	pipeline := make([]StatusCount, 0, 3)
	for _, status := range []company.Status{company.StatusLead, company.StatusActive, company.StatusDormant} {
		pipeline = append(pipeline, StatusCount{Status: status, Count: byStatus[status]})
	}

	contactCount, err := s.contactCountProvider(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	now := s.clock.Now()
	upcoming, err := s.eventsProvider(ctx, now, now.Add(upcomingWindow))
	if err != nil {
		return DashboardStats{}, err
	}

	monthly, err := s.monthlyEventCounts(ctx, now)
	if err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		TotalCompanies:  len(companies),
		ActiveCompanies: byStatus[company.StatusActive],
		TotalContacts:   contactCount,
		UpcomingEvents:  len(upcoming),
		Pipeline:        pipeline,
		MonthlyEvents:   monthly,
	}, nil
}

// monthlyEventCounts buckets events by their starting month over a trailing
// window ending with the current month. Months without events are present
// with a zero count so the chart axis stays continuous.
func (s *StatsServiceImpl) monthlyEventCounts(ctx context.Context, now time.Time) ([]MonthCount, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	seriesStart := monthStart.AddDate(0, -(monthlySeriesMonths - 1), 0)

	events, err := s.eventsProvider(ctx, seriesStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]int, monthlySeriesMonths)
	for _, e := range events {
		byMonth[e.StartTime.Format("2006-01")]++
	}

	series := make([]MonthCount, 0, monthlySeriesMonths)
	for i := 0; i < monthlySeriesMonths; i++ {
		key := seriesStart.AddDate(0, i, 0).Format("2006-01")
		series = append(series, MonthCount{Month: key, Count: byMonth[key]})
	}
	return series, nil
}
