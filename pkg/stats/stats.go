package stats

import (
	"github.com/prospectcrm/prospect/pkg/company"
)

// StatusCount is one step of the sales pipeline: how many companies are in
// a given status.
type StatusCount struct {
	Status company.Status
	Count  int
}

// MonthCount is the number of events starting in a given month. Month is
// formatted as "2006-01".
type MonthCount struct {
	Month string
	Count int
}

// DashboardStats backs the numbers shown on the dashboard widgets.
type DashboardStats struct {
	TotalCompanies  int
	ActiveCompanies int
	TotalContacts   int
	UpcomingEvents  int
	Pipeline        []StatusCount
	MonthlyEvents   []MonthCount
}
