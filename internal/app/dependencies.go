package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectcrm/prospect/internal/config"
	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/activity"
	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/contact"
	"github.com/prospectcrm/prospect/pkg/event"
	"github.com/prospectcrm/prospect/pkg/google"
	"github.com/prospectcrm/prospect/pkg/layout"
	"github.com/prospectcrm/prospect/pkg/stats"
	"github.com/prospectcrm/prospect/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	CompanyRepo    company.Repository
	CompanyService *company.Service
	CompanyHandler *company.Handler

	ContactRepo    contact.Repository
	ContactService *contact.Service
	ContactHandler *contact.Handler

	EventRepo    event.Repository
	EventService *event.Service
	EventHandler *event.Handler

	LayoutRepo    layout.Repository
	LayoutEngine  *layout.Engine
	LayoutHandler *layout.Handler

	StatsService *stats.StatsServiceImpl
	StatsHandler *stats.StatsHandler

	ActivityFeed    *activity.Feed
	ActivityHandler *activity.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CompanyRepo = company.NewRepository(db)
	deps.CompanyService = company.NewService(deps.CompanyRepo, deps.EventBus, deps.Clock)
	deps.CompanyHandler = company.NewHandler(deps.CompanyService)

	deps.ContactRepo = contact.NewRepository(db)
	deps.ContactService = contact.NewService(deps.ContactRepo, deps.CompanyService.GetCompany)
	deps.ContactHandler = contact.NewHandler(deps.ContactService)

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.CompanyService.GetCompany, deps.EventBus, deps.Clock)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.LayoutRepo = layout.NewRepository(db)
	deps.LayoutEngine = layout.NewEngine(layout.DefaultCatalog(), deps.LayoutRepo)
	deps.LayoutHandler = layout.NewHandler(deps.LayoutEngine)

	deps.StatsService = stats.NewStatsServiceImpl(
		deps.CompanyService.GetCompanies,
		deps.ContactService.CountContacts,
		deps.EventService.GetEvents,
		deps.Clock,
	)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, stats.NewCsvStatsRenderer())

	deps.ActivityFeed = activity.NewFeed()
	deps.ActivityFeed.Register(deps.EventBus)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityFeed)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.EventService.GetEvents)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}
