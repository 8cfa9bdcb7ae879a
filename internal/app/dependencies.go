package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stafftrack/stafftrack/internal/config"
	"github.com/stafftrack/stafftrack/internal/utils"
	"github.com/stafftrack/stafftrack/pkg/billing"
	"github.com/stafftrack/stafftrack/pkg/forecast"
	"github.com/stafftrack/stafftrack/pkg/timesheet"
	"github.com/stafftrack/stafftrack/pkg/user"
	"github.com/stafftrack/stafftrack/pkg/week"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	WeekRepo    week.Repository
	WeekService *week.ServiceImpl
	WeekHandler *week.Handler

	BillingRepo    billing.Repository
	BillingHandler *billing.Handler

	ForecastRepo    forecast.Repository
	ForecastService forecast.Service
	ForecastHandler *forecast.Handler

	TimesheetRepo      timesheet.Repository
	TimesheetValidator *timesheet.SubmissionValidator
	TimesheetService   timesheet.Service
	TimesheetHandler   *timesheet.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.WeekRepo = week.NewRepository(db)
	deps.WeekService = week.NewService(deps.WeekRepo, deps.Clock)
	deps.WeekHandler = week.NewHandler(deps.WeekRepo)

	deps.BillingRepo = billing.NewRepository(db)
	deps.BillingHandler = billing.NewHandler(deps.BillingRepo)

	deps.ForecastRepo = forecast.NewRepository(db)
	deps.ForecastService = forecast.NewService(deps.ForecastRepo, deps.WeekRepo)
	deps.ForecastHandler = forecast.NewHandler(deps.ForecastService)

	deps.TimesheetRepo = timesheet.NewRepository(db)
	deps.TimesheetValidator = timesheet.NewSubmissionValidator(deps.BillingRepo)
	deps.TimesheetService = timesheet.NewService(deps.TimesheetRepo, deps.TimesheetValidator, deps.Clock)
	deps.TimesheetHandler = timesheet.NewHandler(deps.TimesheetService)

	return deps
}
