package app

import (
	"github.com/gorilla/mux"
	"github.com/stafftrack/stafftrack/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Week references
	r.HandleFunc("/api/week", deps.WeekHandler.GetReferences).Methods("GET")

	// Billing assignments
	r.HandleFunc("/api/billing/assignment", deps.BillingHandler.GetAssignments).Methods("GET")

	// Forecast allocations
	r.HandleFunc("/api/forecast", deps.ForecastHandler.GetAllocations).Methods("GET")
	r.HandleFunc("/api/forecast", deps.ForecastHandler.CreateAllocation).Methods("POST")
	r.HandleFunc("/api/forecast/validate", deps.ForecastHandler.ValidateAllocation).Methods("POST")
	r.HandleFunc("/api/forecast/{allocationId}", deps.ForecastHandler.UpdateAllocation).Methods("PUT")
	r.HandleFunc("/api/forecast/{allocationId}", deps.ForecastHandler.DeleteAllocation).Methods("DELETE")

	// Timesheets
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.Submit).Methods("POST")
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.GetSubmission).Queries("weekEnding", "{weekEnding}").Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
}
