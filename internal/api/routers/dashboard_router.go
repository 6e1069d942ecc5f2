package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/dashboard"
)

func dashboardRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /dashboard", dashboard.SummaryHandler)
	mux.HandleFunc("GET /dashboard/overall", dashboard.OverallHandler)
	mux.HandleFunc("GET /dashboard/period", dashboard.PeriodHandler)
	mux.HandleFunc("GET /dashboard/range", dashboard.RangeHandler)
	mux.HandleFunc("GET /dashboard/years", dashboard.YearsHandler)

	return mux
}
