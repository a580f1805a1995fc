package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/flymeaway/flight-price-scanner/internal/app/config"
	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
	"github.com/flymeaway/flight-price-scanner/internal/app/endpoints"
	httptransport "github.com/flymeaway/flight-price-scanner/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/scans", httptransport.MakeHandlerFunc(
			endpts.ScannerEndpoint.ScanFlights,
			httptransport.DecodeRequest[dto.ScanRequest],
			httptransport.ResponseWithBody,
		))

		router.Get("/history", httptransport.MakeHandlerFunc(
			endpts.ScannerEndpoint.RecentSearches,
			decodeHistoryQuery,
			httptransport.ResponseWithBody,
		))

		router.Get("/airports", httptransport.MakeHandlerFunc(
			endpts.AirportEndpoint.SearchAirports,
			decodeAirportQuery,
			httptransport.ResponseWithBody,
		))
	})

	return router
}
