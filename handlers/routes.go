package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger is anything that can report store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers 200 while the store responds to a ping and 503 otherwise.
func HealthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			requestLogger(r).Warn("health check failed", zap.Error(err))
			WriteAPIError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeData(w, http.StatusOK, "ok")
	}
}

// RegisterRoutes mounts the person and address API on r.
func RegisterRoutes(r chi.Router, personHandler *PersonHandler, addressHandler *AddressHandler, store Pinger) {
	r.Get("/healthz", HealthHandler(store))

	r.Route("/people", func(r chi.Router) {
		r.Get("/", personHandler.ListAll)
		r.Post("/", personHandler.Save)
		r.Put("/", personHandler.Save)
		r.Get("/list", personHandler.ListPage)
		r.Get("/search-by-name", personHandler.SearchByName)
		r.Route("/{person_id}", func(r chi.Router) {
			r.Get("/", personHandler.Get)
			r.Delete("/", personHandler.Delete)
			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", personHandler.ListAddresses)
				r.Post("/", personHandler.SaveAddress)
				r.Put("/", personHandler.SaveAddress)
				r.Delete("/{address_id}", personHandler.DeleteAddress)
			})
		})
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Get("/", addressHandler.ListAll)
		r.Get("/list", addressHandler.ListPage)
		r.Get("/search-by-postal-code", addressHandler.SearchByPostalCode)
		r.Get("/search-by-city", addressHandler.SearchByCity)
		r.Get("/search-by-state", addressHandler.SearchByState)
		r.Route("/{address_id}", func(r chi.Router) {
			r.Get("/", addressHandler.Get)
			r.Delete("/", addressHandler.Delete)
		})
	})
}
