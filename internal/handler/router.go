package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	custommiddleware "github.com/mmeshcher/auction-storefront/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware витрины.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/lots", h.GetLots)
		r.Post("/lots/reload", h.ReloadLots)
		r.Get("/lots/{id}", h.OpenLot)
		r.Post("/lots/{id}/bids", h.PlaceBid)
		r.Delete("/preview", h.ClosePreview)

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", h.GetBasket)
			r.Get("/active", h.GetActiveLots)
			r.Get("/closed", h.GetClosedLots)
			r.Put("/items/{id}", h.ToggleBasketItem)
		})

		r.Get("/order", h.GetOrderForm)
		r.Patch("/order", h.ChangeOrderField)
		r.Post("/order", h.SubmitOrder)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
