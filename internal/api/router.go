package api

import (
	"net/http"
	"ride-match-service/internal/api/handlers"
	"ride-match-service/internal/ports"
	"ride-match-service/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Deps are the collaborators the HTTP handlers need.
type Deps struct {
	Offers      ports.OfferRepository
	Searcher    ports.OfferSearcher
	Poster      *services.OfferPoster
	Registry    ports.LocationRegistry
	Transit     ports.TransitCatalogue
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()

	offerHandler := &handlers.OfferHandler{Repo: d.Offers, Poster: d.Poster, Registry: d.Registry}
	searchHandler := &handlers.SearchHandler{Searcher: d.Searcher, Registry: d.Registry}
	locationHandler := &handlers.LocationHandler{Registry: d.Registry}
	transitHandler := &handlers.TransitHandler{Transit: d.Transit}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/offers", offerHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/offers", offerHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/search", searchHandler.Search).Methods(http.MethodPost)
	r.HandleFunc("/locations", locationHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/transit", transitHandler.List).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	})

	// Outermost first: request id, logging, recovery, then CORS and routing.
	var h http.Handler = r
	h = c.Handler(h)
	h = recoveryMiddleware(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}
