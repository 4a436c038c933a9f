package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"setu/internal/usecase/listing"
)

// Server exposes the demo over HTTP: a server-rendered page for the demo
// flow, a JSON API underneath it, and a websocket feed of network events.
type Server struct {
	router   *chi.Mux
	svc      *listing.Service
	hub      *Hub
	validate *validator.Validate
	schema   []byte
}

func New(svc *listing.Service, hub *Hub) (*Server, error) {
	schema, err := broadcastSchemaJSON()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		svc:      svc,
		hub:      hub,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		schema:   schema,
	}
	s.mountHandlers()
	return s, nil
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) mountHandlers() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleHomePage)
	s.router.Post("/farmers", s.handleFarmerForm)
	s.router.Post("/translate", s.handleTranslateForm)
	s.router.Post("/catalogs/{catalogID}/broadcast", s.handleBroadcastForm)
	s.router.Post("/catalogs/{catalogID}/accept", s.handleAcceptForm)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/schema/broadcast", s.handleBroadcastSchema)

		r.Route("/farmers", func(r chi.Router) {
			r.Get("/", s.handleListFarmers)
			r.Post("/", s.handleRegisterFarmer)
			r.Get("/{farmerID}", s.handleGetFarmer)
		})

		r.Route("/catalogs", func(r chi.Router) {
			r.Get("/", s.handleListCatalogs)
			r.Post("/translate", s.handleTranslate)
			r.Get("/{catalogID}", s.handleGetCatalog)
			r.Post("/{catalogID}/broadcast", s.handleBroadcast)
			r.Post("/{catalogID}/accept", s.handleAcceptBid)
		})

		r.Get("/network/logs", s.handleNetworkFeed)
	})

	if s.hub != nil {
		s.router.Get("/ws/network", s.hub.handleWS)
	}
}
