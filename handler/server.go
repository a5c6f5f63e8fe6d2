package handler

import (
	"net/http"

	"dsc/handler/hc"
	"dsc/handler/rest"
	"dsc/pkg/logger"
	"dsc/service/engine"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	engine  *engine.Engine
	version string
	pingers []hc.Pinger
}

// New new server function
func New(
	e *engine.Engine,
	version string,
	pingers ...hc.Pinger,
) Server {
	return Server{
		engine:  e,
		version: version,
		pingers: pingers,
	}
}

// Handler mux serving health check, restful apis and metrics
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	{
		//hc
		mux.Mount("/hc", hc.Handle(s.version, s.pingers...))
	}

	{
		//restful api
		mux.Mount("/api", s.HandleRestAPI())
	}

	{
		//metrics
		mux.Mount("/metrics", promhttp.Handler())
	}

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.engine)
}
