package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	funnelhandler "github.com/relasi-app/relasi-core/pkg/handlers/funnel"
	reporthandler "github.com/relasi-app/relasi-core/pkg/handlers/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	relasimiddleware "github.com/relasi-app/relasi-core/pkg/server/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Report *reporthandler.Handler
	Funnel *funnelhandler.Handler
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter builds the route table. Split out of NewWebAPI so tests can
// exercise the real routes under httptest.
func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	router := chi.NewRouter()

	router.Use(relasimiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports/{reportID}/pdf", deps.Report.GetReportPDF)
		r.Get("/assessments/{assessmentID}/report/pdf", deps.Report.GetAssessmentPDF)

		r.Post("/experiments/{surface}/assignment", deps.Funnel.PostAssignment)
		r.Get("/funnel/content", deps.Funnel.GetContent)
		r.Get("/funnel/hesitation", deps.Funnel.GetHesitation)
		r.Post("/funnel/exit-intent", deps.Funnel.PostExitIntent)
		r.Post("/funnel/visits", deps.Funnel.PostVisit)
		r.Get("/funnel/availability", deps.Funnel.GetAvailability)
		r.Get("/funnel/teaser", deps.Funnel.GetTeaser)
		r.Post("/events", deps.Funnel.PostEvent)
		r.Post("/payments", deps.Funnel.PostPayment)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
