// Package server exposes the calculators over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/planner"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps are the collaborators the handlers need
type Deps struct {
	Evaluator *calculation.TaxEvaluator
	Parser    *config.InputParser
	Logger    *zap.Logger
	// Prices quotes portfolio holdings; nil means quotes come from the request
	Prices planner.PriceSource
}

// NewHandler returns the router for the finplan API
func NewHandler(deps Deps) http.Handler {
	if deps.Parser == nil {
		deps.Parser = config.NewInputParser()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recoverer(deps.Logger))
	r.Use(AccessLog(deps.Logger))
	r.Use(Instrument)

	r.Get("/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(LimitBody(maxRequestBodySize))

		r.Post("/tax/", handleTax(deps))
		r.Post("/breakeven/", handleBreakEven(deps))
		r.Post("/compare/", handleCompare(deps))
		r.Post("/sip/", handleSIP)
		r.Post("/loan/", handleLoan)
		r.Post("/budget/", handleBudget)
		r.Post("/goal-planner/", handleGoal)
		r.Post("/portfolio/", handlePortfolio(deps))
		r.Post("/expense-categorizer/", handleExpenses(deps))
	})

	return r
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
