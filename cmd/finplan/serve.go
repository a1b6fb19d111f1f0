package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/logging"
	"github.com/rgehrsitz/finplan/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Start the JSON API:

  POST /api/tax/           regime comparison
  POST /api/breakeven/     break-even deduction
  POST /api/compare/       what-if comparison
  POST /api/sip/           SIP projection
  POST /api/loan/          loan EMI
  POST /api/budget/        budget review
  POST /api/goal-planner/  goal SIP plan
  GET  /health             liveness
  GET  /metrics            Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				settings.Server.Addr = addr
			}

			logger, err := newLogger(settings, false)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			evaluator, err := newEvaluator(cmd, settings)
			if err != nil {
				return err
			}
			evaluator.SetLogger(logging.Sugared(logger.Named("calculation")))
			if settings.Advisor.Enabled {
				attachAdvisor(evaluator, settings)
				logger.Info("advisor enabled",
					zap.String("model", settings.Advisor.Model),
					zap.String("base_url", settings.Advisor.BaseURL))
			}

			handler := server.NewHandler(server.Deps{
				Evaluator: evaluator,
				Parser:    config.NewInputParser(),
				Logger:    logger.Named("http"),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, settings.Server.Addr, handler, settings.Server.ShutdownTimeout, logger)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().String("rules", "", "Rules YAML overriding the built-in slabs and limits")

	return cmd
}
