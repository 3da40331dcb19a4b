package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tacit/internal/app"
	"github.com/abhisek/tacit/internal/screens/annotate"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an annotation session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay loads config, builds dependencies and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()

	client, hc := newSentenceClient(cfg, logger)
	opts := app.Options{
		Session: annotate.Options{
			Client:      client,
			Explainer:   newExplainer(ctx, logger, cmd.ErrOrStderr()),
			Logger:      logger,
			HistorySize: cfg.Session.HistorySize,
		},
		ServiceURL: hc.BaseURL(),
	}
	if cfg.Service.Wake {
		opts.Wake = client.Wake
	}

	logger.Info().Str("service", hc.BaseURL()).Bool("explain", opts.Session.Explainer != nil).Msg("starting tui")
	return app.Run(opts)
}
