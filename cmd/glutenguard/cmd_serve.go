package main

import (
	"github.com/shahar-caura/glutenguard/internal/provider/notifier"
	"github.com/shahar-caura/glutenguard/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and live event stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			srv := server.New(a.cfg.Server.Port, version, svc.Checker, svc.Phrases, a.logger)
			if a.cfg.Phrases.Watch && a.cfg.Phrases.File != "" {
				srv.WatchPhrases(a.cfg.Phrases.File)
				if u := a.cfg.Notify.WebhookURL; u != "" {
					srv.NotifyReloads(notifier.New(u, a.cfg.Notify.Timeout.Duration))
				}
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port; overrides config")

	return cmd
}
