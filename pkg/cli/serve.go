package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/web"
)

func newServeCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documentation pages with the side navigation, the navigation API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slog.Info("starting "+AppName, "commit", r.info.Commit, "date", r.info.Date)

			site, err := r.site(cmd.Context())
			if err != nil {
				return err
			}

			app, err := web.New(site, r.cfg.Nav.SessionLimit)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					slog.Error("failed to close app", "error", err)
				}
			}()

			opts := []server.Option{
				server.WithPort(r.cfg.Server.Port),
				server.WithShutdownTimeout(r.cfg.Server.ShutdownTimeout),
			}
			if r.cfg.Server.RequestLog {
				opts = append(opts, server.WithRequestLogging())
			}
			if r.cfg.Server.TLSCert != "" {
				opts = append(opts, server.WithTLS(server.TLSConfig{
					CertFile: r.cfg.Server.TLSCert,
					KeyFile:  r.cfg.Server.TLSKey,
				}))
			}

			return app.Run(cmd.Context(), opts...)
		},
	}

	cmd.Flags().Int("port", server.DefaultPort, "port to listen on")
	if err := r.v.BindPFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}

	return cmd
}
