package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mchmarny/sidenav/pkg/server"
)

// Run serves the app and blocks until the context is canceled or an error
// occurs. Probes and the app's metrics registry are registered ahead of opt.
func (a *App) Run(ctx context.Context, opt ...server.Option) error {
	opts := []server.Option{
		server.WithRegistry(a.registry),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithReadiness(a),
	}
	opts = append(opts, opt...)

	a.RegisterHandlers(func(pattern string, h http.Handler) {
		opts = append(opts, server.WithHandler(pattern, h))
	})

	slog.Info("serving navigation",
		"base_path", a.site.BasePath,
		"surfaces", len(a.site.Assembler.Lists()),
		"indexed", a.index.Surfaces())

	return server.New(opts...).Serve(ctx)
}
