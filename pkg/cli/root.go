// Package cli implements the sidenav command line: the HTTP and MCP servers
// and offline commands for inspecting the navigation.
package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/content"
	"github.com/mchmarny/sidenav/pkg/logger"
	"github.com/mchmarny/sidenav/pkg/sidenav"
)

// AppName is the command and logger module name.
const AppName = "sidenav"

// Info carries build metadata set at link time.
type Info struct {
	Version string
	Commit  string
	Date    string
}

type runtime struct {
	info       Info
	v          *viper.Viper
	configPath string
	cfg        config.Config
}

// NewRootCommand returns the sidenav command tree.
func NewRootCommand(info Info) *cobra.Command {
	r := &runtime{info: info, v: config.New()}

	root := &cobra.Command{
		Use:          AppName,
		Short:        "Documentation side navigation service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&r.configPath, "config", "", "path to a YAML config file (default ./sidenav.yaml when present)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("content-dir", "", "directory holding spec/ content (default embedded sample content)")
	flags.String("base-path", "/docs", "URL path the documentation is mounted under")

	for key, name := range map[string]string{
		"log.level":     "log-level",
		"content.dir":   "content-dir",
		"nav.base_path": "base-path",
	} {
		if err := r.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(
		newServeCommand(r),
		newClassifyCommand(r),
		newRulesCommand(r),
		newKeysCommand(r),
		newTreeCommand(r),
		newMCPCommand(r),
		newVersionCommand(r),
	)

	return root
}

func (r *runtime) load(cmd *cobra.Command) error {
	cfg, err := config.Load(r.v, r.configPath)
	if err != nil {
		return err
	}
	r.cfg = cfg

	logger.SetDefaultLoggerWithOptions(AppName, r.info.Version, logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	return nil
}

func (r *runtime) contentFS() fs.FS {
	if r.cfg.Content.Dir == "" {
		return content.Default()
	}
	return os.DirFS(r.cfg.Content.Dir)
}

func (r *runtime) site(ctx context.Context) (*sidenav.Site, error) {
	return sidenav.Build(ctx, r.contentFS(), r.cfg.Nav.BasePath)
}
